// Package detector picks the progress output mode for the current environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is the progress rendering mode.
type OutputMode int

const (
	// ModeAuto chooses between ModeLive and ModeLinear.
	ModeAuto OutputMode = iota
	// ModeLive redraws a single status line on an interactive terminal.
	ModeLive
	// ModeLinear prints one line per event, for CI and log files.
	ModeLinear
)

// String returns the flag spelling of m.
func (m OutputMode) String() string {
	switch m {
	case ModeLive:
		return "live"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ModeLinear when stderr is not a terminal or a CI
// variable is set, and ModeLive otherwise.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stderr.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeLinear
	}
	return ModeLive
}

// ResolveMode applies the --output flag to the detected mode.
// Unknown values fall back to autoDetected.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "live", "tty":
		return ModeLive
	case "linear", "ci":
		return ModeLinear
	default:
		return autoDetected
	}
}
