// Package style holds the colors and icons shared by the renderers and the
// pretty log handler.
package style

import "github.com/charmbracelet/lipgloss"

// Colors.
var (
	// Iris marks labels of the page or category being synchronized.
	Iris = lipgloss.Color("#8B5CF6")
	// Slate is used for secondary text such as the current file.
	Slate = lipgloss.Color("#667085")
	// Green marks uploads.
	Green = lipgloss.Color("#22A06B")
	// Red marks failures and errors.
	Red = lipgloss.Color("#D93025")
	// Yellow marks duplicates and warnings.
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Same    = "="
	Dot     = "●"
)
