// Package assets holds the per-object asset descriptor tables and derives
// CDN URLs and wiki file names from them.
package assets

import (
	"fmt"
	"strings"
)

// Variant is one positional token of a section. Suffix is appended to the
// asset id; Label names the variant in alias file names.
type Variant struct {
	Suffix string
	Label  string
}

// primary reports whether the variant earns the unsuffixed alias.
func (v Variant) primary() bool {
	return v.Label == "" || v.Label == "A"
}

// Layout selects how a section's CDN path is built.
type Layout int

const (
	// LayoutAssets is img/sp/assets/{type}/{section}/{id}{suffix}.{ext}.
	LayoutAssets Layout = iota
	// LayoutSprite is img/sp/cjs/{id}{suffix}.{ext}.
	LayoutSprite
	// LayoutNested is img/sp/assets/{type}/{path}/{id}{suffix}.{ext}.
	LayoutNested
	// LayoutMinigame is img/sp/event/revival012/minigame/assets/{type}/{section}/{id}{suffix}.{ext}.
	LayoutMinigame
)

// Spec describes one section of an object's asset table.
type Spec struct {
	Section        string
	Extension      string
	FilenameSuffix string
	Variants       []Variant
	Categories     []string

	// SectionLabel overrides the section token used in canonical names.
	SectionLabel string
	Layout       Layout
	// Path is the path segment used by LayoutNested.
	Path   string
	Custom *Custom
}

// Custom overrides the URL, canonical name or aliases of a section. Nil
// fields fall back to the generic rules.
type Custom struct {
	URL     func(assetID string, v Variant) string
	Name    func(objectType, assetID string, v Variant) string
	Aliases func(aliasBase string, v Variant, count int) []string
}

// Label returns the section token used in canonical names.
func (s *Spec) Label() string {
	if s.SectionLabel != "" {
		return s.SectionLabel
	}
	return s.Section
}

// variants pairs suffixes with labels, padding the shorter list with empty
// strings so that token i always pairs with label i.
func variants(suffixes, labels []string) []Variant {
	if len(suffixes) == 0 {
		suffixes = []string{""}
	}
	n := max(len(suffixes), len(labels))
	out := make([]Variant, n)
	for i := range n {
		if i < len(suffixes) {
			out[i].Suffix = suffixes[i]
		}
		if i < len(labels) {
			out[i].Label = labels[i]
		}
	}
	return out
}

// single is the variant list of a section with exactly one unlabeled form.
func single(suffix string) []Variant {
	return []Variant{{Suffix: suffix}}
}

// section is a compact constructor for table literals.
func section(name, ext, suffix string, vs []Variant, categories ...string) Spec {
	return Spec{
		Section:        name,
		Extension:      ext,
		FilenameSuffix: suffix,
		Variants:       vs,
		Categories:     categories,
	}
}

// AssetURL returns the CDN URL of an asset under img/sp/assets.
func AssetURL(host, objectType, sectionPath, file string) string {
	return fmt.Sprintf("http://%s/assets_en/img/sp/assets/%s/%s/%s", host, objectType, sectionPath, file)
}

// MinigameURL returns the CDN URL of a rucksack battle asset.
func MinigameURL(host, objectType, section, file string) string {
	return fmt.Sprintf("http://%s/assets_en/img/sp/event/revival012/minigame/assets/%s/%s/%s", host, objectType, section, file)
}

func spriteURL(host, file string) string {
	return fmt.Sprintf("http://%s/assets_en/img/sp/cjs/%s", host, file)
}

// Capitalize upper-cases the first letter and lower-cases the rest, the way
// canonical file names are normalized before upload.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = []rune(strings.ToUpper(string(r[0])))[0]
	return string(r)
}
