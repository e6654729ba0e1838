package assets

import "strings"

// Kind names an object family that a wiki page can describe.
type Kind string

// Supported object kinds.
const (
	KindClass     Kind = "class"
	KindSkin      Kind = "skin"
	KindCharacter Kind = "character"
	KindWeapon    Kind = "weapon"
	KindSummon    Kind = "summon"
	KindNPC       Kind = "npc"
	KindArtifact  Kind = "artifact"
	KindItem      Kind = "item"
	KindRucksack  Kind = "rucksack"
)

// Expansion rewrites a table before the generic derivation loop runs.
type Expansion func(specs []Spec, ids Identifiers) []Spec

type family struct {
	kind Kind
	// assetType is the CDN path segment and the canonical name prefix.
	assetType string
	template  string
	// foldCase matches the template name case-insensitively.
	foldCase bool
	inherit  bool
	specs    func() []Spec
	expand   []Expansion
}

// Detection order: the first family whose template appears on the page wins.
var families = []family{
	{kind: KindClass, template: "class", foldCase: true},
	{kind: KindSkin, assetType: "npc", template: "CharSkin", specs: skinSpecs},
	{kind: KindCharacter, assetType: "npc", template: "Character", specs: characterSpecs},
	{kind: KindWeapon, assetType: "weapon", template: "Weapon", inherit: true, specs: weaponSpecs, expand: []Expansion{meleeSprites}},
	{kind: KindSummon, assetType: "summon", template: "Summon", specs: summonSpecs},
	{kind: KindNPC, assetType: "npc", template: "Non-party Character", specs: npcSpecs},
	{kind: KindArtifact, assetType: "artifact", template: "Artifact", specs: artifactSpecs},
	{kind: KindItem, template: "item", foldCase: true},
	{kind: KindRucksack, assetType: "item", template: "User:AdlaiT/RucksackItem", specs: rucksackSpecs},
}

func lookup(kind Kind) (family, bool) {
	for _, f := range families {
		if f.kind == kind {
			return f, true
		}
	}
	return family{}, false
}

// Kinds lists the supported object kinds in detection order.
func Kinds() []Kind {
	out := make([]Kind, len(families))
	for i, f := range families {
		out[i] = f.kind
	}
	return out
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, bool) {
	f, ok := lookup(Kind(strings.ToLower(strings.TrimSpace(s))))
	return f.kind, ok
}

// AssetType returns the CDN path segment of kind, or "" for kinds whose
// assets live outside img/sp/assets/{type}.
func AssetType(kind Kind) string {
	f, _ := lookup(kind)
	return f.assetType
}

// Specs returns a fresh copy of the descriptor table of kind.
func Specs(kind Kind) []Spec {
	f, ok := lookup(kind)
	if !ok || f.specs == nil {
		return nil
	}
	return f.specs()
}

func (f family) matches(name string) bool {
	if f.foldCase {
		return strings.EqualFold(name, f.template)
	}
	return name == f.template
}

// meleeSprites replaces the weapon sprite section with the two-part melee
// sprite set.
func meleeSprites(specs []Spec, ids Identifiers) []Spec {
	if !strings.EqualFold(ids.Weapon, "melee") {
		return specs
	}
	out := make([]Spec, 0, len(specs))
	for _, s := range specs {
		if s.Section != "wsp" {
			out = append(out, s)
			continue
		}
		out = append(out, Spec{
			Section:      s.Section,
			Extension:    s.Extension,
			Variants:     []Variant{{Suffix: "_1", Label: "1"}, {Suffix: "_2", Label: "2"}},
			Categories:   s.Categories,
			SectionLabel: "sp",
			Layout:       LayoutSprite,
			Custom: &Custom{
				Name: func(objectType, assetID string, v Variant) string {
					return Capitalize(objectType) + " sp " + assetID + " " + v.Label + "." + s.Extension
				},
				Aliases: func(aliasBase string, v Variant, _ int) []string {
					return []string{aliasBase + " sprite" + v.Label + "." + s.Extension}
				},
			},
		})
	}
	return out
}
