package assets

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/gbfsync/internal/wikitext"
)

// Identifiers are the object fields parsed once from a page's templates.
type Identifiers struct {
	PageName string
	// AssetIDs is ordered and free of duplicates.
	AssetIDs []string
	// Weapon is the lower-cased weapon subtype, e.g. "melee".
	Weapon string
	// Char and Desc override the base and display names of outfit pages.
	Char string
	Desc string
	// Class is set on class pages.
	Class *ClassFields
	// Items lists the item templates of the page, de-duplicated by id.
	Items []ItemFields
}

// ClassFields are the Class template fields.
type ClassFields struct {
	ID        string
	Num       string
	Abbr      string
	Lvl50ID   string
	Lvl50Num  string
	Lvl50Abbr string
	Name      string
	Family    string
	// Row is the raw row value; HasRow is false when the template omits it.
	Row    string
	HasRow bool
}

// ItemFields are the Item template fields.
type ItemFields struct {
	ID   string
	Name string
	Type string
}

var elementNames = []string{"Incendo", "Aqua", "Terra", "Ventus", "Lumen", "Nyx"}

var (
	paramDefault = regexp.MustCompile(`^{{{id\|([A-Za-z0-9_]+)}}}`)
	itemDefault  = regexp.MustCompile(`^{{{id\|([^}]+)}}}$`)
)

// assetID unwraps the {{{id|X}}} form used by shared family templates.
func assetID(raw string) string {
	raw = strings.TrimSpace(raw)
	if m := paramDefault.FindStringSubmatch(raw); m != nil {
		return m[1]
	}
	return raw
}

// BaseName returns the family name an inheriting page refers to. Pages named
// "X (Fire)" inherit from ":X"; elemental pages such as "Ignis Incendo"
// inherit from ":Ignis (Element)".
func BaseName(pageName string) string {
	base := "unknown"
	if strings.Contains(pageName, "(") {
		base = strings.TrimSpace(strings.SplitN(pageName, "(", 2)[0])
	}
	for _, element := range elementNames {
		if strings.Contains(pageName, element) {
			if i := strings.LastIndex(pageName, " "); i >= 0 {
				base = pageName[:i]
			} else {
				base = pageName
			}
			base += " (Element)"
			break
		}
	}
	return base
}

// Extract collects the identifiers of kind from page templates.
func Extract(kind Kind, pageName string, templates []wikitext.Template) Identifiers {
	ids := Identifiers{PageName: pageName}
	f, ok := lookup(kind)
	if !ok {
		return ids
	}
	switch kind {
	case KindClass:
		ids.Class = extractClass(f, templates)
		return ids
	case KindItem:
		ids.Items = extractItems(f, templates)
		return ids
	}

	base := ""
	if f.inherit {
		base = BaseName(pageName)
	}
	seen := make(map[string]struct{})
	for _, tpl := range templates {
		if !f.matches(tpl.Name) && !inherits(tpl.Name, base) {
			continue
		}
		for _, p := range tpl.Params {
			switch p.Name {
			case "id":
				id := assetID(p.Value)
				if id == "" {
					continue
				}
				if _, dup := seen[id]; dup {
					continue
				}
				seen[id] = struct{}{}
				ids.AssetIDs = append(ids.AssetIDs, id)
			case "weapon":
				if kind == KindWeapon && ids.Weapon == "" {
					ids.Weapon = strings.ToLower(wikitext.StripCode(p.Value))
				}
			case "char":
				if kind == KindSkin {
					ids.Char = strings.TrimSpace(p.Value)
				}
			case "desc":
				if kind == KindSkin {
					ids.Desc = strings.TrimSpace(p.Value)
				}
			}
		}
	}
	return ids
}

func inherits(name, base string) bool {
	if base == "" {
		return false
	}
	return strings.HasPrefix(name, "Weapon/Common/") || name == ":"+base
}

func extractClass(f family, templates []wikitext.Template) *ClassFields {
	for _, tpl := range templates {
		if !f.matches(tpl.Name) {
			continue
		}
		c := &ClassFields{}
		for _, p := range tpl.Params {
			value := wikitext.StripCode(p.Value)
			if value == "" {
				continue
			}
			switch strings.ToLower(p.Name) {
			case "id":
				c.ID = value
				c.Num, c.Abbr, _ = strings.Cut(value, "_")
			case "class":
				c.Name = value
			case "family":
				c.Family = value
			case "id_lvl50":
				c.Lvl50ID = value
				c.Lvl50Num, c.Lvl50Abbr, _ = strings.Cut(value, "_")
			case "row":
				c.Row = value
				c.HasRow = true
			}
		}
		return c
	}
	return nil
}

// ItemTypes lists the item families with CDN artwork.
var ItemTypes = []string{"article", "normal", "recycling", "skillplus", "evolution", "npcaugment"}

func extractItems(f family, templates []wikitext.Template) []ItemFields {
	var out []ItemFields
	seen := make(map[string]struct{})
	for _, tpl := range templates {
		if !f.matches(tpl.Name) {
			continue
		}
		item := ItemFields{Type: "article"}
		for _, p := range tpl.Params {
			switch p.Name {
			case "id":
				item.ID = strings.TrimSpace(p.Value)
				if m := itemDefault.FindStringSubmatch(item.ID); m != nil {
					item.ID = m[1]
				}
			case "name":
				item.Name = wikitext.StripCode(p.Value)
			case "item_type":
				if t := strings.ToLower(wikitext.StripCode(p.Value)); t != "" {
					item.Type = t
				}
			}
		}
		if item.ID == "" || item.Name == "" || !slices.Contains(ItemTypes, item.Type) {
			continue
		}
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// rowNumber returns the row as an integer when it parses as one.
func (c *ClassFields) rowNumber() (int, bool) {
	if !c.HasRow {
		return 0, false
	}
	n, err := strconv.Atoi(c.Row)
	return n, err == nil
}
