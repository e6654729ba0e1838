package assets

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/wikitext"
	"go.trai.ch/zerr"
)

// Deriver turns descriptor tables and page identifiers into asset tasks.
type Deriver struct {
	host string
}

// NewDeriver creates a Deriver for the given CDN host.
func NewDeriver(host string) *Deriver {
	if host == "" {
		host = domain.DefaultCDNHost
	}
	return &Deriver{host: host}
}

// Host returns the CDN host the deriver builds URLs against.
func (d *Deriver) Host() string {
	return d.host
}

// Derive builds the task for variant index of spec. It performs no I/O and
// returns identical tasks for identical inputs.
func (d *Deriver) Derive(kind Kind, assetID string, spec Spec, index int, ids Identifiers) domain.AssetTask {
	objectType := AssetType(kind)
	v := spec.Variants[index]
	count := len(spec.Variants)
	custom := spec.Custom
	if custom == nil {
		custom = &Custom{}
	}

	task := domain.AssetTask{Categories: slices.Clone(spec.Categories)}

	file := assetID + v.Suffix + "." + spec.Extension
	switch {
	case custom.URL != nil:
		task.URL = custom.URL(assetID, v)
	case spec.Layout == LayoutSprite:
		task.URL = spriteURL(d.host, file)
	case spec.Layout == LayoutNested:
		task.URL = AssetURL(d.host, objectType, spec.Path, file)
	case spec.Layout == LayoutMinigame:
		task.URL = MinigameURL(d.host, objectType, spec.Section, file)
	default:
		task.URL = AssetURL(d.host, objectType, spec.Section, file)
	}

	if custom.Name != nil {
		task.CanonicalName = custom.Name(objectType, assetID, v)
	} else {
		task.CanonicalName = fmt.Sprintf("%s %s %s", Capitalize(objectType), spec.Label(), file)
	}

	base := aliasBase(kind, ids)
	if custom.Aliases != nil {
		task.AliasNames = custom.Aliases(base, v, count)
	} else {
		task.AliasNames = aliases(base, spec, v, count)
	}
	return task
}

// aliases applies the generic alias rule: the bare name goes to the primary
// variant or to a section with one variant, and multi-variant sections also
// get a labeled name.
func aliases(base string, spec Spec, v Variant, count int) []string {
	var out []string
	if count < 2 || v.primary() {
		out = append(out, base+spec.FilenameSuffix+"."+spec.Extension)
	}
	if count > 1 && v.Label != "" {
		spacer := ""
		if spec.FilenameSuffix == "" {
			spacer = " "
		}
		labeled := base + spec.FilenameSuffix + spacer + v.Label + "." + spec.Extension
		if !slices.Contains(out, labeled) {
			out = append(out, labeled)
		}
	}
	return out
}

func aliasBase(kind Kind, ids Identifiers) string {
	if kind != KindSkin {
		return ids.PageName
	}
	name, char := ids.PageName, "MC"
	if ids.Desc != "" {
		name = ids.Desc
	}
	if ids.Char != "" {
		char = ids.Char
	}
	return fmt.Sprintf("%s_(%s)", name, char)
}

// Expand returns the descriptor table of kind after its expansions ran.
func Expand(kind Kind, ids Identifiers) []Spec {
	f, ok := lookup(kind)
	if !ok || f.specs == nil {
		return nil
	}
	specs := f.specs()
	for _, expand := range f.expand {
		specs = expand(specs, ids)
	}
	return specs
}

// DeriveAll expands every asset id across every section and variant in
// table order.
func (d *Deriver) DeriveAll(kind Kind, ids Identifiers) []domain.AssetTask {
	switch kind {
	case KindClass:
		if ids.Class == nil {
			return nil
		}
		return d.classTasks(ids.Class)
	case KindItem:
		var tasks []domain.AssetTask
		for _, item := range ids.Items {
			tasks = append(tasks, d.ItemTasks(item)...)
		}
		return tasks
	}

	specs := Expand(kind, ids)
	var tasks []domain.AssetTask
	for _, id := range ids.AssetIDs {
		for _, spec := range specs {
			for i := range spec.Variants {
				tasks = append(tasks, d.Derive(kind, id, spec, i, ids))
			}
		}
	}
	return tasks
}

// Detect returns the kind of the first family whose template appears in
// templates.
func Detect(templates []wikitext.Template) (Kind, bool) {
	for _, f := range families {
		for _, tpl := range templates {
			if f.matches(tpl.Name) {
				return f.kind, true
			}
		}
	}
	return "", false
}

// Page is the derivation result of one wiki page.
type Page struct {
	Kind        Kind
	Identifiers Identifiers
	Tasks       []domain.AssetTask
}

// ForPage parses text, detects the object kind unless force is set, and
// derives the page's tasks.
func (d *Deriver) ForPage(title, text string, force Kind) (*Page, error) {
	templates := wikitext.Parse(text)
	kind := force
	if kind == "" {
		detected, ok := Detect(templates)
		if !ok {
			return nil, zerr.With(domain.ErrNoTemplates, "page", title)
		}
		kind = detected
	} else if _, ok := lookup(kind); !ok {
		return nil, zerr.With(domain.ErrUnknownObjectType, "kind", string(kind))
	}

	ids := Extract(kind, strings.TrimSpace(title), templates)
	tasks := d.DeriveAll(kind, ids)
	if len(tasks) == 0 {
		return nil, zerr.With(zerr.With(domain.ErrNoAssetIDs, "page", title), "kind", string(kind))
	}
	return &Page{Kind: kind, Identifiers: ids, Tasks: tasks}, nil
}
