package assets

import (
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/wikitext"
	"go.trai.ch/zerr"
)

var itemVariants = []struct{ section, alias string }{
	{section: "s", alias: "square"},
	{section: "m", alias: "icon"},
}

// ItemTasks returns the square and icon tasks of one item.
func (d *Deriver) ItemTasks(item ItemFields) []domain.AssetTask {
	tasks := make([]domain.AssetTask, 0, len(itemVariants))
	for _, v := range itemVariants {
		tasks = append(tasks, domain.AssetTask{
			URL:           fmt.Sprintf("https://%s/assets_en/img/sp/assets/item/%s/%s/%s.jpg", d.host, item.Type, v.section, item.ID),
			CanonicalName: fmt.Sprintf("item_%s_%s_%s.jpg", item.Type, v.section, item.ID),
			AliasNames:    []string{fmt.Sprintf("%s %s.jpg", item.Name, v.alias)},
		})
	}
	return tasks
}

// SingleItemTasks validates a user supplied item and returns its tasks.
// itemType must be one of ItemTypes; wiki markup in name is stripped.
func (d *Deriver) SingleItemTasks(itemType, id, name string) ([]domain.AssetTask, error) {
	item := ItemFields{
		Type: strings.ToLower(strings.TrimSpace(itemType)),
		ID:   strings.TrimSpace(id),
		Name: wikitext.StripCode(name),
	}
	if !slices.Contains(ItemTypes, item.Type) {
		return nil, zerr.With(domain.ErrUnknownObjectType, "item_type", item.Type)
	}
	if item.ID == "" || len(item.ID) > maxIdentifierLen || !bannerPattern.MatchString(item.ID) {
		return nil, zerr.With(domain.ErrInvalidIdentifier, "item", item.ID)
	}
	if item.Name == "" {
		return nil, zerr.With(domain.ErrInvalidIdentifier, "name", name)
	}
	return d.ItemTasks(item), nil
}
