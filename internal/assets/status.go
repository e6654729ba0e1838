package assets

import (
	"fmt"
	"regexp"
	"strings"

	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/zerr"
)

// Defaults for ranged uploads.
const (
	DefaultStatusRange = 10
	DefaultBannerRange = 12
)

// StatusIconDescription is the initial page text of uploaded status icons.
const StatusIconDescription = "[[Category:Status Icons]]"

var (
	statusPattern = regexp.MustCompile(`^[A-Za-z0-9_]+#?$`)
	bannerPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

const maxIdentifierLen = 64

func (d *Deriver) statusTask(identifier string) domain.AssetTask {
	return domain.AssetTask{
		URL:           fmt.Sprintf("https://%s/assets_en/img/sp/ui/icon/status/x64/%s.png", d.host, identifier),
		CanonicalName: identifier + ".png",
		Description:   StatusIconDescription,
	}
}

// StatusIconTasks returns the tasks for a status icon identifier such as
// "1438" or "status_1438". An identifier ending in "#" is ranged: the base
// icon is tried first, then {base}_{i} for i in 1..maxIndex, each falling
// back to {base}{i}. maxIndex <= 0 selects DefaultStatusRange.
func (d *Deriver) StatusIconTasks(identifier string, maxIndex int) ([]domain.AssetTask, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || len(identifier) > maxIdentifierLen || !statusPattern.MatchString(identifier) {
		return nil, zerr.With(domain.ErrInvalidIdentifier, "status", identifier)
	}

	base, ranged := strings.CutSuffix(identifier, "#")
	if ranged {
		base = strings.TrimSuffix(base, "_")
	}
	if !strings.HasPrefix(base, "status_") {
		base = "status_" + base
	}

	tasks := []domain.AssetTask{d.statusTask(base)}
	if !ranged {
		return tasks, nil
	}
	if maxIndex <= 0 {
		maxIndex = DefaultStatusRange
	}
	for i := 1; i <= maxIndex; i++ {
		task := d.statusTask(fmt.Sprintf("%s_%d", base, i))
		fallback := d.statusTask(fmt.Sprintf("%s%d", base, i))
		task.Fallback = &fallback
		tasks = append(tasks, task)
	}
	return tasks, nil
}

// BannerTasks returns banner_{id}_{i}.png for i in 1..maxIndex. A leading
// "banner_" on id is ignored. maxIndex <= 0 selects DefaultBannerRange.
func (d *Deriver) BannerTasks(id string, maxIndex int) ([]domain.AssetTask, error) {
	id = strings.TrimSpace(id)
	if strings.HasPrefix(strings.ToLower(id), "banner_") {
		id = id[len("banner_"):]
	}
	if id == "" || len(id) > maxIdentifierLen || !bannerPattern.MatchString(id) {
		return nil, zerr.With(domain.ErrInvalidIdentifier, "banner", id)
	}
	if maxIndex <= 0 {
		maxIndex = DefaultBannerRange
	}
	tasks := make([]domain.AssetTask, 0, maxIndex)
	for i := 1; i <= maxIndex; i++ {
		file := fmt.Sprintf("banner_%s_%d.png", id, i)
		tasks = append(tasks, domain.AssetTask{
			URL:           fmt.Sprintf("https://%s/assets_en/img/sp/banner/gacha/%s", d.host, file),
			CanonicalName: file,
		})
	}
	return tasks, nil
}
