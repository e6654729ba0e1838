package assets

import (
	"fmt"
	"strings"

	"go.trai.ch/gbfsync/internal/core/domain"
)

var romanRows = []string{"0", "I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX"}

type gender struct {
	code     int
	alias    string
	category string
}

var genders = []gender{
	{code: 0, alias: "gran", category: "Gran Class Images"},
	{code: 1, alias: "djeeta", category: "Djeeta Class Images"},
}

const classCategory = "Class Images"

// lvl50Mode decides when a class section also ships Lv50 artwork.
type lvl50Mode int

const (
	lvl50Never lvl50Mode = iota
	// lvl50Always adds the Lv50 form whenever id_lvl50 is set.
	lvl50Always
	// lvl50RowZero adds it only for row 0 classes with complete Lv50 fields.
	lvl50RowZero
)

// classForm is one id triple a gendered section is rendered for.
type classForm struct {
	id    string
	num   string
	abbr  string
	lvl50 bool
}

// classSection is a gendered leader section. Aliases receive the class
// name, the gender and whether the form is the Lv50 one.
type classSection struct {
	section string
	ext     string
	shard   string
	lvl50   lvl50Mode
	// needsName skips the section when the class name is unknown.
	needsName bool
	url       func(host string, f classForm, g gender) string
	name      func(f classForm, g gender) string
	aliases   func(name string, f classForm, g gender) []string
}

// leader builds the common leader/{section}/{id}_{gender}_01.{ext} section.
func leader(sec, ext string, mode lvl50Mode, aliases func(name string, f classForm, g gender) []string) classSection {
	return classSection{
		section: sec,
		ext:     ext,
		lvl50:   mode,
		url: func(host string, f classForm, g gender) string {
			return fmt.Sprintf("https://%s/assets_en/img/sp/assets/leader/%s/%s_%d_01.%s", host, sec, f.id, g.code, ext)
		},
		name: func(f classForm, g gender) string {
			return fmt.Sprintf("leader_%s_%s_%s_%d_01.%s", sec, f.num, f.abbr, g.code, ext)
		},
		aliases: aliases,
	}
}

// shortName is the leader_{section}_{num}_{gender}_01 alias most sections carry.
func shortName(sec, ext string) func(f classForm, g gender) string {
	return func(f classForm, g gender) string {
		return fmt.Sprintf("leader_%s_%s_%d_01.%s", sec, f.num, g.code, ext)
	}
}

// tiered returns the short alias plus a base or Lv50 friendly alias.
func tiered(sec, ext, base, lvl50 string) func(name string, f classForm, g gender) []string {
	short := shortName(sec, ext)
	return func(name string, f classForm, g gender) []string {
		friendly := base
		if f.lvl50 {
			friendly = lvl50
		}
		return []string{short(f, g), fmt.Sprintf("%s_%s_%s", name, g.alias, friendly)}
	}
}

func withName(s classSection) classSection {
	s.needsName = true
	return s
}

func withShard(s classSection, shard string) classSection {
	s.shard = shard
	return s
}

func classSections() []classSection {
	skycompass := classSection{
		section:   "HD",
		ext:       "png",
		lvl50:     lvl50RowZero,
		needsName: true,
		url: func(_ string, f classForm, g gender) string {
			return fmt.Sprintf("%s/assets/customizes/jobs/1138x1138/%s_%d.png", skycompassHost, f.num, g.code)
		},
		name: func(f classForm, g gender) string {
			return fmt.Sprintf("jobs_1138x1138_%s_%d.png", f.num, g.code)
		},
		aliases: func(name string, f classForm, g gender) []string {
			suffix := "HD"
			if f.lvl50 {
				suffix = "HD2"
			}
			return []string{fmt.Sprintf("%s %s %s.png", name, g.alias, suffix)}
		},
	}

	return []classSection{
		leader("sd", "png", lvl50Never, func(_ string, f classForm, g gender) []string {
			return []string{shortName("sd", "png")(f, g)}
		}),
		leader("job_change", "png", lvl50Never, func(name string, _ classForm, g gender) []string {
			return []string{fmt.Sprintf("%s_%s.png", name, g.alias)}
		}),
		leader("jobm", "jpg", lvl50Never, func(name string, f classForm, g gender) []string {
			return []string{fmt.Sprintf("%s_%s_jobm.png", name, g.alias), shortName("jobm", "jpg")(f, g)}
		}),
		leader("p", "png", lvl50Always, tiered("p", "png", "party.png", "party2.png")),
		leader("jobon_z", "png", lvl50Always, tiered("jobon_z", "png", "jobon_z.png", "jobon_z2.png")),
		leader("jlon", "png", lvl50Always, func(name string, f classForm, g gender) []string {
			return []string{fmt.Sprintf("%s_%s_jlon.png", name, g.alias), shortName("jlon", "png")(f, g)}
		}),
		leader("result_ml", "jpg", lvl50Always, tiered("result_ml", "jpg", "result_ml.jpg", "result_ml_lvl50.jpg")),
		withName(withShard(leader("result", "jpg", lvl50Always, tiered("result", "jpg", "result.jpg", "result_lvl50.jpg")), "5")),
		withName(withShard(leader("pm", "png", lvl50Always, tiered("pm", "png", "profile.png", "profile2.png")), "5")),
		withName(withShard(leader("raid_log", "png", lvl50Always, tiered("raid_log", "png", "raid_log.png", "raid_log2.png")), "1")),
		withName(leader("quest", "jpg", lvl50RowZero, tiered("quest", "jpg", "quest.png", "quest2.png"))),
		withName(leader("coop", "png", lvl50RowZero, tiered("coop", "png", "coop.png", "coop2.png"))),
		withName(leader("btn", "png", lvl50RowZero, tiered("btn", "png", "btn.png", "btn2.png"))),
		skycompass,
		withName(leader("my", "png", lvl50RowZero, func(name string, f classForm, g gender) []string {
			suffix := ""
			if f.lvl50 {
				suffix = "2"
			}
			return []string{
				shortName("my", "png")(f, g),
				fmt.Sprintf("%s_%s_homescreen%s.png", name, g.alias, suffix),
				fmt.Sprintf("%s_%s_my%s.png", name, g.alias, suffix),
			}
		})),
		withName(leader("zenith", "png", lvl50RowZero, tiered("zenith", "png", "zenith.png", "zenith2.png"))),
		withName(leader("t", "png", lvl50RowZero, func(name string, f classForm, g gender) []string {
			out := []string{shortName("t", "png")(f, g)}
			if f.lvl50 {
				out = append(out, fmt.Sprintf("%s_%s_babyl2.png", name, g.alias))
			}
			return out
		})),
	}
}

// shardHost maps the default CDN host to one of its numbered mirrors.
func shardHost(host, shard string) string {
	if shard == "" {
		return host
	}
	return strings.Replace(host, "prd-game-a-", "prd-game-a"+shard+"-", 1)
}

func (c *ClassFields) rowSuffix() string {
	if n, ok := c.rowNumber(); ok && n >= 0 && n < len(romanRows) {
		return romanRows[n]
	}
	return c.Row
}

// lvl50Form returns the Lv50 id triple when mode allows it.
func (c *ClassFields) lvl50Form(mode lvl50Mode) (classForm, bool) {
	switch mode {
	case lvl50Always:
		if c.Lvl50ID == "" {
			return classForm{}, false
		}
	case lvl50RowZero:
		row, ok := c.rowNumber()
		if !ok || row != 0 || c.Lvl50ID == "" || c.Lvl50Num == "" || c.Lvl50Abbr == "" {
			return classForm{}, false
		}
	default:
		return classForm{}, false
	}
	num, abbr, found := strings.Cut(c.Lvl50ID, "_")
	if c.Lvl50Num != "" {
		num = c.Lvl50Num
	}
	switch {
	case c.Lvl50Abbr != "":
		abbr = c.Lvl50Abbr
	case !found:
		abbr = c.Abbr
	}
	return classForm{id: c.Lvl50ID, num: num, abbr: abbr, lvl50: true}, true
}

func (d *Deriver) classTasks(c *ClassFields) []domain.AssetTask {
	var tasks []domain.AssetTask
	add := func(url, name string, aliases ...string) {
		tasks = append(tasks, domain.AssetTask{
			URL:           url,
			CanonicalName: name,
			AliasNames:    aliases,
			Categories:    []string{classCategory},
		})
	}
	cdn := func(shard, path string) string {
		return fmt.Sprintf("https://%s/assets_en/img/sp/%s", shardHost(d.host, shard), path)
	}

	hasIDs := c.ID != "" && c.Num != "" && c.Abbr != ""
	for i, sec := range classSections() {
		if hasIDs && (!sec.needsName || c.Name != "") {
			tasks = append(tasks, d.genderedTasks(c, sec)...)
		}
		// The shared SD sprite follows the gendered sprites.
		if i == 0 && c.Num != "" && c.Name != "" && c.HasRow && c.Family != "" {
			add(
				cdn("", "assets/leader/sd/m/"+c.Num+"_01.jpg"),
				"leader_sd_m_"+c.Num+"_01.jpg",
				c.Name+"_sdm.jpg", c.Family+"_"+c.rowSuffix()+"_sdm.jpg",
			)
		}
	}

	if c.Num != "" && c.Name != "" {
		add(cdn("", "assets/leader/m/"+c.Num+"_01.jpg"), "leader_m_"+c.Num+"_01.jpg", c.Name+" icon.jpg")
	}
	if hasIDs && c.Name != "" {
		square := leader("s", "jpg", lvl50RowZero, tiered("s", "jpg", "square.jpg", "square_lvl50.jpg"))
		tasks = append(tasks, d.genderedTasks(c, square)...)
	}
	if c.Num != "" && c.Name != "" {
		add(cdn("", "assets/leader/s/"+c.Num+"_01.jpg"), "leader_s_"+c.Num+"_01.jpg", c.Name+" square.jpg")
	}
	if c.Num != "" && c.Family != "" && c.Name != "" {
		row := c.rowSuffix()
		add(
			cdn("", "ui/icon/job/"+c.Num+".png"),
			"icon_job_"+c.Num+".png",
			"icon_"+c.Family+"_"+row+".png", "icon_"+c.Name+".png",
		)
		add(
			cdn("", "assets/leader/jobtree/"+c.Num+".png"),
			"leader_jobtree_"+c.Num+".png",
			c.Family+"_"+row+"_jobtree.png", c.Name+"_jobtree.png",
		)
	}
	if c.Num != "" {
		add(cdn("5", "ui/job_name_tree_l/"+c.Num+".png"), "job_name_tree_l_"+c.Num+".png")
		if c.Name != "" {
			add(
				cdn("", "ui/job_name/job_change/"+c.Num+".png"),
				"job_name_"+c.Num+".png",
				c.Name+"_name.png", "job_name_job_change_"+c.Num+".png",
			)
			add(
				cdn("1", "ui/job_name/job_list/"+c.Num+".png"),
				"job_list_"+c.Num+".png",
				c.Name+"_job_list.png", "Job_name_job_list_"+c.Num+".png",
			)
		}
	}
	return tasks
}

// genderedTasks renders sec for the base form and, when available, the
// Lv50 form, each for both genders.
func (d *Deriver) genderedTasks(c *ClassFields, sec classSection) []domain.AssetTask {
	forms := []classForm{{id: c.ID, num: c.Num, abbr: c.Abbr}}
	if f, ok := c.lvl50Form(sec.lvl50); ok {
		forms = append(forms, f)
	}
	host := shardHost(d.host, sec.shard)
	var tasks []domain.AssetTask
	for _, f := range forms {
		for _, g := range genders {
			tasks = append(tasks, domain.AssetTask{
				URL:           sec.url(host, f, g),
				CanonicalName: sec.name(f, g),
				AliasNames:    sec.aliases(c.Name, f, g),
				Categories:    []string{classCategory, g.category},
			})
		}
	}
	return tasks
}
