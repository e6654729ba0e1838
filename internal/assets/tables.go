package assets

import "fmt"

const skycompassHost = "https://media.skycompass.io"

func weaponSpecs() []Spec {
	abc := variants([]string{"", "_02", "_03"}, []string{"A", "B", "C"})
	sprite := section("wsp", "png", "_sprite", abc, "Weapon Images", "Weapon Sprites")
	sprite.SectionLabel = "sp"
	sprite.Layout = LayoutSprite
	return []Spec{
		section("b", "png", "", abc, "Weapon Images", "Full Weapon Images"),
		section("ls", "jpg", "_tall", abc, "Weapon Images", "Tall Weapon Images"),
		section("m", "jpg", "_icon", abc, "Weapon Images", "Icon Weapon Images"),
		section("s", "jpg", "_square", abc, "Weapon Images", "Square Weapon Images"),
		sprite,
	}
}

func summonSpecs() []Spec {
	abcd := variants([]string{"", "_02", "_03", "_04"}, []string{"A", "B", "C", "D"})
	return []Spec{
		section("b", "png", "", abcd, "Summon Images", "Full Summon Images"),
		section("ls", "jpg", "_tall", abcd, "Summon Images", "Tall Summon Images"),
		section("m", "jpg", "_icon", abcd, "Summon Images", "Icon Summon Images"),
		section("s", "jpg", "_square", abcd, "Summon Images", "Square Summon Images"),
		section("party_main", "jpg", "_party_main", abcd, "Summon Images", "Party Main Summon Images"),
		section("party_sub", "jpg", "_party_sub", abcd, "Summon Images", "Party Sub Summon Images"),
		section("detail", "png", "_detail", abcd, "Summon Images", "Detail Summon Images"),
		{
			Section:    "skycompass",
			Extension:  "png",
			Variants:   single(""),
			Categories: []string{"Summon Images", "Skycompass Images", "Skycompass Summon Images"},
			Custom: &Custom{
				URL: func(assetID string, _ Variant) string {
					return fmt.Sprintf("%s/assets/archives/summons/%s/detail_l.png", skycompassHost, assetID)
				},
				Name: func(_, assetID string, _ Variant) string {
					return fmt.Sprintf("archives_summons_%s_detail_l.png", assetID)
				},
				Aliases: func(aliasBase string, _ Variant, _ int) []string {
					return []string{aliasBase + "_HD.png"}
				},
			},
		},
	}
}

func npcSpecs() []Spec {
	first := variants([]string{"_01"}, []string{""})
	return []Spec{
		section("zoom", "png", "", first, "NPC Images", "Full NPC Images"),
		section("m", "jpg", "_icon", first, "NPC Images", "Icon NPC Images"),
	}
}

func artifactSpecs() []Spec {
	return []Spec{
		section("hdr", "png", "", single(""), "Artifact Images", "Full Artifact Images"),
		section("m", "jpg", "_icon", single(""), "Artifact Images", "Icon Artifact Images"),
		section("s", "jpg", "_square", single(""), "Artifact Images", "Square Artifact Images"),
	}
}

func skinSpecs() []Spec {
	forms := variants(
		[]string{"_01", "_01_0", "_01_1", "_81", "_82"},
		[]string{"A", "A0", "A1", "ST", "ST2"},
	)
	outfit := func(name, ext, suffix, category string) Spec {
		return section(name, ext, suffix, forms, "Outfit Images", category)
	}
	return []Spec{
		outfit("zoom", "png", "", "Full Outfit Images"),
		outfit("sd", "png", "_SD", "Sprite Outfit Images"),
		outfit("f", "jpg", "_tall", "Tall Outfit Images"),
		outfit("m", "jpg", "_icon", "Icon Outfit Images"),
		outfit("s", "jpg", "_square", "Square Outfit Images"),
		outfit("skin", "png", "_skin", "Skin Outfit Images"),
		outfit("detail", "png", "_detail", "Detail Outfit Character Images"),
		outfit("t", "png", "_babyl", "Babyl Outfit Character Images"),
		outfit("raid_normal", "jpg", "_raid", "Raid Outfit Character Images"),
		outfit("cutin_special", "jpg", "_cutin", "Cutin Outfit Character Images"),
		outfit("raid_chain", "jpg", "_chain", "Chain Burst Outfit Character Images"),
		outfit("quest", "jpg", "_quest", "Quest Outfit Character Images"),
		outfit("qm", "png", "_qm", "QM Outfit Character Images"),
	}
}

// rucksackSpecs covers the rucksack battle items. They get no page aliases.
func rucksackSpecs() []Spec {
	base := section("base", "png", "", single(""), "Rucksack Battles Images", "Base Rucksack Battles Images")
	base.Layout = LayoutMinigame
	base.Custom = &Custom{
		Aliases: func(string, Variant, int) []string { return nil },
	}
	return []Spec{base}
}
