package assets

import "fmt"

// Elements in the order the CDN numbers tall skin recolors (_s1 to _s6).
var elements = []string{"fire", "water", "earth", "wind", "light", "dark"}

var (
	uncapSuffixes = []string{
		"_01", "_01_1", "_01_101", "_01_102", "_01_103",
		"_02", "_02_1", "_02_101", "_02_102", "_02_103",
		"_03", "_03_1", "_03_101", "_03_102", "_03_103",
		"_04", "_81", "_82", "_91", "_91_0", "_91_1",
	}
	uncapLabels = []string{
		"A", "A2", "A101", "A102", "A103",
		"B", "B2", "B101", "B102", "B103",
		"C", "C2", "C101", "C102", "C103",
		"D", "ST", "ST2", "EX", "EX1", "EX2",
	}
)

// outfitForms returns the _01_01 to _03_06 alternate outfit suffixes and
// their A01 to C06 labels.
func outfitForms() (suffixes, labels []string) {
	for _, art := range []struct{ num, label string }{{"01", "A"}, {"02", "B"}, {"03", "C"}} {
		for i := 1; i <= 6; i++ {
			suffixes = append(suffixes, fmt.Sprintf("_%s_%02d", art.num, i))
			labels = append(labels, fmt.Sprintf("%s%02d", art.label, i))
		}
	}
	return suffixes, labels
}

// withStyle inserts the _88 style variant after _82.
func withStyle(suffixes, labels []string) ([]string, []string) {
	var s, l []string
	for i, suffix := range suffixes {
		s = append(s, suffix)
		l = append(l, labels[i])
		if suffix == "_82" {
			s = append(s, "_88")
			l = append(l, "ST8")
		}
	}
	return s, l
}

// elementCycle crosses each base suffix with the six element recolors.
func elementCycle(bases, labels []string) []Variant {
	out := make([]Variant, 0, len(bases)*len(elements))
	for i, base := range bases {
		for n, element := range elements {
			out = append(out, Variant{
				Suffix: fmt.Sprintf("%s_s%d", base, n+1),
				Label:  labels[i] + "_" + element,
			})
		}
	}
	return out
}

func tallSkinVariants() []Variant {
	vs := elementCycle(
		[]string{
			"_01", "_01_101", "_01_102", "_01_103",
			"_02", "_02_1", "_02_101", "_02_102", "_02_103",
			"_03", "_03_101", "_03_102", "_03_103",
			"_04", "_81", "_82", "_91",
		},
		[]string{
			"A", "A101", "A102", "A103",
			"B", "B2", "B101", "B102", "B103",
			"C", "C101", "C102", "C103",
			"D", "ST", "ST2", "EX",
		},
	)
	suffixes, _ := outfitForms()
	for i, suffix := range suffixes {
		vs = append(vs, Variant{
			Suffix: suffix,
			Label:  fmt.Sprintf("A%02d_%s", i/len(elements)+1, elements[i%len(elements)]),
		})
	}
	return vs
}

func characterSpecs() []Spec {
	extraSuffixes, extraLabels := outfitForms()
	styled, styledLabels := withStyle(uncapSuffixes, uncapLabels)
	full := variants(append(styled, extraSuffixes...), append(styledLabels, extraLabels...))
	tall := variants(
		append(append([]string{}, uncapSuffixes...), extraSuffixes...),
		append(append([]string{}, uncapLabels...), extraLabels...),
	)
	uncaps := variants(uncapSuffixes, uncapLabels)

	tallSkin := section("f_skin", "jpg", "_tall", tallSkinVariants(), "Character Images", "Tall Skin Character Images")
	tallSkin.Layout = LayoutNested
	tallSkin.Path = "f/skin"

	sky := variants(
		[]string{
			"_01", "_01_0", "_01_1", "_01_101", "_01_102", "_01_103",
			"_02", "_0201", "_02_1", "_02_101", "_02_102", "_02_103",
			"_03", "_03_1", "_03_101", "_03_102", "_03_103",
			"_04", "_81", "_82", "_91", "_91_0", "_91_1",
		},
		[]string{
			"A", "A1", "A2", "A101", "A102", "A103",
			"B", "B1", "B2", "B101", "B102", "B103",
			"C", "C2", "C101", "C102", "C103",
			"D", "ST", "ST2", "EX", "EX1", "EX2",
		},
	)

	return []Spec{
		section("zoom", "png", "", full, "Character Images", "Full Character Images"),
		tallSkin,
		section("f", "jpg", "_tall", tall, "Character Images", "Tall Character Images"),
		section("m", "jpg", "_icon", full, "Character Images", "Icon Character Images"),
		section("s", "jpg", "_square", full, "Character Images", "Square Character Images"),
		section("sd", "png", "_SD", uncaps, "Character Images", "Sprite Character Images"),
		section("cutin_special", "jpg", "_cutin", uncaps, "Character Images", "Cutin Character Images"),
		section("raid_chain", "jpg", "_chain", uncaps, "Character Images", "Chain Burst Character Images"),
		section("t", "png", "_babyl", uncaps, "Character Images", "Babyl Character Images"),
		section("detail", "png", "_detail", uncaps, "Character Images", "Detail Character Images"),
		section("raid_normal", "jpg", "_raid", uncaps, "Character Images", "Raid Character Images"),
		section("quest", "jpg", "_quest", uncaps, "Character Images", "Quest Character Images"),
		section("skycompass", "png", "_HD", sky, "Character Images", "Skycompass Images", "Skycompass Character Images"),
	}
}
