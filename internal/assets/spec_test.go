package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantsPadsShorterList(t *testing.T) {
	got := variants([]string{"_01", "_02", "_03"}, []string{"A"})
	assert.Equal(t, []Variant{
		{Suffix: "_01", Label: "A"},
		{Suffix: "_02"},
		{Suffix: "_03"},
	}, got)

	got = variants(nil, []string{"A", "B"})
	assert.Equal(t, []Variant{{Suffix: "", Label: "A"}, {Suffix: "", Label: "B"}}, got)
}

func TestTablesArePaired(t *testing.T) {
	for _, kind := range Kinds() {
		for _, spec := range Specs(kind) {
			assert.NotEmpty(t, spec.Variants, "%s/%s", kind, spec.Section)
			assert.NotEmpty(t, spec.Categories, "%s/%s", kind, spec.Section)
		}
	}
}

func TestTallSkinVariants(t *testing.T) {
	vs := tallSkinVariants()
	assert.Len(t, vs, 17*6+18)
	assert.Equal(t, Variant{Suffix: "_01_s1", Label: "A_fire"}, vs[0])
	assert.Equal(t, Variant{Suffix: "_91_s6", Label: "EX_dark"}, vs[17*6-1])
	assert.Equal(t, Variant{Suffix: "_01_01", Label: "A01_fire"}, vs[17*6])
	assert.Equal(t, Variant{Suffix: "_03_06", Label: "A03_dark"}, vs[len(vs)-1])
}

func TestCapitalize(t *testing.T) {
	assert.Equal(t, "Weapon", Capitalize("weapon"))
	assert.Equal(t, "Npc", Capitalize("NPC"))
	assert.Empty(t, Capitalize(""))
}

func TestShardHost(t *testing.T) {
	assert.Equal(t, "prd-game-a5-granbluefantasy.akamaized.net", shardHost("prd-game-a-granbluefantasy.akamaized.net", "5"))
	assert.Equal(t, "cdn.local", shardHost("cdn.local", "1"))
}
