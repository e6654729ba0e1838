package redirect_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gbfsync/internal/core/ports/mocks"
	"go.trai.ch/gbfsync/internal/engine/redirect"
	"go.trai.ch/gbfsync/internal/engine/wikitest"
	"go.uber.org/mock/gomock"
)

func newMaintainer(t *testing.T, wiki *wikitest.Wiki) *redirect.Maintainer {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return redirect.New(wiki, log)
}

func TestFileTitle(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"weapon_b_1040001.png", "File:Weapon b 1040001.png"},
		{"File:Weapon b 1040001.png", "File:Weapon b 1040001.png"},
		{"File:sword.png", "File:Sword.png"},
		// Only the first letter is folded, the way the wiki normalizes
		// titles. The rest keeps its case so mixed-case aliases still match.
		{"sword of Eos.png", "File:Sword of Eos.png"},
		{"item_article_s_1AbC.jpg", "File:Item article s 1AbC.jpg"},
		{"éclair.png", "File:Éclair.png"},
		{"", "File:"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, redirect.FileTitle(tt.in), tt.in)
	}
}

func TestEnsureRedirect_Idempotent(t *testing.T) {
	wiki := wikitest.New()
	wiki.AddFile("File:Canonical.png", []byte("x"))
	m := newMaintainer(t, wiki)

	require.NoError(t, m.EnsureRedirect(t.Context(), "File:Canonical.png", "File:Old_name.png"))
	require.Len(t, wiki.Saves, 1)
	assert.Equal(t, wikitest.Save{
		Title: "File:Old name.png",
		Text:  "#REDIRECT [[File:Canonical.png]]",
	}, wiki.Saves[0])

	require.NoError(t, m.EnsureRedirect(t.Context(), "File:Canonical.png", "File:Old name.png"))
	assert.Len(t, wiki.Saves, 1, "second call must not write")
}

func TestEnsureRedirect_SelfIsNoop(t *testing.T) {
	wiki := wikitest.New()
	m := newMaintainer(t, wiki)

	require.NoError(t, m.EnsureRedirect(t.Context(), "File:A_b.png", "File:A b.png"))
	assert.Zero(t, wiki.Writes())
}

func TestEnsureRedirect_RepairsSourceBacklinks(t *testing.T) {
	wiki := wikitest.New()
	wiki.AddFile("File:Source.png", []byte("x"))
	wiki.Redirect("File:Older.png", "File:Source.png")
	wiki.Redirect("File:Oldest.png", "File:Older.png")
	m := newMaintainer(t, wiki)

	require.NoError(t, m.EnsureRedirect(t.Context(), "File:Target.png", "File:Source.png"))

	for _, title := range []string{"File:Source.png", "File:Older.png", "File:Oldest.png"} {
		assert.Equal(t, "#REDIRECT [[File:Target.png]]", wiki.Pages[title], title)
	}
	for _, save := range wiki.Saves[:2] {
		assert.Equal(t, redirect.SummaryDoubleRedirect, save.Summary)
	}
	assert.Equal(t, "File:Source.png", wiki.Saves[2].Title)
}

func TestRepairBacklinks_TerminatesOnCycle(t *testing.T) {
	wiki := wikitest.New()
	wiki.Redirect("File:X.png", "File:Y.png")
	wiki.Redirect("File:Y.png", "File:X.png")
	m := newMaintainer(t, wiki)

	require.NoError(t, m.RepairBacklinks(t.Context(), []string{"File:X.png"}, "File:T.png"))

	assert.Equal(t, "#REDIRECT [[File:T.png]]", wiki.Pages["File:X.png"])
	assert.Equal(t, "#REDIRECT [[File:T.png]]", wiki.Pages["File:Y.png"])
	assert.Len(t, wiki.Saves, 2)
}

func TestRepairBacklinks_LeavesNonFileRedirects(t *testing.T) {
	wiki := wikitest.New()
	wiki.Pages["Sword"] = "#REDIRECT [[Sword of Eos]]"
	wiki.Pages["Notes"] = "plain text"
	m := newMaintainer(t, wiki)

	require.NoError(t, m.RepairBacklinks(t.Context(), []string{"Sword", "Notes", "Missing"}, "File:T.png"))
	assert.Zero(t, wiki.Writes())
}

func TestCollapseDoubleRedirects(t *testing.T) {
	wiki := wikitest.New()
	wiki.AddFile("File:C.png", []byte("c"))
	wiki.Redirect("File:B1.png", "File:C.png")
	wiki.Redirect("File:B2.png", "File:C.png")
	wiki.Redirect("File:A1.png", "File:B1.png")
	wiki.Redirect("File:A2.png", "File:B2.png")
	m := newMaintainer(t, wiki)

	require.NoError(t, m.CollapseDoubleRedirects(t.Context(), "File:C.png"))

	first, err := wiki.Backlinks(t.Context(), "File:C.png", true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"File:A1.png", "File:A2.png", "File:B1.png", "File:B2.png"}, first)
	for _, hop := range first {
		second, err := wiki.Backlinks(t.Context(), hop, true)
		require.NoError(t, err)
		assert.Empty(t, second, hop)
	}

	saves := len(wiki.Saves)
	require.NoError(t, m.CollapseDoubleRedirects(t.Context(), "File:C.png"))
	assert.Len(t, wiki.Saves, saves)
}

func TestCollapseDoubleRedirects_Cycle(t *testing.T) {
	wiki := wikitest.New()
	wiki.Redirect("File:B.png", "File:C.png")
	wiki.Redirect("File:C.png", "File:B.png")
	m := newMaintainer(t, wiki)

	require.NoError(t, m.CollapseDoubleRedirects(t.Context(), "File:C.png"))
	assert.Zero(t, wiki.Writes(), "the canonical page itself is never rewritten")
}

func TestEnsureFileRedirect_Normalizes(t *testing.T) {
	wiki := wikitest.New()
	m := newMaintainer(t, wiki)

	require.NoError(t, m.EnsureFileRedirect(t.Context(), "weapon_b_1040001.png", "sword_of_eos.png"))
	assert.Equal(t, "#REDIRECT [[File:Weapon b 1040001.png]]", wiki.Pages["File:Sword of eos.png"])
}

func TestEnsureCategories(t *testing.T) {
	wiki := wikitest.New()
	wiki.AddFile("File:Status 1438.png", []byte("icon"))
	wiki.Pages["File:Status 1438.png"] = "[[Category:Status Icons]]"
	m := newMaintainer(t, wiki)

	cats := []string{"Status Icons", "Buff Icons"}
	require.NoError(t, m.EnsureCategories(t.Context(), "status_1438.png", cats))
	require.Len(t, wiki.Saves, 1)
	assert.Equal(t, wikitest.Save{
		Title:   "File:Status 1438.png",
		Text:    "[[Category:Status Icons]][[Category:Buff Icons]]",
		Summary: redirect.SummaryCategories,
	}, wiki.Saves[0])

	require.NoError(t, m.EnsureCategories(t.Context(), "status_1438.png", cats))
	assert.Len(t, wiki.Saves, 1)
}

func TestEnsureCategories_SkipsRedirectsAndMissing(t *testing.T) {
	wiki := wikitest.New()
	wiki.Redirect("File:Alias.png", "File:Canonical.png")
	m := newMaintainer(t, wiki)

	require.NoError(t, m.EnsureCategories(t.Context(), "Alias.png", []string{"Weapons"}))
	require.NoError(t, m.EnsureCategories(t.Context(), "Missing.png", []string{"Weapons"}))
	assert.Zero(t, wiki.Writes())
}

func TestEnsureRedirect_PropagatesSaveError(t *testing.T) {
	errSave := errors.New("protected page")
	wiki := wikitest.New()
	wiki.Err = func(op, _ string) error {
		if op == "PageSave" {
			return errSave
		}
		return nil
	}
	m := newMaintainer(t, wiki)

	err := m.EnsureRedirect(t.Context(), "File:T.png", "File:S.png")
	require.ErrorIs(t, err, errSave)
}
