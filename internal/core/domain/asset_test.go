package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/gbfsync/internal/core/domain"
)

func TestAssetTask_Fingerprint(t *testing.T) {
	base := domain.AssetTask{
		URL:           "http://cdn.local/a.png",
		CanonicalName: "Weapon b 1040000000.png",
		AliasNames:    []string{"Sword (Fire).png"},
	}
	same := base
	same.Categories = []string{"Weapon Images"}
	same.Description = "ignored"

	renamed := base
	renamed.AliasNames = []string{"Sword (Water).png"}

	// The separator keeps shifted boundaries apart.
	shifted := domain.AssetTask{URL: "http://cdn.local/a.pngWeapon", CanonicalName: " b 1040000000.png", AliasNames: base.AliasNames}

	assert.Equal(t, base.Fingerprint(), same.Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), renamed.Fingerprint())
	assert.NotEqual(t, base.Fingerprint(), shifted.Fingerprint())
	assert.NotEmpty(t, base.Fingerprint())
}

func TestFetchResult_NotFound(t *testing.T) {
	assert.True(t, (&domain.FetchResult{Status: 404}).NotFound())
	assert.False(t, (&domain.FetchResult{Status: 503}).NotFound())
	assert.False(t, (&domain.FetchResult{OK: true, Status: 404}).NotFound())
}

func TestWikiFile_IsRedirect(t *testing.T) {
	assert.True(t, (&domain.WikiFile{RedirectTarget: "File:A.png"}).IsRedirect())
	assert.False(t, (&domain.WikiFile{Exists: true}).IsRedirect())
}
