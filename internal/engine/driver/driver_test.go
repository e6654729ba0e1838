package driver_test

import (
	"context"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gbfsync/internal/adapters/cdn"
	"go.trai.ch/gbfsync/internal/adapters/telemetry"
	"go.trai.ch/gbfsync/internal/assets"
	"go.trai.ch/gbfsync/internal/core/domain"
	"go.trai.ch/gbfsync/internal/core/ports"
	"go.trai.ch/gbfsync/internal/core/ports/mocks"
	"go.trai.ch/gbfsync/internal/engine/driver"
	"go.trai.ch/gbfsync/internal/engine/redirect"
	"go.trai.ch/gbfsync/internal/engine/resolver"
	"go.trai.ch/gbfsync/internal/engine/wikitest"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	wiki    *wikitest.Wiki
	fetcher *mocks.MockFetcher
	ledger  *mocks.MockLedger
	logger  *mocks.MockLogger
	driver  *driver.Driver

	mu      sync.Mutex
	entries []domain.LedgerEntry
	events  []domain.Progress
}

func setup(t *testing.T, cfg domain.SyncConfig, opts ...driver.Option) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		wiki:    wikitest.New(),
		fetcher: mocks.NewMockFetcher(ctrl),
		ledger:  mocks.NewMockLedger(ctrl),
		logger:  mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Error(gomock.Any()).AnyTimes()

	f.ledger.EXPECT().BeginRun(gomock.Any(), gomock.Any()).Return("run-1", nil).AnyTimes()
	f.ledger.EXPECT().Record(gomock.Any(), "run-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, e domain.LedgerEntry) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.entries = append(f.entries, e)
			return nil
		}).AnyTimes()
	f.ledger.EXPECT().FinishRun(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	redirects := redirect.New(f.wiki, f.logger)
	res := resolver.New(f.wiki, f.fetcher, redirects, f.logger, "cdn.local")
	d := driver.New(
		f.wiki,
		f.fetcher,
		res,
		redirects,
		assets.NewDeriver(""),
		f.ledger,
		telemetry.NewNoOpTracer(),
		f.logger,
		cfg,
		opts...,
	)
	f.driver = d.WithProgress(ports.ProgressFunc(func(p domain.Progress) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.events = append(f.events, p)
	}))
	return f
}

func noSleep(context.Context, time.Duration) error { return nil }

func ok(url string, payload []byte) domain.FetchResult {
	digest, size := cdn.Identity(payload)
	return domain.FetchResult{OK: true, URL: url, Digest: digest, Size: size, Payload: payload, Status: 200, Attempts: 1}
}

func missing(url string) domain.FetchResult {
	return domain.FetchResult{URL: url, Status: 404, Attempts: 1, Err: domain.ErrAssetNotFound}
}

// serve answers Fetch and FetchBatch from cdn; unknown URLs are 404.
func (f *fixture) serve(files map[string][]byte) {
	one := func(_ context.Context, url string) (domain.FetchResult, error) {
		if payload, found := files[url]; found {
			return ok(url, payload), nil
		}
		return missing(url), nil
	}
	f.fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any()).DoAndReturn(one).AnyTimes()
	f.fetcher.EXPECT().FetchBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, urls []string) ([]domain.FetchResult, error) {
			out := make([]domain.FetchResult, len(urls))
			for i, u := range urls {
				out[i], _ = one(ctx, u)
			}
			return out, nil
		}).AnyTimes()
}

func assertMonotonic(t *testing.T, events []domain.Progress) {
	t.Helper()
	for i := 1; i < len(events); i++ {
		prev, cur := events[i-1], events[i]
		assert.GreaterOrEqual(t, cur.Downloaded, prev.Downloaded)
		assert.GreaterOrEqual(t, cur.Processed, prev.Processed)
		assert.GreaterOrEqual(t, cur.Uploaded, prev.Uploaded)
		assert.GreaterOrEqual(t, cur.Duplicates, prev.Duplicates)
		assert.GreaterOrEqual(t, cur.Failed, prev.Failed)
	}
}

func TestSyncTasks_CountsOutcomes(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := setup(t, domain.SyncConfig{Delay: 25 * time.Second, Concurrent: true})
		f.wiki.AddFile("File:B.png", []byte("b"))
		f.wiki.AddFile("File:D1.png", []byte("d"))
		f.wiki.AddFile("File:D2.png", []byte("d"))
		f.serve(map[string][]byte{
			"http://cdn.local/a.png": []byte("a"),
			"http://cdn.local/b.png": []byte("b"),
			"http://cdn.local/d.png": []byte("d"),
		})

		tasks := []domain.AssetTask{
			{URL: "http://cdn.local/a.png", CanonicalName: "A.png", AliasNames: []string{"Alias.png"}},
			{URL: "http://cdn.local/b.png", CanonicalName: "B.png"},
			{URL: "http://cdn.local/c.png", CanonicalName: "C.png"},
			{URL: "http://cdn.local/d.png", CanonicalName: "D.png"},
		}

		start := time.Now()
		report, err := f.driver.SyncTasks(t.Context(), "batch", tasks)
		require.NoError(t, err)

		assert.Equal(t, domain.Progress{
			Label:      "batch",
			Stage:      domain.StageCompleted,
			Downloaded: 3,
			Processed:  4,
			Uploaded:   1,
			Duplicates: 1,
			Failed:     2,
			Total:      4,
		}, report.Progress)
		assert.Equal(t, "run-1", report.RunID)
		assert.Equal(t, []string{"A.png", "B.png"}, report.Produced)
		require.Len(t, report.Failures, 2)
		assert.Equal(t, "C.png", report.Failures[0].CanonicalName)
		assert.Equal(t, domain.ErrAssetNotFound.Error(), report.Failures[0].Reason)
		assert.Equal(t, domain.ReasonAmbiguousDuplicates, report.Failures[1].Reason)

		assert.Equal(t, 50*time.Second, time.Since(start), "one politeness delay per produced file")
		assert.Equal(t, "#REDIRECT [[File:A.png]]", f.wiki.Pages["File:Alias.png"])

		outcomes := make([]string, len(f.entries))
		for i, e := range f.entries {
			outcomes[i] = e.Outcome
		}
		assert.Equal(t, []string{"uploaded", "already-correct", "failed", "failed"}, outcomes)
		assert.Equal(t, tasks[0].Fingerprint(), f.entries[0].Fingerprint)

		require.NotEmpty(t, f.events)
		assertMonotonic(t, f.events)
		assert.Equal(t, domain.StageDownloaded, f.events[0].Stage)
		assert.Equal(t, domain.StageCompleted, f.events[len(f.events)-1].Stage)
	})
}

func TestSyncTasks_BatchFailureFallsBackToSequential(t *testing.T) {
	f := setup(t, domain.SyncConfig{Concurrent: true}, driver.WithSleeper(noSleep))
	f.fetcher.EXPECT().FetchBatch(gomock.Any(), gomock.Any()).Return(nil, domain.ErrBatchFetchFailed)
	gomock.InOrder(
		f.fetcher.EXPECT().Fetch(gomock.Any(), "http://cdn.local/1.png").Return(ok("http://cdn.local/1.png", []byte("1")), nil),
		f.fetcher.EXPECT().Fetch(gomock.Any(), "http://cdn.local/2.png").Return(ok("http://cdn.local/2.png", []byte("2")), nil),
	)

	report, err := f.driver.SyncTasks(t.Context(), "fallback", []domain.AssetTask{
		{URL: "http://cdn.local/1.png", CanonicalName: "One.png"},
		{URL: "http://cdn.local/2.png", CanonicalName: "Two.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Progress.Uploaded)
	assert.Equal(t, []string{"One.png", "Two.png"}, report.Produced)
}

func TestSyncTasks_SequentialWhenNotConcurrent(t *testing.T) {
	f := setup(t, domain.SyncConfig{Concurrent: false}, driver.WithSleeper(noSleep))
	f.fetcher.EXPECT().Fetch(gomock.Any(), "http://cdn.local/1.png").Return(ok("http://cdn.local/1.png", []byte("1")), nil)
	f.fetcher.EXPECT().Fetch(gomock.Any(), "http://cdn.local/2.png").Return(missing("http://cdn.local/2.png"), nil)

	report, err := f.driver.SyncTasks(t.Context(), "seq", []domain.AssetTask{
		{URL: "http://cdn.local/1.png", CanonicalName: "One.png"},
		{URL: "http://cdn.local/2.png", CanonicalName: "Two.png"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Progress.Downloaded)
	assert.Equal(t, 1, report.Progress.Failed)
}

func TestSyncPage(t *testing.T) {
	f := setup(t, domain.SyncConfig{Concurrent: true}, driver.WithSleeper(noSleep))
	f.wiki.Pages["Sword (Fire)"] = "{{Weapon|id=1040000000|weapon=Sabre}}"
	url := "http://prd-game-a-granbluefantasy.akamaized.net/assets_en/img/sp/assets/weapon/b/1040000000.png"
	f.serve(map[string][]byte{url: []byte("sword")})

	report, err := f.driver.SyncPage(t.Context(), "Sword (Fire)")
	require.NoError(t, err)

	assert.Equal(t, 15, report.Progress.Total)
	assert.Equal(t, 1, report.Progress.Uploaded)
	assert.Equal(t, 14, report.Progress.Failed)
	assert.Equal(t, []string{"Weapon b 1040000000.png"}, report.Produced)

	assert.Equal(t, "[[Category:Weapon Images]][[Category:Full Weapon Images]]", f.wiki.Pages["File:Weapon b 1040000000.png"])
	assert.Equal(t, "#REDIRECT [[File:Weapon b 1040000000.png]]", f.wiki.Pages["File:Sword (Fire).png"])
	assert.Equal(t, "#REDIRECT [[File:Weapon b 1040000000.png]]", f.wiki.Pages["File:Sword (Fire) A.png"])

	assert.Equal(t, domain.StageParsing, f.events[0].Stage)
	assert.Equal(t, domain.StageDeriving, f.events[1].Stage)
	assertMonotonic(t, f.events)
}

func TestSyncPage_Errors(t *testing.T) {
	f := setup(t, domain.SyncConfig{}, driver.WithSleeper(noSleep))
	f.wiki.Pages["Notes"] = "just prose"

	_, err := f.driver.SyncPage(t.Context(), "Missing")
	require.ErrorContains(t, err, domain.ErrNoTemplates.Error())

	_, err = f.driver.SyncPage(t.Context(), "Notes")
	require.ErrorContains(t, err, domain.ErrNoTemplates.Error())

	_, err = f.driver.SyncPageAs(t.Context(), "Notes", assets.Kind("gacha"))
	require.ErrorContains(t, err, domain.ErrUnknownObjectType.Error())
}

func TestSyncStatusIcons_UsesFallback(t *testing.T) {
	f := setup(t, domain.SyncConfig{Concurrent: true}, driver.WithSleeper(noSleep))
	tasks, err := assets.NewDeriver("").StatusIconTasks("1438#", 1)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.NotNil(t, tasks[1].Fallback)

	f.serve(map[string][]byte{
		tasks[0].URL:          []byte("base"),
		tasks[1].Fallback.URL: []byte("first"),
	})

	report, err := f.driver.SyncStatusIcons(t.Context(), "1438#", 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"Status 1438.png", "Status 14381.png"}, report.Produced)
	assert.Zero(t, report.Progress.Failed)
	require.Len(t, f.wiki.Uploads, 2)
	assert.Equal(t, assets.StatusIconDescription, f.wiki.Uploads[1].Description)
}

func TestSyncStatusIcons_InvalidIdentifier(t *testing.T) {
	f := setup(t, domain.SyncConfig{})

	_, err := f.driver.SyncStatusIcons(t.Context(), "bad id!", 0)
	require.ErrorContains(t, err, domain.ErrInvalidIdentifier.Error())
}

func TestSyncItem_CountsEveryDecision(t *testing.T) {
	f := setup(t, domain.SyncConfig{Concurrent: true}, driver.WithSleeper(noSleep))
	tasks, err := assets.NewDeriver("").SingleItemTasks("article", "1", "Gold Brick")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	// Square art is missing; the icon uploads but its alias redirect fails.
	f.serve(map[string][]byte{tasks[1].URL: []byte("icon")})
	f.wiki.Err = func(op, title string) error {
		if op == "PageSave" && title == "File:Gold Brick icon.jpg" {
			return domain.ErrWikiAPI
		}
		return nil
	}

	report, err := f.driver.SyncItem(t.Context(), "article", "1", "Gold Brick")
	require.NoError(t, err)

	p := report.Progress
	assert.Equal(t, "item 1", report.Label)
	assert.Equal(t, 2, p.Processed)
	assert.Equal(t, p.Uploaded+p.Duplicates+p.Failed, p.Processed)
	assert.Equal(t, 1, p.Uploaded)
	assert.Equal(t, 1, p.Failed)
	assert.Len(t, report.Failures, 2)
	assert.Equal(t, []string{"Item article m 1.jpg"}, report.Produced)
}

func TestSyncItem_InvalidType(t *testing.T) {
	f := setup(t, domain.SyncConfig{})

	_, err := f.driver.SyncItem(t.Context(), "gacha", "1", "Box")
	require.ErrorContains(t, err, domain.ErrUnknownObjectType.Error())
}

func TestSyncCategory_ResumesAndContinuesPastFailures(t *testing.T) {
	f := setup(t, domain.SyncConfig{Concurrent: true}, driver.WithSleeper(noSleep))
	f.wiki.Categories["Weapons"] = []string{"First", "Second", "Third"}
	f.wiki.Pages["First"] = "prose"
	f.wiki.Pages["Second"] = "prose"
	f.wiki.Pages["Third"] = "{{Weapon|id=1040000000|weapon=Sabre}}"
	f.serve(nil)

	report, err := f.driver.SyncCategory(t.Context(), "Weapons", "Second")
	require.NoError(t, err)

	assert.Equal(t, "Category:Weapons", report.Label)
	assert.Equal(t, 15, report.Progress.Total)
	assert.Equal(t, 15, report.Progress.Failed)

	var pages []string
	for _, failure := range report.Failures {
		if failure.URL == "" {
			pages = append(pages, failure.CanonicalName)
		}
	}
	assert.Equal(t, []string{"Second"}, pages)
}

func TestSyncTasks_CancelledDuringDelay(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := setup(t, domain.SyncConfig{Delay: time.Minute})
		f.serve(map[string][]byte{"http://cdn.local/1.png": []byte("1")})

		ctx, cancel := context.WithTimeout(t.Context(), 10*time.Second)
		defer cancel()

		report, err := f.driver.SyncTasks(ctx, "cancel", []domain.AssetTask{
			{URL: "http://cdn.local/1.png", CanonicalName: "One.png"},
			{URL: "http://cdn.local/2.png", CanonicalName: "Two.png"},
		})
		require.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Equal(t, 1, report.Progress.Processed)
		assert.Equal(t, []string{"One.png"}, report.Produced)
	})
}

func TestSyncTasks_RunsWithoutLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	wiki := wikitest.New()
	fetcher := mocks.NewMockFetcher(ctrl)
	ledger := mocks.NewMockLedger(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).Times(1)

	ledger.EXPECT().BeginRun(gomock.Any(), "solo").Return("", domain.ErrLedgerOpenFailed)
	fetcher.EXPECT().Fetch(gomock.Any(), "http://cdn.local/1.png").Return(ok("http://cdn.local/1.png", []byte("1")), nil)

	redirects := redirect.New(wiki, log)
	d := driver.New(
		wiki, fetcher,
		resolver.New(wiki, fetcher, redirects, log, ""),
		redirects,
		assets.NewDeriver(""),
		ledger,
		telemetry.NewNoOpTracer(),
		log,
		domain.SyncConfig{},
		driver.WithSleeper(noSleep),
	)

	report, err := d.SyncTasks(t.Context(), "solo", []domain.AssetTask{{URL: "http://cdn.local/1.png", CanonicalName: "One.png"}})
	require.NoError(t, err)
	assert.Empty(t, report.RunID)
	assert.Equal(t, 1, report.Progress.Uploaded)
}

func TestSleep(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		start := time.Now()
		require.NoError(t, driver.Sleep(t.Context(), 25*time.Second))
		assert.Equal(t, 25*time.Second, time.Since(start))

		ctx, cancel := context.WithCancel(t.Context())
		cancel()
		require.ErrorIs(t, driver.Sleep(ctx, time.Hour), context.Canceled)
		require.NoError(t, driver.Sleep(t.Context(), 0))
	})
}
