package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/adshield/internal/logging"
)

func testCtx() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sqlite.NewConnection(testCtx(), filepath.Join(t.TempDir(), "adshield.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return db
}

func TestNewConnection_RejectsEmptyPath(t *testing.T) {
	_, err := sqlite.NewConnection(testCtx(), "")
	assert.Error(t, err)
}

func TestBlockEventRepository_RecordAndStats(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewBlockEventRepository(openDB(t))
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	events := []*entity.BlockEvent{
		{URL: "https://www.google-analytics.com/collect", Verdict: entity.VerdictBlockedTracker, Source: entity.SourceNetworkHook, CreatedAt: base},
		{URL: "https://doubleclick.net/ad.js", Verdict: entity.VerdictBlockedTracker, Source: entity.SourceProxy, CreatedAt: base.Add(time.Minute)},
		{URL: "https://doubleclick.net/pixel", Verdict: entity.VerdictBlockedTracker, Source: entity.SourceProxy, CreatedAt: base.Add(2 * time.Minute)},
		{URL: "https://cdn.example/728x90.png", Verdict: entity.VerdictBlockedBanner, Source: entity.SourcePage, PageHost: "news.example", ResourceType: entity.ResourceImage, CreatedAt: base.Add(3 * time.Minute)},
		{URL: "https://old.test/x", Verdict: entity.VerdictBlockedTracker, Source: entity.SourceProxy, CreatedAt: base.Add(-24 * time.Hour)},
	}
	for _, e := range events {
		require.NoError(t, repo.Record(ctx, e))
		assert.NotZero(t, e.ID)
	}
	assert.Equal(t, "doubleclick.net", events[1].Host)
	assert.Equal(t, entity.ResourceOther, events[0].ResourceType)

	stats, err := repo.Stats(ctx, base, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Total)
	assert.Equal(t, int64(3), stats.Trackers)
	assert.Equal(t, int64(1), stats.Banners)
	require.Len(t, stats.TopHosts, 2)
	assert.Equal(t, entity.HostCount{Host: "doubleclick.net", Count: 2}, stats.TopHosts[0])

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "https://cdn.example/728x90.png", recent[0].URL)
	assert.Equal(t, entity.VerdictBlockedBanner, recent[0].Verdict)
	assert.Equal(t, entity.ResourceImage, recent[0].ResourceType)
	assert.Equal(t, "news.example", recent[0].PageHost)
	assert.True(t, recent[0].CreatedAt.Equal(base.Add(3*time.Minute)))

	pruned, err := repo.Prune(ctx, base)
	require.NoError(t, err)
	assert.Equal(t, int64(1), pruned)
}

func TestBlockEventRepository_RejectsInvalid(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewBlockEventRepository(openDB(t))

	assert.Error(t, repo.Record(ctx, nil))
	assert.Error(t, repo.Record(ctx, &entity.BlockEvent{URL: "https://a.test", Verdict: entity.VerdictAllowed}))
	assert.Error(t, repo.Record(ctx, &entity.BlockEvent{Verdict: entity.VerdictBlockedTracker}))
}

func TestSiteBypassRepository(t *testing.T) {
	ctx := testCtx()
	repo := sqlite.NewSiteBypassRepository(openDB(t))

	require.NoError(t, repo.Add(ctx, &entity.SiteBypass{Host: "WWW.Example.com", Reason: "broken checkout", CreatedAt: time.UnixMilli(1000)}))
	require.NoError(t, repo.Add(ctx, &entity.SiteBypass{Host: "bank.test", CreatedAt: time.UnixMilli(2000)}))
	require.NoError(t, repo.Add(ctx, &entity.SiteBypass{Host: "example.com", Reason: "updated", CreatedAt: time.UnixMilli(3000)}))
	assert.Error(t, repo.Add(ctx, &entity.SiteBypass{Host: "  "}))

	for host, want := range map[string]bool{
		"example.com":          true,
		"shop.example.com":     true,
		"www.bank.test":        true,
		"notexample.com":       false,
		"example.com.evil.net": false,
	} {
		got, err := repo.Contains(ctx, host)
		require.NoError(t, err)
		assert.Equal(t, want, got, host)
	}

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "bank.test", all[0].Host)
	assert.Equal(t, "example.com", all[1].Host)
	assert.Equal(t, "updated", all[1].Reason)

	require.NoError(t, repo.Remove(ctx, "www.example.com"))
	ok, err := repo.Contains(ctx, "example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}
