package entity_test

import (
	"testing"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuleSet_Normalizes(t *testing.T) {
	rs := entity.NewRuleSet(entity.RuleTables{
		Domains: []string{" DoubleClick.NET ", "doubleclick.net", "", "adnxs.com"},
		Allow:   []string{"Fonts.GoogleApis.com"},
	})

	assert.Equal(t, []string{"doubleclick.net", "adnxs.com"}, rs.Domains())
	assert.Equal(t, []string{"fonts.googleapis.com"}, rs.Allow())
	assert.Empty(t, rs.Paths())
	assert.Equal(t, 3, rs.Len())
}

func TestRuleSet_AccessorsReturnCopies(t *testing.T) {
	rs := entity.NewRuleSet(entity.RuleTables{Domains: []string{"adnxs.com"}})

	domains := rs.Domains()
	domains[0] = "mutated"

	assert.Equal(t, []string{"adnxs.com"}, rs.Domains())
}

func TestRuleSet_MergeLeavesOriginal(t *testing.T) {
	base := entity.NewRuleSet(entity.RuleTables{Paths: []string{"/ads/"}})
	merged := base.Merge(entity.RuleTables{Paths: []string{"/ADS/", "/pixel."}})

	assert.Equal(t, []string{"/ads/"}, base.Paths())
	assert.Equal(t, []string{"/ads/", "/pixel."}, merged.Paths())
}

func TestVerdict_TextRoundTrip(t *testing.T) {
	for _, v := range []entity.Verdict{entity.VerdictAllowed, entity.VerdictBlockedTracker, entity.VerdictBlockedBanner} {
		text, err := v.MarshalText()
		require.NoError(t, err)

		var got entity.Verdict
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, v, got)
	}

	_, err := entity.ParseVerdict("MAYBE")
	assert.Error(t, err)
	assert.False(t, entity.VerdictAllowed.Blocked())
	assert.True(t, entity.VerdictBlockedBanner.Blocked())
}

func TestBannerSize_Matches(t *testing.T) {
	s := entity.BannerSize{Width: 300, Height: 250}

	assert.True(t, s.Matches(300, 250, 5))
	assert.True(t, s.Matches(304, 246, 5))
	assert.False(t, s.Matches(305, 250, 5))

	got, ok := entity.MatchBannerSize(entity.DefaultBannerSizes(), 727, 91, 5)
	require.True(t, ok)
	assert.Equal(t, entity.BannerSize{Width: 728, Height: 90}, got)

	_, ok = entity.MatchBannerSize(entity.DefaultBannerSizes(), 1024, 768, 5)
	assert.False(t, ok)
}
