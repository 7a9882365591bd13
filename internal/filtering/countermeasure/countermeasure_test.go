package countermeasure_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/application/port/mocks"
	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/countermeasure"
	"github.com/bnema/adshield/internal/filtering/rules"
	"github.com/bnema/adshield/internal/infrastructure/htmldom"
	"github.com/bnema/adshield/internal/infrastructure/loop"
)

var (
	generic = entity.NewSiteContext("news.example", entity.ReadyStateLoading, rules.DefaultSpecialHosts)
	special = entity.NewSiteContext("www.youtube.com", entity.ReadyStateLoading, rules.DefaultSpecialHosts)
)

func names(stubs []entity.Stub) []string {
	out := make([]string, len(stubs))
	for i, s := range stubs {
		out[i] = s.Name
	}
	return out
}

func TestDefaultCatalog_Valid(t *testing.T) {
	seen := map[string]bool{}
	for _, s := range countermeasure.DefaultCatalog() {
		require.NoError(t, s.Validate(), s.Name)
		assert.False(t, seen[s.Name], "duplicate stub %s", s.Name)
		seen[s.Name] = true
	}
	for _, want := range []string{"ga", "fbq", "Sentry", "googletag", "adsbygoogle", "google.ima", "pbjs", "fuckAdBlock", "canRunAds"} {
		assert.True(t, seen[want], want)
	}
}

func TestRegistry_ScopesAdStubsToGenericSites(t *testing.T) {
	r := countermeasure.DefaultRegistry()

	onSpecial := names(r.Stubs(special))
	assert.Contains(t, onSpecial, "ga")
	assert.Contains(t, onSpecial, "Sentry")
	assert.NotContains(t, onSpecial, "googletag")
	assert.NotContains(t, onSpecial, "fuckAdBlock")

	onGeneric := names(r.Stubs(generic))
	assert.Contains(t, onGeneric, "googletag")
	assert.Contains(t, onGeneric, "adBlockDetected")
	assert.Equal(t, r.Len(), len(onGeneric))
}

func TestRegistry_RegisterReplacesInPlace(t *testing.T) {
	r, err := countermeasure.NewRegistry(
		entity.Stub{Name: "a", Kind: entity.StubNoop},
		entity.Stub{Name: "b", Kind: entity.StubNoop},
	)
	require.NoError(t, err)

	require.NoError(t, r.Register(entity.Stub{Name: "a", Kind: entity.StubValue, Value: 1}))
	assert.Equal(t, []string{"a", "b"}, r.Names())
	s, ok := r.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, entity.StubValue, s.Kind)

	assert.Error(t, r.Register(entity.Stub{Name: "c", Kind: "bogus"}))
	assert.Error(t, r.Register(entity.Stub{Name: "d", Kind: entity.StubAlias}))

	assert.True(t, r.Remove("a"))
	assert.False(t, r.Remove("a"))
	assert.Equal(t, []string{"b"}, r.Names())
}

func TestInstaller_DefinesStubsAndContinuesOnFailure(t *testing.T) {
	r, err := countermeasure.NewRegistry(
		entity.Stub{Name: "ga", Kind: entity.StubNoop},
		entity.Stub{Name: "broken", Kind: entity.StubNoop},
		entity.Stub{Name: "canRunAds", Kind: entity.StubValue, Value: true, Scope: entity.ScopeGeneric},
	)
	require.NoError(t, err)

	realm := mocks.NewMockRealm(t)
	realm.EXPECT().Define(mock.MatchedBy(func(s entity.Stub) bool { return s.Name == "ga" })).Return(nil).Once()
	realm.EXPECT().Define(mock.MatchedBy(func(s entity.Stub) bool { return s.Name == "broken" })).Return(errors.New("frozen")).Once()

	in := countermeasure.NewInstaller(r, zerolog.Nop())
	err = in.Install(realm, nil, special)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestInstaller_PlantsBaitOnceReady(t *testing.T) {
	sched := loop.NewVirtual(time.Unix(0, 0))
	env, err := htmldom.ParseString(`<html><head></head><body><p>x</p></body></html>`, sched,
		htmldom.WithReadyState(entity.ReadyStateLoading))
	require.NoError(t, err)
	doc := env.Document()

	r, err := countermeasure.NewRegistry()
	require.NoError(t, err)
	in := countermeasure.NewInstaller(r, zerolog.Nop(), countermeasure.WithBaitClasses([]string{"adsbox", "ad-banner"}))

	require.NoError(t, in.Install(nil, doc, generic))
	assert.Zero(t, in.Baits(), "bait waits for the document")

	env.SetReadyState(entity.ReadyStateInteractive)
	require.Equal(t, 2, in.Baits())

	bait, err := doc.QuerySelector("body > div#adsbox.adsbox")
	require.NoError(t, err)
	require.NotNil(t, bait)
	assert.True(t, in.IsBait(bait))
	_, marked := bait.Attr(rules.BaitAttribute)
	assert.True(t, marked)
	assert.Equal(t, "-9999px", bait.Style().Property("left"))
	assert.Equal(t, "important", bait.Style().Priority("opacity"))
	assert.Equal(t, " ", bait.TextContent())

	p, err := doc.QuerySelector("p")
	require.NoError(t, err)
	assert.False(t, in.IsBait(p))
	assert.False(t, in.IsBait(nil))

	require.NoError(t, in.Install(nil, doc, generic))
	assert.Equal(t, 2, in.Baits(), "bait is planted once per document")
}

func TestInstaller_NoBaitOnSpecialSite(t *testing.T) {
	env, err := htmldom.ParseString(`<html><body></body></html>`, loop.NewVirtual(time.Unix(0, 0)))
	require.NoError(t, err)

	in := countermeasure.NewInstaller(countermeasure.DefaultRegistry(), zerolog.Nop())
	require.NoError(t, in.Install(nil, env.Document(), special))
	assert.Zero(t, in.Baits())
}
