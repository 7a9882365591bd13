package jsrealm_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/countermeasure"
	"github.com/bnema/adshield/internal/filtering/payload"
	"github.com/bnema/adshield/internal/filtering/rules"
	"github.com/bnema/adshield/internal/infrastructure/jsrealm"
)

func newRealm(t *testing.T) *jsrealm.Realm {
	t.Helper()
	r, err := jsrealm.New(zerolog.Nop())
	require.NoError(t, err)
	return r
}

func eval(t *testing.T, r *jsrealm.Realm, src string) any {
	t.Helper()
	v, err := r.Eval(src)
	require.NoError(t, err, src)
	return v
}

func TestRealm_HasWalksPaths(t *testing.T) {
	r := newRealm(t)
	eval(t, r, `var google = { ima: { VERSION: "1" } }; var empty = null;`)

	assert.True(t, r.Has("google.ima.VERSION"))
	assert.True(t, r.Has("window"))
	assert.False(t, r.Has("google.maps"))
	assert.False(t, r.Has("empty"))
	assert.False(t, r.Has("googletag.cmd"))
}

func TestRealm_BasicKinds(t *testing.T) {
	r := newRealm(t)
	for _, s := range []entity.Stub{
		{Name: "ga", Kind: entity.StubNoop},
		{Name: "canRunAds", Kind: entity.StubValue, Value: true},
		{Name: "tracker", Kind: entity.StubReturns, Value: "ok"},
		{Name: "chain", Kind: entity.StubObject, Members: []entity.Stub{{Name: "next", Kind: entity.StubSelf}}},
		{Name: "Widget", Kind: entity.StubFactory, Members: []entity.Stub{{Name: "id", Kind: entity.StubValue, Value: 7}}},
		{Name: "FS", Kind: entity.StubFunctionObject, Members: []entity.Stub{{Name: "event", Kind: entity.StubNoop}}},
		{Name: "_taboola", Kind: entity.StubSinkArray},
	} {
		require.NoError(t, r.Define(s), s.Name)
	}

	assert.Equal(t, true, eval(t, r, `typeof ga("send", "pageview") === "undefined"`))
	assert.Equal(t, true, eval(t, r, `window.canRunAds`))
	assert.Equal(t, "ok", eval(t, r, `tracker()`))
	assert.Equal(t, true, eval(t, r, `chain.next().next() === chain`))
	assert.Equal(t, true, eval(t, r, `var a = new Widget(), b = Widget(); a.id === 7 && b.id === 7 && a !== b`))
	assert.Equal(t, true, eval(t, r, `FS("x"); typeof FS.event === "function"`))
	assert.Equal(t, int64(0), eval(t, r, `_taboola.push({mode: "x"}); _taboola.length`))
}

func TestRealm_ModeKeepAndMerge(t *testing.T) {
	r := newRealm(t)
	eval(t, r, `var dataLayer = [1, 2]; var googletag = { custom: 1, cmd: [function () { window.replayed = true; }] };`)

	require.NoError(t, r.Define(entity.Stub{Name: "dataLayer", Kind: entity.StubSinkArray, Mode: entity.ModeKeep}))
	assert.Equal(t, int64(2), eval(t, r, `dataLayer.length`))

	require.NoError(t, r.Define(entity.Stub{Name: "googletag", Kind: entity.StubObject, Mode: entity.ModeMerge, Members: []entity.Stub{
		{Name: "cmd", Kind: entity.StubCommandQueue},
		{Name: "apiReady", Kind: entity.StubValue, Value: true},
	}}))
	assert.Equal(t, int64(1), eval(t, r, `googletag.custom`))
	assert.Equal(t, true, eval(t, r, `window.replayed === true && googletag.apiReady`))
	assert.Equal(t, "ran", eval(t, r, `var out; googletag.cmd.push(function () { out = "ran"; }); out`))
}

func TestRealm_CallbacksAndAliases(t *testing.T) {
	r := newRealm(t)
	require.NoError(t, r.Define(entity.Stub{Name: "fuckAdBlock", Kind: entity.StubObject, Members: []entity.Stub{
		{Name: "on", Kind: entity.StubInvokeOnEvent, Value: []string{"notDetected"}},
		{Name: "onNotDetected", Kind: entity.StubInvokeArg},
	}}))
	require.NoError(t, r.Define(entity.Stub{Name: "FuckAdBlock", Kind: entity.StubReturnsGlobal, Value: "fuckAdBlock"}))
	require.NoError(t, r.Define(entity.Stub{Name: "fab", Kind: entity.StubAlias, Value: "fuckAdBlock"}))
	require.NoError(t, r.Define(entity.Stub{Name: "__uspapi", Kind: entity.StubPromise, Value: "granted"}))

	got := eval(t, r, `
		var calls = [];
		fuckAdBlock.on("detected", function () { calls.push("detected"); })
			.on("notDetected", function () { calls.push("clean"); })
			.onNotDetected(function () { calls.push("cb"); });
		calls.join(",")`)
	assert.Equal(t, "clean,cb", got)
	assert.Equal(t, true, eval(t, r, `new FuckAdBlock() === fuckAdBlock && fab === fuckAdBlock`))
	assert.Equal(t, true, eval(t, r, `__uspapi() instanceof Promise`))

	err := r.Define(entity.Stub{Name: "ghost", Kind: entity.StubAlias, Value: "nothing.here"})
	assert.ErrorIs(t, err, jsrealm.ErrUndefinedGlobal)
}

func TestRealm_DottedPathCreatesParents(t *testing.T) {
	r := newRealm(t)
	eval(t, r, `var google = { maps: 1 }; var flat = 3;`)

	require.NoError(t, r.Define(entity.Stub{Name: "google.ima", Kind: entity.StubObject}))
	assert.Equal(t, true, eval(t, r, `google.maps === 1 && typeof google.ima === "object"`))

	require.NoError(t, r.Define(entity.Stub{Name: "a.b.c", Kind: entity.StubValue, Value: "deep"}))
	assert.Equal(t, "deep", eval(t, r, `a.b.c`))

	err := r.Define(entity.Stub{Name: "flat.x", Kind: entity.StubNoop})
	assert.ErrorIs(t, err, jsrealm.ErrNotObject)
}

func TestRealm_DefaultCatalogOnGenericSite(t *testing.T) {
	r := newRealm(t)
	eval(t, r, `var googletag = { cmd: [] }; googletag.cmd.push(function () { window.early = true; });`)

	site := entity.NewSiteContext("news.example", entity.ReadyStateLoading, rules.DefaultSpecialHosts)
	in := countermeasure.NewInstaller(countermeasure.DefaultRegistry(), zerolog.Nop())
	require.NoError(t, in.Install(r, nil, site))

	assert.Equal(t, true, eval(t, r, `window.early === true`))
	assert.Equal(t, true, eval(t, r, `googletag.defineSlot("/1/x", [300, 250], "d").addService(googletag.pubads()).setTargeting("a", "b") === googletag.defineSlot()`))
	assert.Equal(t, true, eval(t, r, `adsbygoogle.loaded && canRunAds && !adBlockDetected`))
	assert.Equal(t, true, eval(t, r, `var l = new google.ima.AdsLoader(); typeof l.requestAds === "function"`))
	assert.Equal(t, true, eval(t, r, `var hit = false; pbjs.que.push(function () { hit = true; }); hit`))
	assert.Equal(t, true, eval(t, r, `_fbq === fbq`))
}

func TestRealm_TrapPayload(t *testing.T) {
	r := newRealm(t)
	eval(t, r, `window.ytInitialData = { contents: 1, adSlots: [1] };`)

	s := payload.New(zerolog.Nop())
	require.NoError(t, s.TrapGlobals(r))

	assert.Equal(t, true, eval(t, r, `ytInitialData.contents === 1 && Array.isArray(ytInitialData.adSlots) && ytInitialData.adSlots.length === 0`))

	eval(t, r, `ytInitialPlayerResponse = { videoDetails: { id: "x" }, adPlacements: [{}], playerAds: [], adBreakHeartbeatParams: "h" };`)
	assert.Equal(t, true, eval(t, r, `ytInitialPlayerResponse.videoDetails.id === "x" && ytInitialPlayerResponse.adPlacements.length === 0`))
	assert.Equal(t, true, eval(t, r, `!("adBreakHeartbeatParams" in ytInitialPlayerResponse)`))

	eval(t, r, `ytInitialPlayerResponse = 5;`)
	assert.Equal(t, int64(5), eval(t, r, `ytInitialPlayerResponse`))
}

func TestRealm_TrapPayload_KeepsIdentityAndMembers(t *testing.T) {
	r := newRealm(t)
	require.NoError(t, payload.New(zerolog.Nop()).TrapGlobals(r))

	eval(t, r, `var pr = {
		videoDetails: { id: "x" },
		cb: function () { return 42; },
		playerAds: [1, 2],
		adBreakParams: "p",
		playerResponse: { adSlots: [1], streamingData: {} },
		onResponseReceivedActions: [{ adPlacements: [{}] }, 7],
		playbackTracking: { ptrackingUrl: "u", videostatsPlaybackUrl: "keep" }
	};
	ytInitialPlayerResponse = pr;`)

	assert.Equal(t, true, eval(t, r, `ytInitialPlayerResponse === pr`))
	assert.Equal(t, int64(42), eval(t, r, `ytInitialPlayerResponse.cb()`))
	assert.Equal(t, true, eval(t, r, `pr.playerAds.length === 0 && !("adBreakParams" in pr)`))
	assert.Equal(t, true, eval(t, r, `pr.playerResponse.adSlots.length === 0 && typeof pr.playerResponse.streamingData === "object"`))
	assert.Equal(t, true, eval(t, r, `pr.onResponseReceivedActions[0].adPlacements.length === 0 && pr.onResponseReceivedActions[1] === 7`))
	assert.Equal(t, true, eval(t, r, `!("ptrackingUrl" in pr.playbackTracking) && pr.playbackTracking.videostatsPlaybackUrl === "keep"`))

	eval(t, r, `ytInitialData = '{"adSlots":[1],"contents":{}}';`)
	assert.Equal(t, true, eval(t, r, `JSON.parse(ytInitialData).adSlots.length === 0`))
}

func TestRealm_EvalErrors(t *testing.T) {
	r, err := jsrealm.New(zerolog.Nop(), jsrealm.WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = r.Eval(`throw new Error("boom")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")

	_, err = r.Eval(`for (;;) {}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interrupted")

	assert.Equal(t, int64(2), eval(t, r, `1 + 1`), "runtime recovers after an interrupt")
}
