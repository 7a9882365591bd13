package usecase_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/application/port"
	"github.com/bnema/adshield/internal/application/usecase"
	"github.com/bnema/adshield/internal/domain/entity"
	repomocks "github.com/bnema/adshield/internal/domain/repository/mocks"
	"github.com/bnema/adshield/internal/filtering"
	"github.com/bnema/adshield/internal/filtering/countermeasure"
	"github.com/bnema/adshield/internal/filtering/domguard"
	"github.com/bnema/adshield/internal/filtering/payload"
	"github.com/bnema/adshield/internal/filtering/rules"
	"github.com/bnema/adshield/internal/infrastructure/htmldom"
	"github.com/bnema/adshield/internal/infrastructure/jsrealm"
	"github.com/bnema/adshield/internal/infrastructure/loop"
)

type fakeNetwork struct {
	fetcher port.Fetcher
	xhr     port.XHRFactory
	beacon  port.Beacon
	opener  port.Opener
}

func (n *fakeNetwork) Fetcher() port.Fetcher           { return n.fetcher }
func (n *fakeNetwork) SetFetcher(f port.Fetcher)       { n.fetcher = f }
func (n *fakeNetwork) XHRFactory() port.XHRFactory     { return n.xhr }
func (n *fakeNetwork) SetXHRFactory(f port.XHRFactory) { n.xhr = f }
func (n *fakeNetwork) Beacon() port.Beacon             { return n.beacon }
func (n *fakeNetwork) SetBeacon(b port.Beacon)         { n.beacon = b }
func (n *fakeNetwork) Opener() port.Opener             { return n.opener }
func (n *fakeNetwork) SetOpener(o port.Opener)         { n.opener = o }

// serverFetcher answers every request with body on a later task.
type serverFetcher struct {
	sched *loop.Virtual
	body  string
	calls int
}

func (f *serverFetcher) Fetch(req *port.Request, done port.FetchCallback) error {
	f.calls++
	f.sched.SetTimeout(func() {
		done(&port.Response{
			URL:    req.URL,
			Status: http.StatusOK,
			Header: http.Header{"Content-Type": {"application/json"}},
			Body:   []byte(f.body),
		}, nil)
	}, 0)
	return nil
}

type page struct {
	sched   *loop.Virtual
	dom     *htmldom.Env
	network *fakeNetwork
	server  *serverFetcher
	realm   *jsrealm.Realm
}

func newPage(t *testing.T, body string) *page {
	t.Helper()
	sched := loop.NewVirtual(time.Unix(0, 0))
	dom, err := htmldom.ParseString("<html><head></head><body>"+body+"</body></html>", sched,
		htmldom.WithReadyState(entity.ReadyStateComplete))
	require.NoError(t, err)
	realm, err := jsrealm.New(zerolog.Nop())
	require.NoError(t, err)

	server := &serverFetcher{sched: sched, body: `{"adPlacements":[{}],"playerAds":[1],"videoDetails":{"videoId":"x"}}`}
	return &page{
		sched:   sched,
		dom:     dom,
		network: &fakeNetwork{fetcher: server, xhr: htmldom.NewXHRFactory(server)},
		server:  server,
		realm:   realm,
	}
}

// primitivesRestored reports whether the page fetch and XHR primitives are
// the unwrapped originals again.
func (p *page) primitivesRestored() bool {
	f, ok := p.network.fetcher.(*serverFetcher)
	if !ok || f != p.server {
		return false
	}
	_, raw := p.network.xhr().(*htmldom.XHR)
	return raw
}

func (p *page) input(rawURL string) usecase.InjectInput {
	return usecase.InjectInput{
		URL:        rawURL,
		ReadyState: entity.ReadyStateComplete,
		DOM:        p.dom,
		Network:    p.network,
		Realm:      p.realm,
		Scheduler:  p.sched,
	}
}

func defaultSettings() usecase.ShieldSettings {
	return usecase.ShieldSettings{
		Enabled:         true,
		SpecialHosts:    rules.DefaultSpecialHosts,
		BypassHosts:     rules.DefaultBypassHosts,
		Guard:           domguard.DefaultConfig(),
		VideoAd:         true,
		Countermeasures: true,
		BaitClasses:     rules.BaitClasses,
	}
}

func newInjector(settings usecase.ShieldSettings, opts ...usecase.InjectOption) *usecase.InjectShieldUseCase {
	return usecase.NewInjectShieldUseCase(
		newClassifier(),
		newStylesheet(),
		countermeasure.DefaultRegistry(),
		payload.New(zerolog.Nop()),
		settings,
		opts...,
	)
}

func fetch(t *testing.T, p *page, rawURL string) (*port.Response, error) {
	t.Helper()
	var (
		resp    *port.Response
		err     error
		settled bool
	)
	require.NoError(t, p.network.Fetcher().Fetch(&port.Request{URL: rawURL, Method: http.MethodGet}, func(r *port.Response, e error) {
		resp, err, settled = r, e, true
	}))
	assert.False(t, settled, "fetch never settles synchronously")
	p.sched.Advance(time.Millisecond)
	require.True(t, settled)
	return resp, err
}

func TestInjectShieldUseCase_SkipsPages(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		settings func(*usecase.ShieldSettings)
	}{
		{name: "disabled", url: "https://news.example/", settings: func(s *usecase.ShieldSettings) { s.Enabled = false }},
		{name: "about page", url: "about:blank"},
		{name: "data url", url: "data:text/html,<p>x</p>"},
		{name: "blob url", url: "blob:https://news.example/1234"},
		{name: "file url", url: "file:///tmp/page.html"},
		{name: "bypass host", url: "https://browserbench.org/Speedometer3.0/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := defaultSettings()
			if tt.settings != nil {
				tt.settings(&settings)
			}
			p := newPage(t, "")

			sess, err := newInjector(settings).Inject(testContext(), p.input(tt.url))

			require.NoError(t, err)
			require.NotNil(t, sess)
			assert.False(t, sess.Active())
			assert.True(t, usecase.IsSkipped(sess.Err()))
			assert.True(t, p.primitivesRestored(), "page primitives untouched")
			assert.Zero(t, p.sched.Pending())
		})
	}
}

func TestInjectShieldUseCase_SiteBypassList(t *testing.T) {
	sites := repomocks.NewMockSiteBypassRepository(t)
	sites.EXPECT().Contains(mock.Anything, "intranet.example").Return(true, nil)

	p := newPage(t, "")
	sess, err := newInjector(defaultSettings(), usecase.WithSiteBypassList(sites)).
		Inject(testContext(), p.input("https://intranet.example/dashboard"))

	require.NoError(t, err)
	assert.False(t, sess.Active())
	assert.ErrorIs(t, sess.Err(), filtering.ErrShieldDisabled)
}

func TestInjectShieldUseCase_SiteBypassLookupFailureInstalls(t *testing.T) {
	sites := repomocks.NewMockSiteBypassRepository(t)
	sites.EXPECT().Contains(mock.Anything, "news.example").Return(false, errors.New("db locked"))

	p := newPage(t, "")
	sess, err := newInjector(defaultSettings(), usecase.WithSiteBypassList(sites)).
		Inject(testContext(), p.input("https://news.example/"))

	require.NoError(t, err)
	assert.True(t, sess.Active())
	sess.Close()
}

func TestInjectShieldUseCase_RequiresScheduler(t *testing.T) {
	p := newPage(t, "")
	in := p.input("https://news.example/")
	in.Scheduler = nil

	_, err := newInjector(defaultSettings()).Inject(testContext(), in)
	assert.Error(t, err)
}

func TestInjectShieldUseCase_BlocksAndRecords(t *testing.T) {
	events := repomocks.NewMockBlockEventRepository(t)
	events.EXPECT().Record(mock.Anything, mock.MatchedBy(func(e *entity.BlockEvent) bool {
		return e.URL == trackerURL && e.PageHost == "news.example" && e.Source == entity.SourcePage
	})).Return(nil).Once()

	p := newPage(t, "")
	sess, err := newInjector(defaultSettings(), usecase.WithBlockEvents(events)).
		Inject(testContext(), p.input("https://news.example/story"))
	require.NoError(t, err)
	require.True(t, sess.Active())
	assert.Equal(t, "news.example", sess.Site.Hostname)
	assert.NotEmpty(t, sess.ID)

	_, fetchErr := fetch(t, p, trackerURL)
	assert.ErrorIs(t, fetchErr, filtering.ErrNetwork)
	assert.Zero(t, p.server.calls, "blocked request never reaches the network")
	assert.Equal(t, 1, sess.Blocked())

	resp, fetchErr := fetch(t, p, cleanURL)
	require.NoError(t, fetchErr)
	assert.True(t, resp.OK())
	assert.Equal(t, 1, p.server.calls)

	sess.Close()
}

func TestInjectShieldUseCase_CountermeasuresOnGenericSite(t *testing.T) {
	p := newPage(t, "")
	sess, err := newInjector(defaultSettings()).Inject(testContext(), p.input("https://news.example/"))
	require.NoError(t, err)
	defer sess.Close()

	assert.True(t, p.realm.Has("ga"), "analytics stub installed")

	bait, err := p.dom.Document().QuerySelector("#" + rules.BaitClasses[0])
	require.NoError(t, err)
	assert.NotNil(t, bait, "bait element planted")
}

func TestInjectShieldUseCase_SpecialSitePayloadHooks(t *testing.T) {
	p := newPage(t, "")

	sess, err := newInjector(defaultSettings()).Inject(testContext(), p.input("https://www.youtube.com/watch?v=x"))
	require.NoError(t, err)
	require.True(t, sess.Active())
	assert.True(t, sess.Site.IsSpecialSite)

	resp, fetchErr := fetch(t, p, "https://www.youtube.com/youtubei/v1/player?key=k")
	require.NoError(t, fetchErr)
	assert.Contains(t, string(resp.Body), `"playerAds":[]`)
	assert.Contains(t, string(resp.Body), `"adPlacements":[]`)
	assert.Contains(t, string(resp.Body), "videoDetails")
	assert.Empty(t, resp.Header.Get("Content-Length"))

	xhr := p.network.XHRFactory()()
	var xhrText string
	xhr.AddEventListener("load", func() { xhrText = xhr.ResponseText() })
	require.NoError(t, xhr.Open("POST", "https://www.youtube.com/youtubei/v1/next?key=k"))
	require.NoError(t, xhr.Send([]byte(`{}`)))
	p.sched.Advance(time.Millisecond)
	assert.Contains(t, xhrText, `"playerAds":[]`)
	assert.Contains(t, xhrText, `"videoId":"x"`)

	_, evalErr := p.realm.Eval(`ytInitialPlayerResponse = { videoDetails: { id: "x" }, playerAds: [1], adBreakRenderer: {} };`)
	require.NoError(t, evalErr)
	stripped, evalErr := p.realm.Eval(`ytInitialPlayerResponse.playerAds.length === 0 && !("adBreakRenderer" in ytInitialPlayerResponse)`)
	require.NoError(t, evalErr)
	assert.Equal(t, true, stripped)

	sess.Close()
	assert.True(t, p.primitivesRestored(), "close restores the page primitives")
	assert.False(t, sess.Active())
}

func TestInjectShieldUseCase_CloseIsIdempotent(t *testing.T) {
	p := newPage(t, "")

	sess, err := newInjector(defaultSettings()).Inject(testContext(), p.input("https://news.example/"))
	require.NoError(t, err)
	assert.False(t, p.primitivesRestored(), "fetch is wrapped while the shield is active")
	p.sched.Advance(time.Millisecond)

	sess.Close()
	sess.Close()
	sess.Sweep()

	assert.True(t, p.primitivesRestored())
	assert.Zero(t, p.sched.Pending(), "sweep interval cleared")
}
