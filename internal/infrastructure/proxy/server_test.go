package proxy_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/adshield/internal/domain/entity"
	"github.com/bnema/adshield/internal/filtering/payload"
	"github.com/bnema/adshield/internal/infrastructure/proxy"
)

const playerJSON = `{"videoDetails":{"videoId":"abc"},"adPlacements":[{"x":1}],"playerAds":[]}`

type recordingFilter struct {
	mu   sync.Mutex
	seen []entity.InterceptedRequest
}

func (f *recordingFilter) ShouldCancel(_ context.Context, req entity.InterceptedRequest) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen = append(f.seen, req)
	return strings.Contains(req.RawURL, "/collect") || strings.Contains(req.RawURL, "tracker.test")
}

func (f *recordingFilter) requests() []entity.InterceptedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]entity.InterceptedRequest(nil), f.seen...)
}

type fakeHTML struct{}

func (fakeHTML) SanitizeHTML(_ context.Context, _ string, body []byte) ([]byte, bool, error) {
	out := bytes.ReplaceAll(body, []byte(`<script src="https://ads.test/a.js"></script>`), nil)
	return out, !bytes.Equal(out, body), nil
}

func gzipped(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func brotlied(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := brotli.NewWriter(&buf)
	_, err := w.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func upstream(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(gzipped(t, playerJSON))
	})
	mux.HandleFunc("/youtubei/v1/next", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write(brotlied(t, playerJSON))
	})
	mux.HandleFunc("/youtubei/v1/browse", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"contents":{}}`)
	})
	mux.HandleFunc("/page", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, `<html><body><script src="https://ads.test/a.js"></script><p>hi</p></body></html>`)
	})
	mux.HandleFunc("/collect", func(w http.ResponseWriter, r *http.Request) {
		t.Error("canceled request reached upstream")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, cfg proxy.Config, filter proxy.RequestFilter) *http.Client {
	t.Helper()
	s := proxy.New(cfg, filter,
		proxy.WithPayloadSanitizer(payload.New(zerolog.Nop())),
		proxy.WithHTMLSanitizer(fakeHTML{}),
	)
	front := httptest.NewServer(s.Handler())
	t.Cleanup(front.Close)

	proxyURL, err := url.Parse(front.URL)
	require.NoError(t, err)
	return &http.Client{Transport: &http.Transport{
		Proxy:              http.ProxyURL(proxyURL),
		DisableCompression: true,
	}}
}

func get(t *testing.T, c *http.Client, rawURL string, header map[string]string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestProxy_CancelsTrackerRequests(t *testing.T) {
	up := upstream(t)
	filter := &recordingFilter{}
	c := newClient(t, proxy.Config{}, filter)

	resp, body := get(t, c, up.URL+"/collect?v=1", map[string]string{"Sec-Fetch-Dest": "script", "Referer": "https://news.example/"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "text/plain", resp.Header.Get("Content-Type"))

	seen := filter.requests()
	require.Len(t, seen, 1)
	assert.Equal(t, entity.ResourceScript, seen[0].ResourceType)
	assert.Equal(t, "https://news.example/", seen[0].Referrer)
}

func TestProxy_SanitizesEncodedPlayerPayloads(t *testing.T) {
	up := upstream(t)
	c := newClient(t, proxy.Config{}, &recordingFilter{})

	for _, path := range []string{"/youtubei/v1/player", "/youtubei/v1/next"} {
		resp, body := get(t, c, up.URL+path, map[string]string{"Accept-Encoding": "gzip, br"})
		assert.Empty(t, resp.Header.Get("Content-Encoding"), path)
		assert.Contains(t, body, `"videoId":"abc"`, path)
		assert.Contains(t, body, `"adPlacements":[]`, path)
		assert.Contains(t, body, `"playerAds":[]`, path)
		assert.NotContains(t, body, `"x":1`, path)
	}

	_, body := get(t, c, up.URL+"/youtubei/v1/browse", nil)
	assert.Equal(t, `{"contents":{}}`, body, "unchanged payloads pass through")
}

func TestProxy_OversizedBodiesPassThrough(t *testing.T) {
	up := upstream(t)
	c := newClient(t, proxy.Config{MaxBodyBytes: 8}, &recordingFilter{})

	resp, body := get(t, c, up.URL+"/youtubei/v1/player", map[string]string{"Accept-Encoding": "gzip"})
	assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	zr, err := gzip.NewReader(strings.NewReader(body))
	require.NoError(t, err)
	plain, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, playerJSON, string(plain))
}

func TestProxy_SanitizesHTMLWhenEnabled(t *testing.T) {
	up := upstream(t)

	_, body := get(t, newClient(t, proxy.Config{SanitizeHTML: true}, &recordingFilter{}), up.URL+"/page", nil)
	assert.NotContains(t, body, "ads.test")
	assert.Contains(t, body, "<p>hi</p>")

	_, body = get(t, newClient(t, proxy.Config{}, &recordingFilter{}), up.URL+"/page", nil)
	assert.Contains(t, body, "ads.test")
}

func TestProxy_RejectsTunnelsToTrackers(t *testing.T) {
	filter := &recordingFilter{}
	c := newClient(t, proxy.Config{}, filter)

	_, err := c.Get("https://ads.tracker.test/pixel")
	require.Error(t, err)

	seen := filter.requests()
	require.NotEmpty(t, seen)
	assert.Equal(t, http.MethodConnect, seen[0].Method)
	assert.Equal(t, "https://ads.tracker.test/", seen[0].RawURL)
}

func TestProxy_ServeStopsOnCancel(t *testing.T) {
	s := proxy.New(proxy.Config{Listen: "127.0.0.1:0"}, &recordingFilter{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx) }()
	cancel()
	assert.NoError(t, <-done)
}
