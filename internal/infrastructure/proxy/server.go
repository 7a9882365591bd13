// Package proxy is the process-level HTTP filtering proxy. It cancels
// tracker requests, rejects CONNECT tunnels to tracker hosts and
// sanitizes player payloads and HTML documents in transit.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/http"
	"time"

	"github.com/elazarl/goproxy"
	"github.com/rs/zerolog"

	"github.com/bnema/adshield/internal/domain/entity"
)

const (
	// DefaultListen is the default proxy address.
	DefaultListen = "127.0.0.1:8118"
	// DefaultMaxBodyBytes bounds the bodies buffered for rewriting.
	DefaultMaxBodyBytes = 8 << 20

	shutdownTimeout = 5 * time.Second
)

// RequestFilter decides whether a request is canceled.
type RequestFilter interface {
	ShouldCancel(ctx context.Context, req entity.InterceptedRequest) bool
}

// PayloadSanitizer strips ad data from player API responses.
type PayloadSanitizer interface {
	IsPlayerEndpoint(rawURL string) bool
	SanitizeBody(raw []byte) ([]byte, bool)
}

// HTMLSanitizer neutralizes ad markup in a served document.
type HTMLSanitizer interface {
	SanitizeHTML(ctx context.Context, pageURL string, body []byte) ([]byte, bool, error)
}

// Config holds proxy settings.
type Config struct {
	Listen       string
	MITM         bool
	SanitizeHTML bool
	MaxBodyBytes int64
}

func (c Config) withDefaults() Config {
	if c.Listen == "" {
		c.Listen = DefaultListen
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}

// Server wraps a goproxy server with the shield handlers.
type Server struct {
	cfg     Config
	filter  RequestFilter
	payload PayloadSanitizer
	html    HTMLSanitizer
	logger  zerolog.Logger
	proxy   *goproxy.ProxyHttpServer
}

// Option configures a Server.
type Option func(*Server)

// WithPayloadSanitizer enables player response sanitization.
func WithPayloadSanitizer(p PayloadSanitizer) Option {
	return func(s *Server) { s.payload = p }
}

// WithHTMLSanitizer sets the document sanitizer used when
// Config.SanitizeHTML is on.
func WithHTMLSanitizer(h HTMLSanitizer) Option {
	return func(s *Server) { s.html = h }
}

// WithLogger sets the server logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New builds the proxy handler chain.
func New(cfg Config, filter RequestFilter, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg.withDefaults(),
		filter: filter,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("component", "proxy").Logger()

	p := goproxy.NewProxyHttpServer()
	p.Logger = goproxyLogger{s.logger}
	// Encoded bodies are decoded by rewriteBody; the transport must not
	// strip Accept-Encoding and decompress behind our back.
	p.KeepAcceptEncoding = true
	p.OnRequest().HandleConnectFunc(s.handleConnect)
	p.OnRequest().DoFunc(s.handleRequest)
	p.OnResponse().DoFunc(s.handleResponse)
	s.proxy = p
	return s
}

// Handler returns the proxy as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.proxy
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.cfg.Listen
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.proxy,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	s.logger.Info().Str("addr", ln.Addr().String()).Bool("mitm", s.cfg.MITM).Msg("proxy listening")

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("proxy server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down proxy: %w", err)
	}
	s.logger.Info().Msg("proxy stopped")
	return nil
}

func (s *Server) handleConnect(host string, ctx *goproxy.ProxyCtx) (*goproxy.ConnectAction, string) {
	hostname := host
	if h, _, err := net.SplitHostPort(host); err == nil {
		hostname = h
	}
	req := entity.InterceptedRequest{
		RawURL:       "https://" + hostname + "/",
		Method:       http.MethodConnect,
		ResourceType: entity.ResourceOther,
	}
	if s.filter.ShouldCancel(requestContext(ctx), req) {
		s.logger.Debug().Str("host", hostname).Msg("rejected tunnel")
		return goproxy.RejectConnect, host
	}
	if s.cfg.MITM {
		return goproxy.MitmConnect, host
	}
	return goproxy.OkConnect, host
}

func (s *Server) handleRequest(r *http.Request, ctx *goproxy.ProxyCtx) (*http.Request, *http.Response) {
	req := entity.InterceptedRequest{
		RawURL:       r.URL.String(),
		Method:       r.Method,
		ResourceType: entity.ResourceTypeFromFetchDest(r.Header.Get("Sec-Fetch-Dest")),
		Referrer:     r.Referer(),
	}
	if !s.filter.ShouldCancel(r.Context(), req) {
		return r, nil
	}
	s.logger.Debug().Str("url", req.RawURL).Msg("canceled request")
	return r, BlockedResponse(r)
}

// BlockedResponse is the empty reply sent in place of a canceled request.
func BlockedResponse(r *http.Request) *http.Response {
	resp := goproxy.NewResponse(r, goproxy.ContentTypeText, http.StatusOK, "")
	resp.Header.Set("Access-Control-Allow-Origin", "*")
	return resp
}

func (s *Server) handleResponse(resp *http.Response, ctx *goproxy.ProxyCtx) *http.Response {
	if resp == nil || ctx.Req == nil || resp.StatusCode != http.StatusOK {
		return resp
	}
	rawURL := ctx.Req.URL.String()

	switch {
	case s.payload != nil && s.payload.IsPlayerEndpoint(rawURL):
		changed, err := rewriteBody(resp, s.cfg.MaxBodyBytes, s.payload.SanitizeBody)
		s.logRewrite(rawURL, "payload", changed, err)

	case s.cfg.SanitizeHTML && s.html != nil && isHTML(resp):
		reqCtx := requestContext(ctx)
		changed, err := rewriteBody(resp, s.cfg.MaxBodyBytes, func(body []byte) ([]byte, bool) {
			out, changed, err := s.html.SanitizeHTML(reqCtx, rawURL, body)
			if err != nil {
				s.logger.Debug().Err(err).Str("url", rawURL).Msg("document not sanitized")
				return body, false
			}
			return out, changed
		})
		s.logRewrite(rawURL, "html", changed, err)
	}
	return resp
}

func (s *Server) logRewrite(rawURL, kind string, changed bool, err error) {
	if err != nil {
		s.logger.Debug().Err(err).Str("url", rawURL).Str("kind", kind).Msg("body passed through")
		return
	}
	if changed {
		s.logger.Debug().Str("url", rawURL).Str("kind", kind).Msg("rewrote response")
	}
}

func isHTML(resp *http.Response) bool {
	mt, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	return err == nil && mt == "text/html"
}

func requestContext(ctx *goproxy.ProxyCtx) context.Context {
	if ctx != nil && ctx.Req != nil {
		return ctx.Req.Context()
	}
	return context.Background()
}

// goproxyLogger routes goproxy's printf logging to zerolog at debug.
type goproxyLogger struct {
	logger zerolog.Logger
}

func (l goproxyLogger) Printf(format string, v ...any) {
	l.logger.Debug().Msgf(format, v...)
}
