package proxy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// errUnsupportedEncoding marks bodies passed through untouched.
var errUnsupportedEncoding = errors.New("unsupported content encoding")

// transformFunc rewrites a decoded body, reporting whether it changed.
type transformFunc func(body []byte) ([]byte, bool)

func decode(encoding string, raw []byte) ([]byte, error) {
	var r io.Reader
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		return raw, nil
	case "gzip", "x-gzip":
		zr, err := gzip.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip body: %w", err)
		}
		defer zr.Close()
		r = zr
	case "br":
		r = brotli.NewReader(bytes.NewReader(raw))
	case "deflate":
		zr, err := zlib.NewReader(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("failed to open deflate body: %w", err)
		}
		defer zr.Close()
		r = zr
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedEncoding, encoding)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s body: %w", encoding, err)
	}
	return out, nil
}

// rewriteBody runs transform over resp's decoded body. Bodies larger than
// limit, in an unknown encoding or left unchanged are passed through
// byte for byte. A rewritten body is sent uncompressed.
func rewriteBody(resp *http.Response, limit int64, transform transformFunc) (bool, error) {
	if resp == nil || resp.Body == nil {
		return false, nil
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return false, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(raw)) > limit {
		resp.Body = readCloser{io.MultiReader(bytes.NewReader(raw), resp.Body), resp.Body}
		return false, nil
	}
	_ = resp.Body.Close()

	restore := func() { resp.Body = io.NopCloser(bytes.NewReader(raw)) }

	plain, err := decode(resp.Header.Get("Content-Encoding"), raw)
	if err != nil {
		restore()
		if errors.Is(err, errUnsupportedEncoding) {
			return false, nil
		}
		return false, err
	}
	out, changed := transform(plain)
	if !changed {
		restore()
		return false, nil
	}

	resp.Body = io.NopCloser(bytes.NewReader(out))
	resp.ContentLength = int64(len(out))
	resp.Header.Del("Content-Encoding")
	resp.Header.Set("Content-Length", strconv.Itoa(len(out)))
	resp.TransferEncoding = nil
	return true, nil
}

type readCloser struct {
	io.Reader
	io.Closer
}
