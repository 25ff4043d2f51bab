package fetch

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opensite-ai/page-speed-social-share/types"
)

// pngBytes is a minimal PNG header so DetectContentType reports image/png.
var pngBytes = []byte("\x89PNG\r\n\x1a\n" + "fake image body")

func newTestPipeline(cfg types.AppConfig) *Pipeline {
	cfg.CacheTTLSeconds = 300
	return NewPipeline(&cfg)
}

func TestProxyFetchForAllowListedHost(t *testing.T) {
	var gotAuth, gotReferer string
	var gotBody types.ProxyFetchRequest
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReferer = r.Header.Get("Referer")
		body, _ := io.ReadAll(r.Body)
		_ = sonic.Unmarshal(body, &gotBody)
		w.Write(pngBytes)
	}))
	defer proxy.Close()

	p := newTestPipeline(types.AppConfig{
		ProxyEndpoint:   proxy.URL,
		ProxyAllowHosts: []string{"bucket.example.com"},
		ProxyAuthToken:  "secret-token",
		Origin:          "https://widget.example.com",
	})

	blob, err := p.FetchBlob(context.Background(), "https://bucket.example.com/pic.png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, blob)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, "https://widget.example.com", gotReferer)
	assert.Equal(t, "https://bucket.example.com/pic.png", gotBody.URL)
}

func TestDirectFetchForOtherHosts(t *testing.T) {
	var proxyHits int
	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		proxyHits++
	}))
	defer proxy.Close()
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes)
	}))
	defer upstream.Close()

	p := newTestPipeline(types.AppConfig{
		ProxyEndpoint:   proxy.URL,
		ProxyAllowHosts: []string{"bucket.example.com"},
	})

	blob, err := p.FetchBlob(context.Background(), upstream.URL+"/pic.png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, blob)
	assert.Zero(t, proxyHits)
}

func TestDeniedDirectFetchYieldsEmptyBlobNotError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer upstream.Close()

	p := newTestPipeline(types.AppConfig{})

	blob, err := p.FetchBlob(context.Background(), upstream.URL+"/pic.png")
	require.NoError(t, err)
	assert.Empty(t, blob)
}

func TestProxyFailureFallsBackToPlainFetch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes)
	}))
	defer upstream.Close()

	// proxy endpoint points nowhere, allow-listed host is the upstream itself,
	// so the plain last-resort fetch can still succeed
	host := strings.TrimPrefix(upstream.URL, "http://")
	p := newTestPipeline(types.AppConfig{
		ProxyEndpoint:   "http://127.0.0.1:1/proxy-image",
		ProxyAllowHosts: []string{strings.Split(host, ":")[0]},
	})

	blob, err := p.FetchBlob(context.Background(), upstream.URL+"/pic.png")
	require.NoError(t, err)
	assert.Equal(t, pngBytes, blob)
}

func TestFallbackFailurePropagatesOriginalError(t *testing.T) {
	p := newTestPipeline(types.AppConfig{
		ProxyEndpoint:   "http://127.0.0.1:1/proxy-image",
		ProxyAllowHosts: []string{"127.0.0.1"},
	})

	// both the proxy and the plain fallback are unreachable; the error must
	// name the proxy tier, not the fallback
	_, err := p.FetchBlob(context.Background(), "http://127.0.0.1:1/pic.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "proxy fetch failed")
}

func TestToBase64BuildsDataURL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngBytes)
	}))
	defer upstream.Close()

	p := newTestPipeline(types.AppConfig{})

	dataURL := p.ToBase64(context.Background(), upstream.URL+"/pic.png")
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
	assert.Equal(t, want, dataURL)
}

func TestToBase64EmptyBlobYieldsEmptyString(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()

	p := newTestPipeline(types.AppConfig{})

	assert.Empty(t, p.ToBase64(context.Background(), upstream.URL+"/pic.png"))
}

func TestToBase64SwallowsErrors(t *testing.T) {
	p := newTestPipeline(types.AppConfig{})

	assert.Empty(t, p.ToBase64(context.Background(), "http://127.0.0.1:1/pic.png"))
}

func TestToBase64CachesConvertedImages(t *testing.T) {
	var hits int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write(pngBytes)
	}))
	defer upstream.Close()

	p := newTestPipeline(types.AppConfig{})

	first := p.ToBase64(context.Background(), upstream.URL+"/pic.png")
	second := p.ToBase64(context.Background(), upstream.URL+"/pic.png")
	assert.Equal(t, first, second)
	assert.Equal(t, 1, hits)
}

func TestIsAllowListedHostMatchesSubstring(t *testing.T) {
	p := newTestPipeline(types.AppConfig{ProxyAllowHosts: []string{"storage.googleapis.com"}})

	assert.True(t, p.IsAllowListedHost("https://storage.googleapis.com/bucket/pic.png"))
	assert.False(t, p.IsAllowListedHost("https://evil.example.com/pic.png"))
	assert.False(t, p.IsAllowListedHost("::not a url::"))
}
