package fetch

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	ttlworker "github.com/FloatTech/ttl"
	"github.com/bytedance/sonic"

	"github.com/opensite-ai/page-speed-social-share/tool"
	"github.com/opensite-ai/page-speed-social-share/types"
)

const DefaultCacheTTL = 300 * time.Second // converted data URLs expire after 300 seconds

// Pipeline acquires remote images and converts them into shareable data URLs.
// Allow-listed hosts are routed through the authenticated proxy endpoint, the
// rest are fetched directly with a plain fetch as last resort.
type Pipeline struct {
	proxyEndpoint string
	allowHosts    []string
	authToken     string
	origin        string

	proxyClient  *http.Client
	directClient *http.Client
	plainClient  *http.Client

	converted *ttlworker.Cache[string, string]
}

// NewPipeline builds a Pipeline from app config, using the shared tool clients.
func NewPipeline(cfg *types.AppConfig) *Pipeline {
	cacheTTL := DefaultCacheTTL
	if cfg.CacheTTLSeconds > 0 {
		cacheTTL = time.Duration(cfg.CacheTTLSeconds) * time.Second
	}
	return &Pipeline{
		proxyEndpoint: cfg.ProxyEndpoint,
		allowHosts:    cfg.ProxyAllowHosts,
		authToken:     cfg.ProxyAuthToken,
		origin:        cfg.Origin,
		proxyClient:   tool.GetProxyHttpClient(),
		directClient:  tool.GetDirectHttpClient(),
		plainClient:   tool.GetDefaultHttpClient(),
		converted:     ttlworker.NewCache[string, string](cacheTTL),
	}
}

// IsAllowListedHost reports whether rawURL's host matches one of the
// configured proxy host substrings.
func (p *Pipeline) IsAllowListedHost(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	for _, allowed := range p.allowHosts {
		if allowed != "" && strings.Contains(host, allowed) {
			return true
		}
	}
	return false
}

// FetchBlob fetches rawURL with the tiered strategy: proxy for allow-listed
// hosts, direct cross-origin fetch otherwise, plain fetch as last resort. When
// the last-resort fetch also fails, the ORIGINAL error is returned so the
// caller sees why the preferred tier broke.
func (p *Pipeline) FetchBlob(ctx context.Context, rawURL string) ([]byte, error) {
	var blob []byte
	var err error
	if p.IsAllowListedHost(rawURL) {
		blob, err = p.fetchViaProxy(ctx, rawURL)
	} else {
		blob, err = p.fetchDirect(ctx, rawURL)
	}
	if err == nil {
		return blob, nil
	}
	tool.DefaultLogger.Debugf("Primary fetch failed for %s, trying plain fetch: %v", rawURL, err)
	blob, fallbackErr := p.fetchPlain(ctx, rawURL)
	if fallbackErr != nil {
		return nil, err
	}
	return blob, nil
}

// fetchViaProxy POSTs {url} to the fixed proxy endpoint with credentials and
// an origin-only referrer. Non-2xx is a failure.
func (p *Pipeline) fetchViaProxy(ctx context.Context, rawURL string) ([]byte, error) {
	payload, err := sonic.Marshal(types.ProxyFetchRequest{URL: rawURL})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal proxy payload: %v", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.proxyEndpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create proxy request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+p.authToken)
	}
	if p.origin != "" {
		req.Header.Set("Referer", p.origin)
	}
	resp, err := p.proxyClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proxy fetch failed: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("proxy fetch returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// fetchDirect issues a cross-origin GET that never fails on a denied
// response: a non-2xx answer yields a zero-length blob, which the caller
// treats as unconvertible. Only transport errors surface.
func (p *Pipeline) fetchDirect(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create direct request: %v", err)
	}
	resp, err := p.directClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("direct fetch failed: %v", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		// opaque response: readable but empty
		return []byte{}, nil
	}
	return io.ReadAll(resp.Body)
}

// fetchPlain is the simplest possible fetch with no special options.
func (p *Pipeline) fetchPlain(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.plainClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()
	return io.ReadAll(resp.Body)
}

// ToBase64 fetches rawURL and converts the blob into a base64 data URL. It is
// infallible from the caller's perspective: any failure, and a zero-byte blob
// in particular, yields an empty string which callers treat as "skip".
func (p *Pipeline) ToBase64(ctx context.Context, rawURL string) string {
	if cached := p.converted.Get(rawURL); cached != "" {
		return cached
	}
	blob, err := p.FetchBlob(ctx, rawURL)
	if err != nil {
		tool.DefaultLogger.Debugf("Image conversion failed for %s: %v", rawURL, err)
		return ""
	}
	if len(blob) == 0 {
		return ""
	}
	mimeType := http.DetectContentType(blob)
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(blob)
	p.converted.Set(rawURL, dataURL)
	return dataURL
}
