package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/opensite-ai/page-speed-social-share/api/models"
	"github.com/opensite-ai/page-speed-social-share/tool"
	"github.com/opensite-ai/page-speed-social-share/types"
)

var proxyLimiter *rate.Limiter

// InitProxyLimiter configures the proxy-image rate limit in requests per second.
func InitProxyLimiter(rps int) {
	if rps <= 0 {
		proxyLimiter = nil
		return
	}
	burst := rps * 2
	if burst < 10 {
		burst = 10
	}
	proxyLimiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// HandleProxyImage is the fixed proxy endpoint the acquisition pipeline POSTs
// to for allow-listed hosts: body {url}, credential checked, upstream image
// streamed back. Non-allow-listed hosts are refused so this never becomes an
// open relay.
func HandleProxyImage(c *gin.Context) {
	if proxyLimiter != nil && !proxyLimiter.Allow() {
		c.JSON(http.StatusTooManyRequests, tool.FastReturnError("Rate limit exceeded"))
		return
	}

	cfg := tool.GetCurrentConfig()
	if cfg.ProxyAuthToken != "" {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != cfg.ProxyAuthToken {
			c.JSON(http.StatusUnauthorized, tool.FastReturnError("Invalid proxy credential"))
			return
		}
	}

	var req types.ProxyFetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid request body"))
		return
	}

	pipeline := models.GetPipeline()
	if pipeline == nil || !pipeline.IsAllowListedHost(req.URL) {
		c.JSON(http.StatusForbidden, tool.FastReturnError("Host is not allow-listed"))
		return
	}

	upstream, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, req.URL, nil)
	if err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid url"))
		return
	}
	resp, err := tool.GetDirectHttpClient().Do(upstream)
	if err != nil {
		tool.DefaultLogger.Warnf("Proxy upstream fetch failed for %s: %v", req.URL, err)
		c.JSON(http.StatusBadGateway, tool.FastReturnError("Upstream fetch failed"))
		return
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			tool.DefaultLogger.Errorf("Failed to close response body: %v", err)
		}
	}()
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.JSON(http.StatusBadGateway, tool.FastReturnErrorWithData("Upstream fetch failed", map[string]any{
			"status": resp.StatusCode,
		}))
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusBadGateway, tool.FastReturnError("Failed to read upstream body"))
		return
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	c.Data(http.StatusOK, contentType, body)
}
