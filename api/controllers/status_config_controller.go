package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opensite-ai/page-speed-social-share/api/models"
	"github.com/opensite-ai/page-speed-social-share/tool"
	"github.com/opensite-ai/page-speed-social-share/types"
)

// HandleStatus reports whether the service is up, native share capability and
// the number of attached notify clients.
func HandleStatus(c *gin.Context) {
	canShare := false
	if eng := models.GetShareEngine(); eng != nil {
		canShare = eng.DetectCapability()
	}
	clients := 0
	if hub := models.GetNotifyHub(); hub != nil {
		clients = hub.ClientCount()
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{
		"running":       true,
		"canShare":      canShare,
		"notifyClients": clients,
	}))
}

// HandleConfigGet returns the current app config.
func HandleConfigGet(c *gin.Context) {
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(tool.GetCurrentConfig()))
}

// HandleConfigPatch merges the submitted fields into the app config and
// persists it. Absent fields are left untouched; only share-facing fields are
// writable, port changes require a restart and are rejected here.
func HandleConfigPatch(c *gin.Context) {
	var patch types.ConfigPatchRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid config body"))
		return
	}

	cfg := *tool.GetCurrentConfig()
	if patch.Port != nil && *patch.Port != cfg.Port {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Port cannot be changed at runtime"))
		return
	}
	if patch.ProxyEndpoint != nil {
		cfg.ProxyEndpoint = *patch.ProxyEndpoint
	}
	if patch.ProxyAllowHosts != nil {
		cfg.ProxyAllowHosts = patch.ProxyAllowHosts
	}
	if patch.ProxyAuthToken != nil {
		cfg.ProxyAuthToken = *patch.ProxyAuthToken
	}
	if patch.ProxyRateRPS != nil && *patch.ProxyRateRPS > 0 {
		cfg.ProxyRateRPS = *patch.ProxyRateRPS
		InitProxyLimiter(cfg.ProxyRateRPS)
	}
	if patch.Origin != nil {
		cfg.Origin = *patch.Origin
	}
	if patch.CacheTTLSeconds != nil && *patch.CacheTTLSeconds > 0 {
		cfg.CacheTTLSeconds = *patch.CacheTTLSeconds
	}
	if patch.Platforms != nil {
		cfg.Platforms = patch.Platforms
	}
	if patch.AttachImages != nil {
		cfg.AttachImages = *patch.AttachImages
	}

	tool.PersistAppConfig(&cfg)
	if eng := models.GetShareEngine(); eng != nil {
		eng.SetAttachmentsDisabled(!cfg.AttachImages)
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccess())
}
