package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opensite-ai/page-speed-social-share/affordance"
	"github.com/opensite-ai/page-speed-social-share/api/models"
	"github.com/opensite-ai/page-speed-social-share/tool"
	"github.com/opensite-ai/page-speed-social-share/types"
)

// HandleAffordances maps the frontend's device signals to the affordance set
// plus resolved outbound share URLs for the enabled platforms.
// GET ?touch=true&screen=mobile&title=...&url=...&image=...
func HandleAffordances(c *gin.Context) {
	touch := c.Query("touch") == "true" || c.Query("touch") == "1"
	screen := types.ParseScreenClass(c.Query("screen"))
	title := c.Query("title")
	pageURL := c.Query("url")
	imageURL := c.Query("image")

	nativeAvailable := false
	if eng := models.GetShareEngine(); eng != nil {
		nativeAvailable = eng.DetectCapability()
	}

	set := affordance.Select(affordance.Inputs{
		TouchDevice:          touch,
		Screen:               screen,
		NativeShareAvailable: nativeAvailable,
		Platforms:            configuredPlatforms(),
		HasAtLeastOneImage:   imageURL != "",
	})

	shareURLs := make(map[types.PlatformID]string)
	for _, id := range set.EnabledPlatforms {
		switch id {
		case types.PlatformX:
			shareURLs[id] = tool.BuildXShareURL(title, pageURL)
		case types.PlatformFacebook:
			shareURLs[id] = tool.BuildFacebookShareURL(pageURL)
		case types.PlatformPinterest:
			shareURLs[id] = tool.BuildPinterestShareURL(pageURL, imageURL, title)
		case types.PlatformLinkedIn:
			shareURLs[id] = tool.BuildLinkedInShareURL(pageURL)
		case types.PlatformEmail:
			shareURLs[id] = tool.BuildEmailShareURL(title, pageURL)
		}
	}

	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{
		"affordances": set,
		"shareUrls":   shareURLs,
	}))
}

// configuredPlatforms merges config overrides onto the default platform flags.
func configuredPlatforms() types.PlatformConfig {
	cfg := tool.GetCurrentConfig()
	platforms := types.DefaultPlatformConfig()
	for id, enabled := range cfg.Platforms {
		platforms[types.PlatformID(id)] = enabled
	}
	return platforms
}
