package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/opensite-ai/page-speed-social-share/api/models"
	"github.com/opensite-ai/page-speed-social-share/notify"
	"github.com/opensite-ai/page-speed-social-share/tool"
	"github.com/opensite-ai/page-speed-social-share/types"
)

// HandleShare accepts a ShareRequest, prepares attachments, and executes the
// native share with the layered fallback. The response always carries the
// share state; failure is a state field, never a rejected request.
func HandleShare(c *gin.Context) {
	eng := models.GetShareEngine()
	if eng == nil {
		c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("Share engine not ready"))
		return
	}

	var req types.ShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, tool.FastReturnError("Invalid share request"))
		return
	}

	shareID := tool.GenerateShortShareID()
	tool.DefaultLogger.Infof("Share requested: id=%s title=%q images=%d", shareID, req.Title, len(req.ImageURLs))
	broadcastShareEvent(types.NotifyTypeShareRequested, shareID, &req, "")

	eng.Share(c.Request.Context(), &req)
	state := eng.State()

	if state.LastError != "" {
		tool.DefaultLogger.Warnf("Share failed: id=%s: %s", shareID, state.LastError)
		broadcastShareEvent(types.NotifyTypeShareFailed, shareID, &req, state.LastError)
	} else {
		broadcastShareEvent(types.NotifyTypeShareCompleted, shareID, &req, "")
	}

	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(state))
}

// HandleShareState returns the current observable share state.
func HandleShareState(c *gin.Context) {
	eng := models.GetShareEngine()
	if eng == nil {
		c.JSON(http.StatusServiceUnavailable, tool.FastReturnError("Share engine not ready"))
		return
	}
	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(eng.State()))
}

// broadcastShareEvent pushes a share lifecycle event to the WebSocket hub and
// the unix socket notifier. Both channels are best-effort.
func broadcastShareEvent(eventType, shareID string, req *types.ShareRequest, errMsg string) {
	notification := &types.Notification{
		Type:    eventType,
		Title:   req.Title,
		Message: req.URL,
		Data: map[string]any{
			"shareId": shareID,
			"title":   req.Title,
			"url":     req.URL,
		},
	}
	if errMsg != "" {
		notification.Data["error"] = errMsg
	}
	if hub := models.GetNotifyHub(); hub != nil {
		hub.Broadcast(notification)
	}
	if err := notify.SendNotification(notification, ""); err != nil {
		tool.DefaultLogger.Debugf("Failed to send share notification: %v", err)
	}
}
