package notifyhub

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/opensite-ai/page-speed-social-share/types"
)

// MaxSharePayloadBytes caps the total attachment size the hub will push to a
// UI client in one share-sheet message.
const MaxSharePayloadBytes = 10 * 1024 * 1024 // 10MB

// HubSharer is the native share entry point backed by the notify hub: sharing
// means pushing a share-sheet request to the attached UI client, which renders
// the OS share surface. Capability means a client is attached.
type HubSharer struct {
	hub *Hub
}

// NewHubSharer wraps a hub as a Sharer.
func NewHubSharer(hub *Hub) *HubSharer {
	return &HubSharer{hub: hub}
}

// CanShare reports whether the payload shape can be delivered: a UI client
// must be attached, and attachments must fit the push size cap.
func (s *HubSharer) CanShare(payload *types.SharePayload) bool {
	if payload == nil || s.hub.ClientCount() == 0 {
		return false
	}
	var total int
	for _, f := range payload.Files {
		total += len(f.Data)
	}
	return total <= MaxSharePayloadBytes
}

// Share pushes the share-sheet request to the attached UI clients. Files are
// re-encoded as data URLs so the client can hand them straight to the OS
// share surface.
func (s *HubSharer) Share(ctx context.Context, payload *types.SharePayload) error {
	if s.hub.ClientCount() == 0 {
		return fmt.Errorf("no UI client attached")
	}

	files := make([]map[string]any, 0, len(payload.Files))
	for _, f := range payload.Files {
		files = append(files, map[string]any{
			"fileName": f.FileName,
			"mimeType": f.MimeType,
			"dataUrl":  "data:" + f.MimeType + ";base64," + base64.StdEncoding.EncodeToString(f.Data),
		})
	}

	s.hub.Broadcast(&types.Notification{
		Type:    types.NotifyTypeShareSheet,
		Title:   payload.Title,
		Message: payload.URL,
		Data: map[string]any{
			"title": payload.Title,
			"url":   payload.URL,
			"files": files,
		},
	})
	return nil
}
