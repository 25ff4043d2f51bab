// Package models holds the server-side singletons the controllers share:
// the capability engine, the acquisition pipeline and the notify hub.
package models

import (
	"github.com/opensite-ai/page-speed-social-share/api/notifyhub"
	"github.com/opensite-ai/page-speed-social-share/engine"
	"github.com/opensite-ai/page-speed-social-share/fetch"
)

var (
	shareEngine *engine.Engine
	pipeline    *fetch.Pipeline
	notifyHub   *notifyhub.Hub
)

// SetShareEngine installs the engine instance the controllers delegate to.
func SetShareEngine(e *engine.Engine) {
	shareEngine = e
}

func GetShareEngine() *engine.Engine {
	return shareEngine
}

// SetPipeline installs the acquisition pipeline used by the proxy controller.
func SetPipeline(p *fetch.Pipeline) {
	pipeline = p
}

func GetPipeline() *fetch.Pipeline {
	return pipeline
}

// SetNotifyHub installs the hub share notifications are broadcast through.
func SetNotifyHub(h *notifyhub.Hub) {
	notifyHub = h
}

func GetNotifyHub() *notifyhub.Hub {
	return notifyHub
}
