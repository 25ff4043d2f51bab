package engine

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"slices"
	"strconv"
	"sync"

	"github.com/opensite-ai/page-speed-social-share/fetch"
	"github.com/opensite-ai/page-speed-social-share/tool"
	"github.com/opensite-ai/page-speed-social-share/types"
)

// ErrorUnsupported is the error string surfaced when no viable way to invoke
// native share exists, with or without attachments.
const ErrorUnsupported = "native sharing is not supported on this platform"

// Engine owns native-share capability detection, attachment preparation and
// the layered share fallback. All failures land in the observable state; the
// public methods never return an error.
type Engine struct {
	sharer    Sharer
	converter Converter

	mu                 sync.Mutex
	disableAttachments bool     // process-wide kill switch (-skipAttachImages), toggled at runtime via config
	generation         uint64   // bumped per request key change; stale conversions must not commit
	requestKey         string   // stable key of the inputs the current conversions belong to
	converted          []string // data URLs for the current request, replaced wholesale
	lastError          string

	inFlight sync.Mutex // single-flight guard for Share; TryLock, never queue
}

// New creates an Engine around the given native share entry point. A nil
// sharer is valid and simply means the platform cannot share.
func New(sharer Sharer, converter Converter) *Engine {
	return &Engine{
		sharer:    sharer,
		converter: converter,
	}
}

// SetAttachmentsDisabled toggles the process-wide attachment kill switch.
func (e *Engine) SetAttachmentsDisabled(v bool) {
	e.mu.Lock()
	e.disableAttachments = v
	e.mu.Unlock()
}

// DetectCapability reports whether a native share entry point exists. Checked
// once per engine; entry points do not appear mid-session.
func (e *Engine) DetectCapability() bool {
	return e.sharer != nil
}

// State returns a snapshot of the observable share state.
func (e *Engine) State() types.ShareState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return types.ShareState{
		CanShare:        e.sharer != nil,
		ConvertedImages: slices.Clone(e.converted),
		LastError:       e.lastError,
	}
}

func (e *Engine) setError(msg string) {
	e.mu.Lock()
	e.lastError = msg
	e.mu.Unlock()
}

// Share prepares attachments for the request and executes the native share
// with the layered fallback. A second call while one share is in flight is
// ignored; the UI retries naturally when the user clicks again.
func (e *Engine) Share(ctx context.Context, req *types.ShareRequest) {
	if !e.inFlight.TryLock() {
		tool.DefaultLogger.Debugf("Share already in flight, ignoring request %q", req.Title)
		return
	}
	defer e.inFlight.Unlock()

	e.setError("")
	if e.sharer == nil {
		e.setError(ErrorUnsupported)
		return
	}
	attachments := e.PrepareAttachments(ctx, req)
	e.executeShare(ctx, req, attachments)
}

// PrepareAttachments resolves the request's images into attachments. URL
// inputs are converted concurrently and collected in input order with failed
// conversions dropped; preconverted base64 payloads skip acquisition. The
// converted cache is only committed when the request is still current.
func (e *Engine) PrepareAttachments(ctx context.Context, req *types.ShareRequest) []types.ImageAttachment {
	e.mu.Lock()
	attach := req.ShouldAttachImages() && !e.disableAttachments
	key := requestKey(req, attach)
	if key == e.requestKey && e.requestKey != "" {
		// same inputs as last time, reuse the converted cache
		cached := slices.Clone(e.converted)
		e.mu.Unlock()
		return toAttachments(cached)
	}
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	var converted []string
	switch {
	case !attach, len(req.ImageURLs) == 0 && len(req.PreconvertedImages) == 0:
		converted = []string{}
	case len(req.ImageURLs) > 0:
		converted = e.convertAll(ctx, req.ImageURLs)
	default:
		converted = slices.Clone(req.PreconvertedImages)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.generation {
		// a newer request superseded this one while converting
		tool.DefaultLogger.Debugf("Dropping stale conversion result (generation %d)", gen)
		return nil
	}
	e.requestKey = key
	e.converted = converted
	return toAttachments(converted)
}

// convertAll fans out one conversion per URL and collects successes in input
// order. A failed conversion yields an empty string and is filtered, never
// propagated: partial success is valid.
func (e *Engine) convertAll(ctx context.Context, urls []string) []string {
	results := make([]string, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			results[i] = e.converter.ToBase64(ctx, u)
		}(i, u)
	}
	wg.Wait()

	converted := make([]string, 0, len(urls))
	for _, r := range results {
		if r != "" {
			converted = append(converted, r)
		}
	}
	return converted
}

// executeShare runs the three-tier attempt. Each tier is only reached when
// the prior one is unsupported, not when it merely failed to execute.
func (e *Engine) executeShare(ctx context.Context, req *types.ShareRequest, attachments []types.ImageAttachment) {
	cq, hasQuery := e.sharer.(CapabilityQuerier)

	if len(attachments) > 0 && hasQuery {
		full := &types.SharePayload{Title: req.Title, URL: req.URL, Files: attachments}
		if cq.CanShare(full) {
			e.invoke(ctx, full)
			return
		}
		tool.DefaultLogger.Debugf("Platform rejected payload with %d files, retrying without attachments", len(attachments))
	}

	bare := &types.SharePayload{Title: req.Title, URL: req.URL}
	if hasQuery {
		if cq.CanShare(bare) {
			e.invoke(ctx, bare)
			return
		}
		e.setError(ErrorUnsupported)
		return
	}

	// no capability query exists at all: attempt the bare share and rely on
	// the platform to reject it itself
	e.invoke(ctx, bare)
}

// invoke performs the actual share call and maps its outcome into state.
func (e *Engine) invoke(ctx context.Context, payload *types.SharePayload) {
	err := e.sharer.Share(ctx, payload)
	switch {
	case err == nil:
		tool.DefaultLogger.Infof("Share completed: %q (%d files)", payload.Title, len(payload.Files))
	case errors.Is(err, ErrShareCancelled):
		// user dismissed the share sheet, resolve silently
		tool.DefaultLogger.Debugf("Share cancelled by user: %q", payload.Title)
	default:
		e.setError(fmt.Sprintf("share failed: %v", err))
	}
}

// requestKey reduces the request's defining inputs to a stable value so a new
// but equal list instance does not re-trigger acquisition.
func requestKey(req *types.ShareRequest, attach bool) string {
	h := fnv.New64a()
	h.Write([]byte(strconv.FormatBool(attach)))
	for _, u := range req.ImageURLs {
		h.Write([]byte{0})
		h.Write([]byte(u))
	}
	h.Write([]byte{1})
	for _, p := range req.PreconvertedImages {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

// toAttachments parses data URLs into attachments, dropping unparseable ones.
func toAttachments(dataURLs []string) []types.ImageAttachment {
	attachments := make([]types.ImageAttachment, 0, len(dataURLs))
	for _, d := range dataURLs {
		if a := fetch.Base64ToAttachment(d); a != nil {
			attachments = append(attachments, *a)
		}
	}
	return attachments
}
