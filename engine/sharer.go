package engine

import (
	"context"
	"errors"

	"github.com/opensite-ai/page-speed-social-share/types"
)

// ErrShareCancelled is the abort-style error a Sharer returns when the user
// dismisses the share sheet. Cancellation is not a failure: it resolves
// silently and never populates the error state.
var ErrShareCancelled = errors.New("share cancelled by user")

// Sharer is the platform native share entry point. Implementations may block
// until the user completes or dismisses the share surface.
type Sharer interface {
	Share(ctx context.Context, payload *types.SharePayload) error
}

// CapabilityQuerier is optionally implemented by a Sharer that can report,
// before invocation, whether a given payload shape is supported. The query is
// always issued with the final payload shape, files included.
type CapabilityQuerier interface {
	CanShare(payload *types.SharePayload) bool
}

// Converter turns a remote image URL into a base64 data URL, or an empty
// string when the image cannot be acquired. Implemented by fetch.Pipeline.
type Converter interface {
	ToBase64(ctx context.Context, rawURL string) string
}
