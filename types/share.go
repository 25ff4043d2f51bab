package types

// ShareRequest is the input for one share invocation. It is treated as
// immutable: when the caller's parameters change, a new request is issued.
type ShareRequest struct {
	Title              string   `json:"title" binding:"required"`
	URL                string   `json:"url,omitempty"`
	ImageURLs          []string `json:"imageUrls,omitempty"`
	PreconvertedImages []string `json:"preconvertedImages,omitempty"` // base64 data URLs, used only when ImageURLs is empty
	AttachImages       *bool    `json:"attachImages,omitempty"`       // nil means true
}

// ShouldAttachImages reports whether image attachments are wanted (default true).
func (r *ShareRequest) ShouldAttachImages() bool {
	return r.AttachImages == nil || *r.AttachImages
}

// ImageAttachment is one acquired image ready for sharing. Created during
// conversion, discarded after the share completes or fails, never persisted.
type ImageAttachment struct {
	Data     []byte `json:"-"`
	MimeType string `json:"mimeType"`
	FileName string `json:"fileName"`
}

// SharePayload is what actually gets handed to the native share entry point.
type SharePayload struct {
	Title string            `json:"title"`
	URL   string            `json:"url,omitempty"`
	Files []ImageAttachment `json:"files,omitempty"`
}

// HasFiles reports whether the payload carries attachments.
func (p *SharePayload) HasFiles() bool {
	return p != nil && len(p.Files) > 0
}

// ShareState is the per-engine state a consuming UI observes instead of
// exceptions: failures land in LastError, cancellation does not.
type ShareState struct {
	CanShare        bool     `json:"canShare"`
	ConvertedImages []string `json:"convertedImages,omitempty"`
	LastError       string   `json:"error,omitempty"`
}
