package types

// Notification represents a notification message structure
type Notification struct {
	Type       string         `json:"type,omitempty"`    // Notification type, e.g. "share_requested", "share_completed", etc.
	Title      string         `json:"title,omitempty"`   // Notification title
	Message    string         `json:"message,omitempty"` // Notification message/content
	Data       map[string]any `json:"data,omitempty"`    // Additional data fields
	IsTextOnly bool           `json:"isTextOnly,omitempty"`
}

// Notification type constants for the share lifecycle.
const (
	NotifyTypeShareRequested = "share_requested"
	NotifyTypeShareCompleted = "share_completed"
	NotifyTypeShareFailed    = "share_failed"
	// NotifyTypeShareSheet is the share-sheet push the hub-backed sharer sends
	// to the attached UI client. The client renders the OS share surface.
	NotifyTypeShareSheet = "share_sheet"
)
