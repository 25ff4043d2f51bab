package types

import "strings"

// ScreenClass is the coarse screen-size bucket reported by the frontend.
type ScreenClass string

const (
	ScreenMobile  ScreenClass = "mobile"
	ScreenTablet  ScreenClass = "tablet"
	ScreenDesktop ScreenClass = "desktop"
	ScreenOther   ScreenClass = "other"
)

// ParseScreenClass maps a query/string value to a ScreenClass, defaulting to other.
func ParseScreenClass(s string) ScreenClass {
	switch ScreenClass(strings.ToLower(strings.TrimSpace(s))) {
	case ScreenMobile:
		return ScreenMobile
	case ScreenTablet:
		return ScreenTablet
	case ScreenDesktop:
		return ScreenDesktop
	default:
		return ScreenOther
	}
}

// PlatformID identifies one share affordance.
type PlatformID string

const (
	PlatformX         PlatformID = "x"
	PlatformFacebook  PlatformID = "facebook"
	PlatformPinterest PlatformID = "pinterest"
	PlatformLinkedIn  PlatformID = "linkedin"
	PlatformEmail     PlatformID = "email"
	PlatformNative    PlatformID = "native"
)

// URLPlatforms is the fixed render order for URL-based share buttons.
var URLPlatforms = []PlatformID{PlatformX, PlatformFacebook, PlatformPinterest, PlatformLinkedIn, PlatformEmail}

// PlatformConfig holds per-platform enable overrides. Missing keys fall back
// to the defaults (email off, everything else on).
type PlatformConfig map[PlatformID]bool

// DefaultPlatformConfig returns the default enable flags.
func DefaultPlatformConfig() PlatformConfig {
	return PlatformConfig{
		PlatformX:         true,
		PlatformFacebook:  true,
		PlatformPinterest: true,
		PlatformLinkedIn:  true,
		PlatformEmail:     false,
		PlatformNative:    true,
	}
}

// Enabled resolves a platform flag with defaults applied for missing keys.
func (c PlatformConfig) Enabled(id PlatformID) bool {
	if c != nil {
		if v, ok := c[id]; ok {
			return v
		}
	}
	v, ok := DefaultPlatformConfig()[id]
	return ok && v
}

// DeviceSignals are the black-box capability inputs consumed from the frontend.
type DeviceSignals struct {
	TouchDevice bool        `json:"touchDevice"`
	Screen      ScreenClass `json:"screen"`
}

// AffordanceSet is the derived, non-persisted answer: which share affordances
// the UI should render. Recomputed on every query, empty set is valid.
type AffordanceSet struct {
	ShowOnlyNativeButton     bool         `json:"showOnlyNativeButton"`
	EnabledPlatforms         []PlatformID `json:"enabledPlatforms"`
	ShowTrailingNativeButton bool         `json:"showTrailingNativeButton"`
}
