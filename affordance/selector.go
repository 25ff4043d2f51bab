// Package affordance decides which share affordances the UI presents, as a
// pure function of device signals and capability flags.
package affordance

import (
	"github.com/opensite-ai/page-speed-social-share/types"
)

// Inputs are the signals the selection depends on. All of them are consumed
// as black-box values; nothing here talks to the network or the platform.
type Inputs struct {
	TouchDevice          bool
	Screen               types.ScreenClass
	NativeShareAvailable bool
	Platforms            types.PlatformConfig
	HasAtLeastOneImage   bool // gates Pinterest
}

// Select maps the inputs to the affordance set. Rules are evaluated in order,
// first match wins:
//   - touch device on a mobile/tablet screen with native share available and
//     enabled renders only the single native button;
//   - otherwise every enabled URL platform renders (Pinterest only with an
//     image), with a trailing native button appended on non-touch devices
//     when native share is available and enabled.
//
// An empty set is a valid result, not an error.
func Select(in Inputs) types.AffordanceSet {
	nativeEnabled := in.Platforms.Enabled(types.PlatformNative)
	nativeUsable := in.NativeShareAvailable && nativeEnabled

	if in.TouchDevice && (in.Screen == types.ScreenMobile || in.Screen == types.ScreenTablet) && nativeUsable {
		return types.AffordanceSet{
			ShowOnlyNativeButton: true,
			EnabledPlatforms:     []types.PlatformID{types.PlatformNative},
		}
	}

	enabled := make([]types.PlatformID, 0, len(types.URLPlatforms))
	for _, id := range types.URLPlatforms {
		if !in.Platforms.Enabled(id) {
			continue
		}
		if id == types.PlatformPinterest && !in.HasAtLeastOneImage {
			continue
		}
		enabled = append(enabled, id)
	}

	trailing := nativeUsable && !in.TouchDevice
	if trailing {
		enabled = append(enabled, types.PlatformNative)
	}

	return types.AffordanceSet{
		EnabledPlatforms:         enabled,
		ShowTrailingNativeButton: trailing,
	}
}
