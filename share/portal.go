// Package share holds the process-wide portal registry: shared surfaces
// (like the notify hub) created on first need and torn down only when the
// last owner lets go.
package share

import (
	"sync"

	"github.com/opensite-ai/page-speed-social-share/tool"
)

// PortalNotifyHub is the fixed identifier of the notify hub portal.
const PortalNotifyHub = "notify-hub"

type portalEntry struct {
	value  any
	owners int
}

var (
	portalMu sync.Mutex
	portals  = make(map[string]*portalEntry)
)

// AcquirePortal returns the portal registered under key, creating it with
// create on first acquisition, and increments the owner count. Teardown is
// driven by the explicit owner count, never by ad hoc existence checks.
func AcquirePortal(key string, create func() any) any {
	portalMu.Lock()
	defer portalMu.Unlock()
	entry, ok := portals[key]
	if !ok {
		entry = &portalEntry{value: create()}
		portals[key] = entry
		tool.DefaultLogger.Debugf("Portal %q created", key)
	}
	entry.owners++
	return entry.value
}

// ReleasePortal decrements the owner count for key. When the last owner
// releases, teardown runs (if non-nil) and the portal is removed. Releasing
// an unknown key is a no-op.
func ReleasePortal(key string, teardown func(value any)) {
	portalMu.Lock()
	defer portalMu.Unlock()
	entry, ok := portals[key]
	if !ok {
		return
	}
	entry.owners--
	if entry.owners > 0 {
		return
	}
	delete(portals, key)
	tool.DefaultLogger.Debugf("Portal %q torn down", key)
	if teardown != nil {
		teardown(entry.value)
	}
}

// PortalOwners reports the current owner count for key.
func PortalOwners(key string) int {
	portalMu.Lock()
	defer portalMu.Unlock()
	if entry, ok := portals[key]; ok {
		return entry.owners
	}
	return 0
}
