package tool

import (
	"time"

	probing "github.com/prometheus-community/pro-bing"
)

// QuickICMPProbe pings host once with the given timeout and reports whether a
// reply came back. Used by the proxy-health endpoint to check allow-listed
// upstreams; unprivileged UDP ping so no raw socket capability is needed.
func QuickICMPProbe(host string, timeout time.Duration) bool {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		return false
	}
	pinger.Count = 1
	pinger.Timeout = timeout
	pinger.SetPrivileged(false)
	if err := pinger.Run(); err != nil {
		DefaultLogger.Debugf("ICMP probe failed for %s: %v", host, err)
		return false
	}
	return pinger.Statistics().PacketsRecv > 0
}
