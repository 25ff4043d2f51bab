package controllers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/opensite-ai/page-speed-social-share/tool"
)

const probeTimeout = 2 * time.Second

// HandleProxyHealth probes every allow-listed proxy host and reports which
// upstreams are reachable. Probes run concurrently so the slowest host bounds
// the response time, not the sum.
func HandleProxyHealth(c *gin.Context) {
	hosts := tool.GetCurrentConfig().ProxyAllowHosts
	results := make(map[string]bool, len(hosts))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, host := range hosts {
		wg.Add(1)
		go func(host string) {
			defer wg.Done()
			reachable := tool.QuickICMPProbe(host, probeTimeout)
			mu.Lock()
			results[host] = reachable
			mu.Unlock()
		}(host)
	}
	wg.Wait()

	c.JSON(http.StatusOK, tool.FastReturnSuccessWithData(gin.H{
		"hosts": results,
	}))
}
