package tool

import (
	"flag"

	"github.com/opensite-ai/page-speed-social-share/types"
)

// SetFlags parses CLI flags and returns the override config.
func SetFlags() types.Config {
	var cfg types.Config
	flag.StringVar(&cfg.Log, "log", "", "log mode: dev|prod|none")
	flag.StringVar(&cfg.UseConfigPath, "useConfigPath", "", "override config file path")
	flag.IntVar(&cfg.UsePort, "usePort", 0, "override listen port")
	flag.StringVar(&cfg.UseProxyEndpoint, "useProxyEndpoint", "", "override image proxy endpoint URL")
	flag.StringVar(&cfg.UseProxyAllowHost, "useProxyAllowHost", "", "append an allow-listed host substring for proxied image fetches")
	flag.StringVar(&cfg.UseProxyAuthToken, "useProxyAuthToken", "", "override proxy credential token")
	flag.StringVar(&cfg.UseOrigin, "useOrigin", "", "override the origin sent as referrer on proxied fetches")
	flag.BoolVar(&cfg.SkipAttachImages, "skipAttachImages", false, "never attach images to share payloads")
	flag.BoolVar(&cfg.SkipNotify, "skipNotify", false, "skip unix socket notifications")
	flag.Parse()
	return cfg
}
