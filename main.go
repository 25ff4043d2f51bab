package main

import (
	"github.com/opensite-ai/page-speed-social-share/api"
	"github.com/opensite-ai/page-speed-social-share/notify"
	"github.com/opensite-ai/page-speed-social-share/tool"
)

func main() {
	cfg := tool.SetFlags()
	appCfg, err := tool.LoadConfig(cfg.UseConfigPath)
	if err != nil {
		tool.DefaultLogger.Fatalf("%v", err)
	}

	if cfg.UsePort > 0 {
		appCfg.Port = cfg.UsePort
	}
	if cfg.UseProxyEndpoint != "" {
		appCfg.ProxyEndpoint = cfg.UseProxyEndpoint
	}
	if cfg.UseProxyAllowHost != "" {
		appCfg.ProxyAllowHosts = append(appCfg.ProxyAllowHosts, cfg.UseProxyAllowHost)
	}
	if cfg.UseProxyAuthToken != "" {
		appCfg.ProxyAuthToken = cfg.UseProxyAuthToken
	}
	if cfg.UseOrigin != "" {
		appCfg.Origin = cfg.UseOrigin
	}
	if cfg.SkipAttachImages {
		appCfg.AttachImages = false
	}
	if cfg.SkipNotify {
		notify.SetUseNotify(false)
	}
	tool.CurrentConfig = appCfg

	tool.InitLogger()
	tool.SetLogMode(cfg.Log)

	server := api.NewServer(&appCfg)
	defer server.Close()
	if err := server.Start(); err != nil {
		tool.DefaultLogger.Fatalf("API server startup failed: %v", err)
	}
}
