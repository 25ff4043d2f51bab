package tool

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opensite-ai/page-speed-social-share/types"
)

var (
	ConfigPath    = "config.yaml" // be aware that it can be changed, default to ./config.yaml
	CurrentConfig types.AppConfig
)

func defaultConfig() types.AppConfig {
	return types.AppConfig{
		Port:            53330,
		Protocol:        "http",
		ProxyEndpoint:   "http://127.0.0.1:53330/api/share/v1/proxy-image",
		ProxyAllowHosts: []string{"storage.googleapis.com"}, // the bucket host routed through the proxy
		ProxyRateRPS:    10,
		Origin:          "http://127.0.0.1:53330",
		AttachImages:    true,
		CacheTTLSeconds: 300,
	}
}

// LoadConfig reads the yaml config, creating it with defaults when missing.
func LoadConfig(path string) (types.AppConfig, error) {
	if path == "" {
		path = ConfigPath
	}
	ConfigPath = path

	cfg := defaultConfig()

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if writeErr := writeConfig(path, cfg); writeErr != nil {
				return cfg, fmt.Errorf("config file not found, and failed to generate default config: %v", writeErr)
			}
			DefaultLogger.Infof("Created new config file at %s", path)
			CurrentConfig = cfg
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if info.IsDir() {
		return cfg, fmt.Errorf("config file path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %v", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %v", err)
	}

	if cfg.Port <= 0 {
		cfg.Port = defaultConfig().Port
	}
	if cfg.Protocol != "https" {
		cfg.Protocol = "http"
	}
	if cfg.ProxyRateRPS <= 0 {
		cfg.ProxyRateRPS = defaultConfig().ProxyRateRPS
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = defaultConfig().CacheTTLSeconds
	}

	CurrentConfig = cfg
	return cfg, nil
}

func writeConfig(path string, cfg types.AppConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func GetCurrentConfig() *types.AppConfig {
	return &CurrentConfig
}

// PersistAppConfig updates in-memory AppConfig and writes it back to the config file.
func PersistAppConfig(cfg *types.AppConfig) {
	if cfg == nil {
		return
	}
	CurrentConfig = *cfg
	if err := writeConfig(ConfigPath, CurrentConfig); err != nil {
		DefaultLogger.Warnf("Failed to persist config: %v", err)
	}
}
