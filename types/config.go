package types

// AppConfig represents the application configuration loaded from config file
type AppConfig struct {
	Port            int             `yaml:"port" json:"port"`
	Protocol        string          `yaml:"protocol" json:"protocol"`                                 // http or https
	ProxyEndpoint   string          `yaml:"proxyEndpoint" json:"proxyEndpoint"`                       // fixed endpoint the acquisition pipeline POSTs {url} to
	ProxyAllowHosts []string        `yaml:"proxyAllowHosts,omitempty" json:"proxyAllowHosts"`         // host substrings routed through the proxy
	ProxyAuthToken  string          `yaml:"proxyAuthToken,omitempty" json:"proxyAuthToken,omitempty"` // credential sent with proxied fetches
	ProxyRateRPS    int             `yaml:"proxyRateRPS" json:"proxyRateRPS"`                         // proxy-image endpoint rate limit, requests per second
	Origin          string          `yaml:"origin" json:"origin"`                                     // referrer sent with proxied fetches, origin only
	AttachImages    bool            `yaml:"attachImages" json:"attachImages"`
	CacheTTLSeconds int             `yaml:"cacheTTLSeconds" json:"cacheTTLSeconds"`         // converted-image cache TTL
	Platforms       map[string]bool `yaml:"platforms,omitempty" json:"platforms,omitempty"` // per-platform enable overrides
	CertPEM         string          `yaml:"certPEM,omitempty" json:"certPEM,omitempty"`     // self-signed certificate for https mode
	KeyPEM          string          `yaml:"keyPEM,omitempty" json:"-"`                      // private key, never served over the API
}

// ConfigPatchRequest is the JSON body for PATCH /api/self/v1/config. All
// fields are optional; only fields present in the body are merged.
type ConfigPatchRequest struct {
	Port            *int            `json:"port"`
	ProxyEndpoint   *string         `json:"proxyEndpoint"`
	ProxyAllowHosts []string        `json:"proxyAllowHosts"`
	ProxyAuthToken  *string         `json:"proxyAuthToken"`
	ProxyRateRPS    *int            `json:"proxyRateRPS"`
	Origin          *string         `json:"origin"`
	AttachImages    *bool           `json:"attachImages"`
	CacheTTLSeconds *int            `json:"cacheTTLSeconds"`
	Platforms       map[string]bool `json:"platforms"`
}

// Config holds runtime overrides from CLI flags
type Config struct {
	Log               string
	UseConfigPath     string
	UsePort           int
	UseProxyEndpoint  string
	UseProxyAllowHost string // extra allow-listed host substring, appended to config
	UseProxyAuthToken string
	UseOrigin         string
	SkipAttachImages  bool // if true, never attach images regardless of request
	SkipNotify        bool // if true, skip unix socket notify
}
