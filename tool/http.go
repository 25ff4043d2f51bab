package tool

import (
	"crypto/tls"
	"net/http"
	"time"
)

var (
	DefaultTimeout    = 30 * time.Second
	ProxyHttpClient   *http.Client
	DirectHttpClient  *http.Client
	DefaultHttpClient *http.Client
)

func init() {
	ProxyHttpClient = NewHTTPClient()
	DirectHttpClient = NewHTTPClient()
	// the last-resort fallback fetch uses a default client with no special options
	DefaultHttpClient = &http.Client{Timeout: DefaultTimeout}
}

// NewHTTPClient creates an HTTP client, skipping self-signed certificate verification in HTTPS mode.
func NewHTTPClient() *http.Client {
	transport := &http.Transport{
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: true},
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     300 * time.Millisecond,
		DisableKeepAlives:   false,
	}
	return &http.Client{
		Timeout:   DefaultTimeout,
		Transport: transport,
	}
}

func GetProxyHttpClient() *http.Client {
	return ProxyHttpClient
}

func GetDirectHttpClient() *http.Client {
	return DirectHttpClient
}

func GetDefaultHttpClient() *http.Client {
	return DefaultHttpClient
}
