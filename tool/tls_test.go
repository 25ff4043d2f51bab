package tool

import (
	"crypto/tls"
	"encoding/pem"
	"strings"
	"testing"

	"github.com/opensite-ai/page-speed-social-share/types"
)

func TestGetOrCreateTLSCertGeneratesAndStores(t *testing.T) {
	cfg := &types.AppConfig{}

	certPEM, keyPEM, err := GetOrCreateTLSCert(cfg)
	if err != nil {
		t.Fatalf("Failed to get certificate: %v", err)
	}
	if cfg.CertPEM == "" || cfg.KeyPEM == "" {
		t.Error("Expected generated PEM to be written back into config")
	}
	if !strings.Contains(string(certPEM), "BEGIN CERTIFICATE") {
		t.Error("Expected PEM-encoded certificate")
	}

	// the pair must be loadable as a server key pair
	if _, err := tls.X509KeyPair(certPEM, keyPEM); err != nil {
		t.Errorf("Generated pair is not loadable: %v", err)
	}
}

func TestGetOrCreateTLSCertReusesStoredPair(t *testing.T) {
	cfg := &types.AppConfig{}
	first, _, err := GetOrCreateTLSCert(cfg)
	if err != nil {
		t.Fatalf("Failed to get certificate: %v", err)
	}

	second, _, err := GetOrCreateTLSCert(cfg)
	if err != nil {
		t.Fatalf("Failed to get certificate again: %v", err)
	}
	if string(first) != string(second) {
		t.Error("Expected the stored certificate to be reused, not regenerated")
	}
}

func TestGetOrCreateTLSCertRegeneratesInvalidPair(t *testing.T) {
	garbage := string(pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte("junk")}))
	cfg := &types.AppConfig{CertPEM: garbage, KeyPEM: garbage}

	certPEM, keyPEM, err := GetOrCreateTLSCert(cfg)
	if err != nil {
		t.Fatalf("Failed to regenerate certificate: %v", err)
	}
	if cfg.CertPEM == garbage {
		t.Error("Expected the invalid certificate to be replaced")
	}
	if _, err := tls.X509KeyPair(certPEM, keyPEM); err != nil {
		t.Errorf("Regenerated pair is not loadable: %v", err)
	}
}
