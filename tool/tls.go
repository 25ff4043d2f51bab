package tool

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"time"

	"github.com/opensite-ai/page-speed-social-share/types"
)

const certValidity = 365 * 24 * time.Hour

// GetOrCreateTLSCert returns the PEM-encoded self-signed certificate and key
// for https mode. An existing, still-valid pair stored in config is reused;
// otherwise a fresh one is generated and written back into cfg so it survives
// restarts via the config file.
func GetOrCreateTLSCert(cfg *types.AppConfig) (certPEM, keyPEM []byte, err error) {
	if cfg.CertPEM != "" && cfg.KeyPEM != "" {
		if err := validateCertPEM(cfg.CertPEM); err == nil {
			return []byte(cfg.CertPEM), []byte(cfg.KeyPEM), nil
		} else {
			DefaultLogger.Warnf("Stored certificate is invalid or expired: %v, regenerating", err)
		}
	}

	certDER, keyDER, err := generateSelfSignedCert()
	if err != nil {
		return nil, nil, err
	}
	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: keyDER})
	cfg.CertPEM = string(certPEM)
	cfg.KeyPEM = string(keyPEM)
	DefaultLogger.Infof("Generated self-signed TLS certificate")
	return certPEM, keyPEM, nil
}

// validateCertPEM parses the stored certificate and rejects expired ones.
func validateCertPEM(certPEMStr string) error {
	block, _ := pem.Decode([]byte(certPEMStr))
	if block == nil {
		return fmt.Errorf("failed to decode certificate PEM")
	}
	cert, err := x509.ParseCertificate(block.Bytes)
	if err != nil {
		return fmt.Errorf("failed to parse certificate: %v", err)
	}
	if time.Now().After(cert.NotAfter) {
		return fmt.Errorf("certificate has expired")
	}
	return nil
}

// generateSelfSignedCert generates a new self-signed server certificate with
// an ECDSA P-256 key.
func generateSelfSignedCert() (certDER, keyDER []byte, err error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate ECDSA private key: %v", err)
	}

	tmpl := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName:   "social-share-localCert",
			Organization: []string{"social-share-localCert"},
		},
		NotBefore:   time.Now(),
		NotAfter:    time.Now().Add(certValidity),
		KeyUsage:    x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage: []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
	}

	certDER, err = x509.CreateCertificate(rand.Reader, &tmpl, &tmpl, &key.PublicKey, key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create certificate: %v", err)
	}
	keyDER, err = x509.MarshalECPrivateKey(key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal ECDSA private key: %v", err)
	}
	return certDER, keyDER, nil
}
