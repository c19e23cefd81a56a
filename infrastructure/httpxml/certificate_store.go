package httpxml

import (
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"software.sslmate.com/src/go-pkcs12"
)

// CertificateStore collects trusted root certificates for the service
// endpoint, keyed by issuer and serial number.
type CertificateStore struct {
	certificates map[string]*x509.Certificate
	logger       *zap.Logger
}

// NewCertificateStore creates an empty store.
func NewCertificateStore(logger *zap.Logger) *CertificateStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CertificateStore{
		certificates: make(map[string]*x509.Certificate),
		logger:       logger,
	}
}

// AddCertificate adds cert, replacing any certificate with the same issuer and serial.
func (cs *CertificateStore) AddCertificate(cert *x509.Certificate) {
	cs.certificates[cs.makeCertificateKey(cert.Issuer.String(), cert.SerialNumber.String())] = cert
}

func (cs *CertificateStore) Len() int {
	return len(cs.certificates)
}

func (cs *CertificateStore) makeCertificateKey(issuer, serial string) string {
	return fmt.Sprintf("%s:%s", issuer, serial)
}

// LoadDirectory adds every certificate of every .pem file in dir.
func (cs *CertificateStore) LoadDirectory(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return fmt.Errorf("certificates directory not found: %s", dir)
	}
	pemFiles, err := filepath.Glob(filepath.Join(dir, "*.pem"))
	if err != nil {
		return fmt.Errorf("failed to list certificate files in %s: %w", dir, err)
	}
	if len(pemFiles) == 0 {
		return fmt.Errorf("no .pem certificate files found in %s", dir)
	}
	for _, file := range pemFiles {
		certPEM, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read certificate %s: %w", file, err)
		}
		if err := cs.AddPEM(certPEM); err != nil {
			return fmt.Errorf("failed to load certificate %s: %w", file, err)
		}
		cs.logger.Debug("loaded certificate file", zap.String("file", filepath.Base(file)))
	}
	return nil
}

// AddPEM adds every CERTIFICATE block of certPEM.
func (cs *CertificateStore) AddPEM(certPEM []byte) error {
	added := 0
	for len(certPEM) > 0 {
		var block *pem.Block
		block, certPEM = pem.Decode(certPEM)
		if block == nil {
			break
		}
		if block.Type != "CERTIFICATE" {
			continue
		}
		cert, err := x509.ParseCertificate(block.Bytes)
		if err != nil {
			return fmt.Errorf("failed to parse certificate: %w", err)
		}
		cs.AddCertificate(cert)
		added++
		cs.logger.Debug("added certificate",
			zap.String("subject", cert.Subject.CommonName),
			zap.String("serial", cert.SerialNumber.String()))
	}
	if added == 0 {
		return errors.New("no certificate found in PEM data")
	}
	return nil
}

// Pool returns the store as a certificate pool for TLS verification.
func (cs *CertificateStore) Pool() *x509.CertPool {
	pool := x509.NewCertPool()
	for _, cert := range cs.certificates {
		pool.AddCert(cert)
	}
	return pool
}

// LoadClientCertificate decodes a PKCS#12 bundle into a TLS client certificate.
func LoadClientCertificate(p12 []byte, password string) (tls.Certificate, error) {
	priv, cert, err := pkcs12.Decode(p12, password)
	if err != nil {
		return tls.Certificate{}, fmt.Errorf("failed to decode PKCS#12: %w", err)
	}
	return tls.Certificate{
		Certificate: [][]byte{cert.Raw},
		PrivateKey:  priv,
		Leaf:        cert,
	}, nil
}
