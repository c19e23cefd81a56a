package httpxml

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"software.sslmate.com/src/go-pkcs12"
)

func selfSigned(t *testing.T, commonName string, serial int64) (*ecdsa.PrivateKey, *x509.Certificate) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber:          big.NewInt(serial),
		Subject:               pkix.Name{CommonName: commonName},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return key, cert
}

func encodePEM(cert *x509.Certificate) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: cert.Raw})
}

func TestCertificateStore_AddPEM(t *testing.T) {
	_, first := selfSigned(t, "NAV Root", 1)
	_, second := selfSigned(t, "NAV Intermediate", 2)

	store := NewCertificateStore(nil)
	bundle := append(encodePEM(first), encodePEM(second)...)
	require.NoError(t, store.AddPEM(bundle))
	assert.Equal(t, 2, store.Len())

	// Same issuer and serial replaces the entry.
	require.NoError(t, store.AddPEM(encodePEM(first)))
	assert.Equal(t, 2, store.Len())

	assert.Error(t, store.AddPEM([]byte("no pem here")))
	keyOnly := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: []byte{1, 2, 3}})
	assert.Error(t, store.AddPEM(keyOnly))
}

func TestCertificateStore_LoadDirectory(t *testing.T) {
	dir := t.TempDir()
	_, root := selfSigned(t, "NAV Root", 10)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "root.pem"), encodePEM(root), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	store := NewCertificateStore(nil)
	require.NoError(t, store.LoadDirectory(dir))
	assert.Equal(t, 1, store.Len())

	_, err := root.Verify(x509.VerifyOptions{
		Roots:     store.Pool(),
		KeyUsages: []x509.ExtKeyUsage{x509.ExtKeyUsageAny},
	})
	assert.NoError(t, err)
}

func TestCertificateStore_LoadDirectoryErrors(t *testing.T) {
	store := NewCertificateStore(nil)
	assert.Error(t, store.LoadDirectory(filepath.Join(t.TempDir(), "missing")))
	assert.Error(t, store.LoadDirectory(t.TempDir()))

	broken := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(broken, "broken.pem"), []byte("garbage"), 0o600))
	assert.Error(t, store.LoadDirectory(broken))
}

func TestLoadClientCertificate(t *testing.T) {
	key, cert := selfSigned(t, "ekaer client", 42)
	p12, err := pkcs12.Modern.Encode(key, cert, nil, "changeit")
	require.NoError(t, err)

	tlsCert, err := LoadClientCertificate(p12, "changeit")
	require.NoError(t, err)
	require.Len(t, tlsCert.Certificate, 1)
	assert.Equal(t, cert.Raw, tlsCert.Certificate[0])
	assert.Equal(t, "ekaer client", tlsCert.Leaf.Subject.CommonName)
	assert.NotNil(t, tlsCert.PrivateKey)

	_, err = LoadClientCertificate(p12, "wrong")
	assert.Error(t, err)
}
