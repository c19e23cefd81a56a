// Package httpxml is the HTTP transport of the client: one XML POST per
// call, decoded into the expected response type.
package httpxml

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lb-conn/ekaer/application/ports"
	"github.com/lb-conn/ekaer/domain"
	"github.com/lb-conn/ekaer/infrastructure/xmlcodec"
)

const (
	ContentType = "text/xml; encoding='utf-8'"

	defaultTimeout       = 60 * time.Second
	defaultMaxBodyBytes  = 32 << 20
	defaultIdleConnLimit = 90 * time.Second
)

// Transport posts XML requests below a fixed base address. It holds no
// per-request state and is safe for concurrent use.
type Transport struct {
	client       *http.Client
	baseURL      *url.URL
	codec        ports.Codec
	logger       *zap.Logger
	maxBodyBytes int64

	timeout      time.Duration
	rootCAs      *x509.CertPool
	certificates []tls.Certificate
}

var _ ports.Transport = (*Transport)(nil)

type Option func(*Transport)

// WithHTTPClient uses client as is; TLS and timeout options are then ignored.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		t.client = client
	}
}

func WithCodec(codec ports.Codec) Option {
	return func(t *Transport) {
		t.codec = codec
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithTimeout bounds a whole round trip.
func WithTimeout(timeout time.Duration) Option {
	return func(t *Transport) {
		t.timeout = timeout
	}
}

// WithRootCAs replaces the system trust store.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(t *Transport) {
		t.rootCAs = pool
	}
}

// WithClientCertificate presents cert during the TLS handshake.
func WithClientCertificate(cert tls.Certificate) Option {
	return func(t *Transport) {
		t.certificates = append(t.certificates, cert)
	}
}

func WithMaxBodyBytes(limit int64) Option {
	return func(t *Transport) {
		t.maxBodyBytes = limit
	}
}

// New creates a Transport for the given base address.
func New(baseURL *url.URL, opts ...Option) (*Transport, error) {
	if baseURL == nil || !baseURL.IsAbs() {
		return nil, &domain.ConfigurationError{Field: "baseAddress", Message: "base url must be absolute"}
	}
	t := &Transport{
		baseURL:      baseURL,
		codec:        xmlcodec.New(),
		logger:       zap.NewNop(),
		maxBodyBytes: defaultMaxBodyBytes,
		timeout:      defaultTimeout,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.client == nil {
		t.client = &http.Client{
			Timeout: t.timeout,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					MinVersion:   tls.VersionTLS12,
					RootCAs:      t.rootCAs,
					Certificates: t.certificates,
				},
				IdleConnTimeout:     defaultIdleConnLimit,
				MaxIdleConnsPerHost: 10,
			},
		}
	}
	return t, nil
}

// Endpoint resolves destination against the base address.
func (t *Transport) Endpoint(destination string) (string, error) {
	ref, err := url.Parse(destination)
	if err != nil {
		return "", fmt.Errorf("invalid destination %q: %w", destination, err)
	}
	if ref.IsAbs() {
		return "", fmt.Errorf("destination %q must be relative", destination)
	}
	return t.baseURL.ResolveReference(ref).String(), nil
}

// Send performs exactly one POST of the encoded request. A 200 body is
// decoded into response; any other outcome is a *domain.TransportError.
func (t *Transport) Send(ctx context.Context, destination string, request, response any) error {
	endpoint, err := t.Endpoint(destination)
	if err != nil {
		return &domain.TransportError{Err: err}
	}
	body, err := t.codec.Encode(request)
	if err != nil {
		return &domain.TransportError{Err: err}
	}
	t.dump("request", endpoint, body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &domain.TransportError{Err: fmt.Errorf("failed to create request: %w", err)}
	}
	req.Header.Set("Content-Type", ContentType)
	req.Header.Set("Accept", "text/xml")

	startedAt := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.logger.Warn("request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return &domain.TransportError{Err: fmt.Errorf("failed to send request: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBodyBytes+1))
	if err != nil {
		return &domain.TransportError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to read response: %w", err)}
	}
	if int64(len(payload)) > t.maxBodyBytes {
		return &domain.TransportError{
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("response body exceeds limit of %d bytes", t.maxBodyBytes),
		}
	}
	t.logger.Debug("response received",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(payload)),
		zap.Duration("elapsed", time.Since(startedAt)))

	if resp.StatusCode != http.StatusOK {
		transportErr := &domain.TransportError{StatusCode: resp.StatusCode, Body: string(payload)}
		if result, ok := xmlcodec.ExtractResult(payload); ok {
			transportErr.Result = &result
		}
		t.logger.Warn("unexpected status code",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode))
		return transportErr
	}

	t.dump("response", endpoint, payload)
	if err := t.codec.Decode(payload, response); err != nil {
		return &domain.TransportError{StatusCode: resp.StatusCode, Body: string(payload), Err: err}
	}
	return nil
}

// dump logs a redacted, canonical copy of body at debug level.
func (t *Transport) dump(kind, endpoint string, body []byte) {
	ce := t.logger.Check(zapcore.DebugLevel, "xml "+kind)
	if ce == nil {
		return
	}
	redacted, err := xmlcodec.Redact(body)
	if err != nil {
		ce.Write(zap.String("endpoint", endpoint), zap.NamedError("dump_error", err))
		return
	}
	ce.Write(zap.String("endpoint", endpoint), zap.ByteString("body", redacted))
}

