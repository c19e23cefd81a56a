package ekaer

import (
	"net/url"
	"strings"

	"golang.org/x/text/encoding"

	"github.com/lb-conn/ekaer/domain"
	"github.com/lb-conn/ekaer/domain/schema"
	"github.com/lb-conn/ekaer/domain/validation"
)

// Credentials is the immutable identity of a client. The password is only
// kept as its SHA-512 hash, computed once here.
type Credentials struct {
	username     string
	passwordHash string
	vatNumber    string
	secretKey    string
	baseURL      *url.URL
	encoding     encoding.Encoding
}

type credentialOptions struct {
	baseAddress string
	encoding    encoding.Encoding
}

// CredentialOption customizes NewCredentials.
type CredentialOption func(*credentialOptions)

// WithBaseAddress sets the service base address. Defaults to schema.TestEndpoint.
func WithBaseAddress(address string) CredentialOption {
	return func(o *credentialOptions) {
		o.baseAddress = address
	}
}

// WithTextEncoding sets the code page used for hashing.
func WithTextEncoding(enc encoding.Encoding) CredentialOption {
	return func(o *credentialOptions) {
		o.encoding = enc
	}
}

// NewCredentials validates the client identity and precomputes the
// password hash. Every failure is a *domain.ConfigurationError.
func NewCredentials(username, password, vatNumber, secretKey string, opts ...CredentialOption) (*Credentials, error) {
	o := credentialOptions{
		baseAddress: schema.TestEndpoint,
		encoding:    DefaultTextEncoding,
	}
	for _, opt := range opts {
		opt(&o)
	}

	required := []struct{ field, value string }{
		{"username", username},
		{"password", password},
		{"vatNumber", vatNumber},
		{"baseAddress", o.baseAddress},
		{"secretKey", secretKey},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, &domain.ConfigurationError{Field: r.field, Message: "must not be empty"}
		}
	}
	if !validation.IsValidVatNumber(vatNumber) {
		return nil, &domain.ConfigurationError{Field: "vatNumber", Message: "VAT number is not valid"}
	}
	baseURL, err := parseBaseAddress(o.baseAddress)
	if err != nil {
		return nil, err
	}
	if o.encoding == nil {
		return nil, &domain.ConfigurationError{Field: "encoding", Message: "text encoding is required"}
	}
	if !IsSingleByte(o.encoding) {
		return nil, &domain.ConfigurationError{Field: "encoding", Message: "text encoding must be a single-byte code page"}
	}
	// The secret must be representable too, otherwise every signature fails later.
	if _, err := TextToBytes(secretKey, o.encoding); err != nil {
		return nil, &domain.ConfigurationError{Field: "secretKey", Message: err.Error()}
	}
	passwordHash, err := Digest(password, o.encoding)
	if err != nil {
		return nil, &domain.ConfigurationError{Field: "password", Message: err.Error()}
	}

	return &Credentials{
		username:     username,
		passwordHash: passwordHash,
		vatNumber:    vatNumber,
		secretKey:    secretKey,
		baseURL:      baseURL,
		encoding:     o.encoding,
	}, nil
}

func parseBaseAddress(address string) (*url.URL, error) {
	u, err := url.Parse(address)
	if err != nil {
		return nil, &domain.ConfigurationError{Field: "baseAddress", Message: "invalid base url: " + err.Error()}
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, &domain.ConfigurationError{Field: "baseAddress", Message: "base url must be absolute"}
	}
	// Destinations are appended to the base path.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

func (c *Credentials) Username() string {
	return c.username
}

// PasswordHash returns the upper-case hex SHA-512 of the password.
func (c *Credentials) PasswordHash() string {
	return c.passwordHash
}

func (c *Credentials) VATNumber() string {
	return c.vatNumber
}

// BaseURL returns a copy of the service base address.
func (c *Credentials) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// String never exposes the password hash or the secret key.
func (c *Credentials) String() string {
	return "ekaer.Credentials{user: " + c.username + ", vat: " + c.vatNumber + ", base: " + c.baseURL.String() + "}"
}

func (c *Credentials) GoString() string {
	return c.String()
}
