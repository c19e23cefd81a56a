package ekaer

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/text/encoding"

	"github.com/lb-conn/ekaer/application/ports"
	"github.com/lb-conn/ekaer/domain/schema"
)

// signatureTimeLayout is yyyyMMddHHmmss, always rendered in UTC.
const signatureTimeLayout = "20060102150405"

// Signer builds the authenticated envelope of every outbound request.
type Signer struct {
	creds *Credentials
	clock clockwork.Clock
	newID func() string
}

var _ ports.Signer = (*Signer)(nil)

// SignerOption customizes NewSigner.
type SignerOption func(*Signer)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock clockwork.Clock) SignerOption {
	return func(s *Signer) {
		s.clock = clock
	}
}

// WithRequestIDGenerator replaces the request id generator.
func WithRequestIDGenerator(newID func() string) SignerOption {
	return func(s *Signer) {
		s.newID = newID
	}
}

// NewSigner creates a Signer bound to creds.
func NewSigner(creds *Credentials, opts ...SignerOption) (*Signer, error) {
	if creds == nil {
		return nil, errors.New("credentials are required")
	}
	s := &Signer{
		creds: creds,
		clock: clockwork.NewRealClock(),
		newID: NewRequestID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewRequestID returns a random 128-bit id as 32 hex characters.
func NewRequestID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Header returns a new header with the current UTC time and a fresh request id.
func (s *Signer) Header() schema.BasicHeader {
	return schema.BasicHeader{
		RequestID:      s.newID(),
		Timestamp:      schema.NewDateTime(s.clock.Now().UTC()),
		RequestVersion: schema.RequestVersion,
		HeaderVersion:  schema.HeaderVersion,
	}
}

// Sign returns the user block for header.
func (s *Signer) Sign(header schema.BasicHeader) (schema.UserHeader, error) {
	if header.RequestID == "" {
		return schema.UserHeader{}, errors.New("header has no request id")
	}
	if header.Timestamp.IsZero() {
		return schema.UserHeader{}, errors.New("header has no timestamp")
	}
	signature, err := RequestSignature(header.RequestID, header.Timestamp.Time, s.creds.secretKey, s.creds.encoding)
	if err != nil {
		return schema.UserHeader{}, fmt.Errorf("failed to sign request %s: %w", header.RequestID, err)
	}
	return schema.UserHeader{
		User:             s.creds.username,
		PasswordHash:     s.creds.passwordHash,
		VATNumber:        s.creds.vatNumber,
		RequestSignature: signature,
	}, nil
}

// Envelope builds a fresh header and its user block. Envelopes are never reused.
func (s *Signer) Envelope() (schema.BasicHeader, schema.UserHeader, error) {
	header := s.Header()
	user, err := s.Sign(header)
	if err != nil {
		return schema.BasicHeader{}, schema.UserHeader{}, err
	}
	return header, user, nil
}

// Verify recomputes the signature of a received envelope and compares it
// in constant time.
func (s *Signer) Verify(header schema.BasicHeader, user schema.UserHeader) error {
	if user.User != s.creds.username || user.VATNumber != s.creds.vatNumber {
		return errors.New("envelope belongs to another principal")
	}
	if !hexEqual(user.PasswordHash, s.creds.passwordHash) {
		return errors.New("password hash mismatch")
	}
	expected, err := RequestSignature(header.RequestID, header.Timestamp.Time, s.creds.secretKey, s.creds.encoding)
	if err != nil {
		return err
	}
	if !hexEqual(user.RequestSignature, expected) {
		return errors.New("request signature mismatch")
	}
	return nil
}

// RequestSignature is SHA-512 over requestID, the UTC timestamp truncated
// to seconds and the secret, encoded with enc, as upper-case hex.
func RequestSignature(requestID string, timestamp time.Time, secret string, enc encoding.Encoding) (string, error) {
	source := requestID + timestamp.UTC().Format(signatureTimeLayout) + secret
	return Digest(source, enc)
}

func hexEqual(a, b string) bool {
	left, err := HexToBytes(a)
	if err != nil {
		return false
	}
	right, err := HexToBytes(b)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(left, right) == 1
}
