package ekaer

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/lb-conn/ekaer/domain/schema"
)

const (
	fixedRequestID    = "0123456789abcdef0123456789abcdef"
	expectedSignature = "FBD37AF22BDBF00CB64F0C80DBA455AB405C13301BD4569869843C21AD2A863BB69209C5D6FBC7103C54F37BD86F26E70B802A933E362B2C66757F28E459D31E"
)

var signedAt = time.Date(2019, time.March, 1, 10, 20, 30, 0, time.UTC)

func newTestSigner(t *testing.T, now time.Time) *Signer {
	t.Helper()
	creds, err := NewCredentials("user", "password", "12345678", "secret")
	require.NoError(t, err)
	signer, err := NewSigner(creds,
		WithClock(clockwork.NewFakeClockAt(now)),
		WithRequestIDGenerator(func() string { return fixedRequestID }))
	require.NoError(t, err)
	return signer
}

func TestRequestSignature(t *testing.T) {
	signature, err := RequestSignature(fixedRequestID, signedAt, "secret", charmap.Windows1250)
	require.NoError(t, err)
	assert.Equal(t, expectedSignature, signature)
}

func TestRequestSignature_UsesUTC(t *testing.T) {
	budapest := time.FixedZone("CET", 3600)
	local := signedAt.In(budapest)
	require.Equal(t, 11, local.Hour())

	signature, err := RequestSignature(fixedRequestID, local, "secret", charmap.Windows1250)
	require.NoError(t, err)
	assert.Equal(t, expectedSignature, signature)
}

func TestRequestSignature_TruncatesToSeconds(t *testing.T) {
	signature, err := RequestSignature(fixedRequestID, signedAt.Add(750*time.Millisecond), "secret", charmap.Windows1250)
	require.NoError(t, err)
	assert.Equal(t, expectedSignature, signature)
}

func TestSigner_Envelope(t *testing.T) {
	signer := newTestSigner(t, signedAt)

	header, user, err := signer.Envelope()
	require.NoError(t, err)

	assert.Equal(t, fixedRequestID, header.RequestID)
	assert.True(t, signedAt.Equal(header.Timestamp.Time))
	assert.Equal(t, schema.RequestVersion, header.RequestVersion)
	assert.Equal(t, schema.HeaderVersion, header.HeaderVersion)

	assert.Equal(t, "user", user.User)
	assert.Equal(t, "12345678", user.VATNumber)
	assert.Equal(t, passwordDigest, user.PasswordHash)
	assert.Equal(t, expectedSignature, user.RequestSignature)
}

func TestSigner_EnvelopeUsesFreshIDs(t *testing.T) {
	creds, err := NewCredentials("user", "password", "12345678", "secret")
	require.NoError(t, err)
	signer, err := NewSigner(creds)
	require.NoError(t, err)

	first, firstUser, err := signer.Envelope()
	require.NoError(t, err)
	second, secondUser, err := signer.Envelope()
	require.NoError(t, err)

	assert.NotEqual(t, first.RequestID, second.RequestID)
	assert.NotEqual(t, firstUser.RequestSignature, secondUser.RequestSignature)
	assert.Equal(t, firstUser.PasswordHash, secondUser.PasswordHash)
	assert.Equal(t, time.UTC, first.Timestamp.Location())
}

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()
	assert.Len(t, id, 32)
	assert.NotContains(t, id, "-")
	assert.NotEqual(t, id, NewRequestID())
}

func TestSigner_SignRejectsIncompleteHeader(t *testing.T) {
	signer := newTestSigner(t, signedAt)

	_, err := signer.Sign(schema.BasicHeader{Timestamp: schema.NewDateTime(signedAt)})
	assert.Error(t, err)

	_, err = signer.Sign(schema.BasicHeader{RequestID: fixedRequestID})
	assert.Error(t, err)
}

func TestSigner_Verify(t *testing.T) {
	signer := newTestSigner(t, signedAt)
	header, user, err := signer.Envelope()
	require.NoError(t, err)

	require.NoError(t, signer.Verify(header, user))

	lower := user
	lower.RequestSignature = "fbd37af22bdbf00cb64f0c80dba455ab405c13301bd4569869843c21ad2a863bb69209c5d6fbc7103c54f37bd86f26e70b802a933e362b2c66757f28e459d31e"
	assert.NoError(t, signer.Verify(header, lower), "hex case must not matter")

	tampered := user
	tampered.RequestSignature = expectedSignature[:len(expectedSignature)-1] + "F"
	assert.Error(t, signer.Verify(header, tampered))

	later := header
	later.Timestamp = schema.NewDateTime(signedAt.Add(time.Second))
	assert.Error(t, signer.Verify(later, user))

	other := user
	other.User = "someone-else"
	assert.Error(t, signer.Verify(header, other))

	badHash := user
	badHash.PasswordHash = "not hex"
	assert.Error(t, signer.Verify(header, badHash))
}

func TestNewSigner_RequiresCredentials(t *testing.T) {
	_, err := NewSigner(nil)
	assert.Error(t, err)
}
