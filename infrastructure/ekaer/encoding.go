package ekaer

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// DefaultTextEncoding is the single-byte code page the service hashes
// passwords and signature sources with.
var DefaultTextEncoding encoding.Encoding = charmap.Windows1250

// LookupTextEncoding resolves a single-byte code page by its IANA / WHATWG
// label ("windows-1250", "iso-8859-2", ...). An empty label yields
// DefaultTextEncoding. Multi-byte encodings such as utf-8 are rejected.
func LookupTextEncoding(label string) (encoding.Encoding, error) {
	if strings.TrimSpace(label) == "" {
		return DefaultTextEncoding, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding %q: %w", label, err)
	}
	if !IsSingleByte(enc) {
		return nil, fmt.Errorf("text encoding %q is not a single-byte code page", label)
	}
	return enc, nil
}

// IsSingleByte reports whether enc maps every character to exactly one byte.
func IsSingleByte(enc encoding.Encoding) bool {
	_, ok := enc.(*charmap.Charmap)
	return ok
}

// TextToBytes converts s to its byte form in enc. Characters enc cannot
// represent are an error: they are never replaced.
func TextToBytes(s string, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		enc = DefaultTextEncoding
	}
	b, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode text: %w", err)
	}
	return b, nil
}

// BytesToHex renders b as upper-case hex without separators.
func BytesToHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// HexToBytes parses a hex string of either case.
func HexToBytes(s string) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to decode hex: %w", err)
	}
	return b, nil
}

// Digest returns the upper-case hex SHA-512 of s encoded with enc.
func Digest(s string, enc encoding.Encoding) (string, error) {
	b, err := TextToBytes(s, enc)
	if err != nil {
		return "", err
	}
	sum := sha512.Sum512(b)
	return BytesToHex(sum[:]), nil
}
