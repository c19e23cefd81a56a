// Package xmlcodec encodes and decodes EKAER wire objects and offers
// etree based helpers for inspecting raw XML bodies.
package xmlcodec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/text/encoding/htmlindex"

	"github.com/lb-conn/ekaer/application/ports"
)

// Codec is the encoding/xml based wire codec.
type Codec struct {
	indent string
}

var _ ports.Codec = (*Codec)(nil)

type Option func(*Codec)

// WithIndent pretty-prints encoded documents, e.g. for CLI output.
func WithIndent(indent string) Option {
	return func(c *Codec) {
		c.indent = indent
	}
}

func New(opts ...Option) *Codec {
	c := &Codec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode renders v as a UTF-8 XML document with declaration.
func (c *Codec) Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if c.indent != "" {
		enc.Indent("", c.indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode %T: %w", v, err)
	}
	return buf.Bytes(), nil
}

// Decode parses data into v. Documents declaring a non UTF-8 charset are
// transcoded first.
func (c *Codec) Decode(data []byte, v any) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %T: %w", v, err)
	}
	return nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	return enc.NewDecoder().Reader(input), nil
}
