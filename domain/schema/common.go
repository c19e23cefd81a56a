// Package schema holds the XML wire types of the EKAER trade card
// management service.
package schema

import (
	"fmt"
	"strings"
	"time"
)

const (
	HeaderVersion  = "1.0"
	RequestVersion = "1.9"

	ProductionEndpoint = "https://import.ekaer.nav.gov.hu/TradeCardManagementService/customer/"
	TestEndpoint       = "https://import-test.ekaer.nav.gov.hu/TradeCardManagementService/customer/"

	QueryTradeCardsPath    = "queryTradeCards"
	ValidateTradeCardsPath = "validateTradeCards"
	ManageTradeCardsPath   = "manageTradeCards"

	ManagementNamespace = "http://schemas.nav.gov.hu/EKAER/1.0/management"

	// DomesticCountry is the country code the trade type rules are relative to.
	DomesticCountry = "HU"
)

// FunctionCode classifies the outcome of a batch or of a batch item.
type FunctionCode string

const (
	FunctionCodeOK      FunctionCode = "OK"
	FunctionCodeWarning FunctionCode = "WARN"
	FunctionCodeError   FunctionCode = "ERROR"
)

// BasicHeader identifies a single request.
type BasicHeader struct {
	RequestID      string   `xml:"requestId"`
	Timestamp      DateTime `xml:"timestamp"`
	RequestVersion string   `xml:"requestVersion"`
	HeaderVersion  string   `xml:"headerVersion"`
}

// UserHeader authenticates a single request.
type UserHeader struct {
	User             string `xml:"user"`
	PasswordHash     string `xml:"passwordHash"`
	VATNumber        string `xml:"VATNumber"`
	RequestSignature string `xml:"requestSignature"`
}

// Result is the outcome block of a response or of an operation result.
type Result struct {
	FuncCode   FunctionCode `xml:"funcCode"`
	ReasonCode string       `xml:"reasonCode,omitempty"`
	Msg        string       `xml:"msg,omitempty"`
}

// IsError reports whether the result marks a failure.
func (r Result) IsError() bool {
	return r.FuncCode == FunctionCodeError
}

// BasicRequest is embedded by every request sent to the service.
type BasicRequest struct {
	Header BasicHeader `xml:"header"`
	User   UserHeader  `xml:"user"`
}

// SetEnvelope attaches a freshly signed header and user block.
func (r *BasicRequest) SetEnvelope(header BasicHeader, user UserHeader) {
	r.Header = header
	r.User = user
}

// Enveloped is implemented by every request type through BasicRequest.
type Enveloped interface {
	SetEnvelope(header BasicHeader, user UserHeader)
}

// BasicResponse is embedded by every response returned by the service.
type BasicResponse struct {
	Header BasicHeader `xml:"header"`
	Result Result      `xml:"result"`
}

// DateTime is an xs:dateTime value. Decoding accepts values with or
// without a zone designator and plain dates.
type DateTime struct {
	time.Time
}

const dateTimeLayout = "2006-01-02T15:04:05.000Z07:00"

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// NewDateTime wraps t.
func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t}
}

// DateTimePtr wraps t and returns a pointer, for optional elements.
func DateTimePtr(t time.Time) *DateTime {
	d := NewDateTime(t)
	return &d
}

func (d DateTime) MarshalText() ([]byte, error) {
	return []byte(d.Time.Format(dateTimeLayout)), nil
}

func (d *DateTime) UnmarshalText(text []byte) error {
	value := strings.TrimSpace(string(text))
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("invalid xs:dateTime value %q", value)
}
