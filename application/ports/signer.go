package ports

import "github.com/lb-conn/ekaer/domain/schema"

// Signer produces the authenticated header and user block of a request.
// Every call must return a fresh, never reused envelope.
type Signer interface {
	Envelope() (schema.BasicHeader, schema.UserHeader, error)
}
