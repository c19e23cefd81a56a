package ports

import "context"

// Transport performs one request / response round trip with the service.
// destination is relative to the service base address. On success the
// decoded body is stored in response.
type Transport interface {
	Send(ctx context.Context, destination string, request, response any) error
}

// Codec converts between wire objects and their XML form.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}
