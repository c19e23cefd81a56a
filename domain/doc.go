// Package domain holds the error taxonomy shared by the client layers.
//
// ConfigurationError and ValidationError are local and always returned
// before any request is built. TransportError and ServiceError are
// returned at the call boundary. A partially successful batch is never an
// error: it is returned as two disjoint result sets.
package domain
