package usecases

import (
	"errors"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/lb-conn/ekaer/application/ports"
)

// Application holds the dependencies for trade card operations. It keeps
// no mutable state and may be shared between goroutines as long as the
// transport allows concurrent calls.
type Application struct {
	signer    ports.Signer
	transport ports.Transport
	clock     clockwork.Clock
	logger    *zap.Logger
}

// Option customizes NewApplication.
type Option func(*Application)

// WithLogger sets the logger. Credentials are never logged.
func WithLogger(logger *zap.Logger) Option {
	return func(app *Application) {
		if logger != nil {
			app.logger = logger
		}
	}
}

// WithClock sets the clock query filters are checked against.
func WithClock(clock clockwork.Clock) Option {
	return func(app *Application) {
		if clock != nil {
			app.clock = clock
		}
	}
}

// NewApplication creates a new instance of the Application with the provided dependencies.
func NewApplication(signer ports.Signer, transport ports.Transport, opts ...Option) (*Application, error) {
	if signer == nil {
		return nil, errors.New("signer is required")
	}
	if transport == nil {
		return nil, errors.New("transport is required")
	}
	app := &Application{
		signer:    signer,
		transport: transport,
		clock:     clockwork.NewRealClock(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(app)
	}
	return app, nil
}
