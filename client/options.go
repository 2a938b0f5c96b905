package client

import (
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/s0up4200/likee/api"
	"github.com/s0up4200/likee/instrumentation"
	"github.com/s0up4200/likee/transport"
)

// Option configures a Client.
type Option func(*options) error

type options struct {
	logger    zerolog.Logger
	bus       *instrumentation.Bus
	endpoints *api.Endpoints
	country   string
	language  string
	transport []transport.Option
}

// WithLogger sets the logger shared by every layer of the client.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithBus publishes request events to bus instead of a private one.
func WithBus(bus *instrumentation.Bus) Option {
	return func(o *options) error {
		if bus == nil {
			return errors.New("bus cannot be nil")
		}
		o.bus = bus
		return nil
	}
}

// WithTracer records a client span per request on t.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) error {
		o.transport = append(o.transport, transport.WithTracer(t))
		return nil
	}
}

// WithEndpoints points the client at different endpoint URLs.
func WithEndpoints(e api.Endpoints) Option {
	return func(o *options) error {
		o.endpoints = &e
		return nil
	}
}

// WithLocale sets the country and language used when a call does not pass one.
func WithLocale(country, language string) Option {
	return func(o *options) error {
		o.country = country
		o.language = language
		return nil
	}
}

// WithTransportOptions passes extra options through to the transport.
func WithTransportOptions(opts ...transport.Option) Option {
	return func(o *options) error {
		o.transport = append(o.transport, opts...)
		return nil
	}
}
