package transport

import (
	"errors"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/s0up4200/likee/instrumentation"
)

// Option is a functional option for configuring a Transport via New.
type Option func(*options) error

type options struct {
	bus        *instrumentation.Bus
	logger     *zerolog.Logger
	registry   *Registry
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
	getenv     func(string) string
}

// WithBus publishes request events to bus instead of a private one.
func WithBus(bus *instrumentation.Bus) Option {
	return func(o *options) error {
		if bus == nil {
			return errors.New("bus must not be nil")
		}
		o.bus = bus
		return nil
	}
}

// WithLogger injects a logger for request level debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = &logger
		return nil
	}
}

// WithRegistry replaces the default codec registry.
func WithRegistry(r *Registry) Option {
	return func(o *options) error {
		if r == nil {
			return errors.New("registry must not be nil")
		}
		o.registry = r
		return nil
	}
}

// WithTracer records a client span per request.
func WithTracer(t trace.Tracer) Option {
	return func(o *options) error {
		if t == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = t
		return nil
	}
}

// WithPropagator sets the propagator that injects trace context into
// request headers. The global otel propagator is used otherwise.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(o *options) error {
		if p == nil {
			return errors.New("propagator must not be nil")
		}
		o.propagator = p
		return nil
	}
}

// WithEnv overrides environment lookups used for proxy resolution.
func WithEnv(getenv func(string) string) Option {
	return func(o *options) error {
		if getenv == nil {
			return errors.New("getenv must not be nil")
		}
		o.getenv = getenv
		return nil
	}
}
