// Package transport performs request/response cycles against the Likee
// endpoints.
//
// A Transport owns a Pool of keep-alive connections, picks codecs from a
// Registry, converts failures into the ConnectionError/HTTPError taxonomy and
// publishes one instrumentation.Event per call, whatever the outcome.
// Nothing is retried.
package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/s0up4200/likee/config"
	"github.com/s0up4200/likee/instrumentation"
)

const tracerName = "github.com/s0up4200/likee/transport"

// Transport sends requests through pooled connections.
type Transport struct {
	cfg        config.ClientConfig
	pool       *Pool
	registry   *Registry
	bus        *instrumentation.Bus
	logger     zerolog.Logger
	tracer     trace.Tracer
	propagator propagation.TextMapPropagator
}

// New creates a Transport for cfg.
func New(cfg config.ClientConfig, optFns ...Option) (*Transport, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying transport option: %w", err)
		}
	}

	t := &Transport{
		cfg:        cfg,
		registry:   opts.registry,
		bus:        opts.bus,
		logger:     zerolog.Nop(),
		tracer:     opts.tracer,
		propagator: opts.propagator,
	}
	if opts.logger != nil {
		t.logger = *opts.logger
	}
	if t.registry == nil {
		t.registry = DefaultRegistry()
	}
	if t.bus == nil {
		t.bus = instrumentation.NewBus()
	}
	if t.tracer == nil {
		t.tracer = noop.NewTracerProvider().Tracer(tracerName)
	}
	if t.propagator == nil {
		t.propagator = otel.GetTextMapPropagator()
	}

	t.pool = NewPool(cfg, t.logger)
	if opts.getenv != nil {
		t.pool.getenv = opts.getenv
	}

	return t, nil
}

// Config returns the configuration the transport was built with.
func (t *Transport) Config() config.ClientConfig { return t.cfg }

// Bus returns the bus events are published on.
func (t *Transport) Bus() *instrumentation.Bus { return t.bus }

// Pool returns the connection pool.
func (t *Transport) Pool() *Pool { return t.pool }

// Registry returns the codec registry.
func (t *Transport) Registry() *Registry { return t.registry }

// Get sends a GET to endpoint with query appended.
func (t *Transport) Get(ctx context.Context, endpoint string, query url.Values) (*Response, error) {
	return t.Do(ctx, http.MethodGet, endpoint, query, FormatPassthrough, nil)
}

// Post sends body to endpoint serialized with the codec registered as format.
func (t *Transport) Post(ctx context.Context, endpoint, format string, body any) (*Response, error) {
	return t.Do(ctx, http.MethodPost, endpoint, nil, format, body)
}

// Do runs one request/response cycle. Failures before a status is read,
// including an unusable endpoint or proxy, return a *ConnectionError;
// statuses outside 200..299 an *HTTPError. Exactly one event is published
// on the bus before Do returns.
func (t *Transport) Do(ctx context.Context, method, endpoint string, query url.Values, format string, body any) (*Response, error) {
	ctx, span := t.tracer.Start(ctx, "likee "+method,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("http.request.method", method)),
	)
	defer span.End()

	req, err := NewRequest(t.cfg, method, endpoint, query, t.registry.Find(format), body)
	if err != nil {
		return nil, t.fail(span, method, endpoint, 0, err)
	}
	span.SetAttributes(attribute.String("url.full", req.URL()))

	conn, err := t.pool.Fetch(req.uri)
	if err != nil {
		return nil, t.fail(span, method, req.URL(), 0, err)
	}
	conn.Start()

	httpReq, err := req.httpRequest(ctx)
	if err != nil {
		return nil, t.fail(span, method, req.URL(), 0, err)
	}
	t.propagator.Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	t.logger.Debug().
		Str("method", method).
		Str("url", req.URL()).
		Msg("Making Likee API request")

	start := time.Now()
	resp, err := conn.Do(httpReq)
	if err != nil {
		return nil, t.fail(span, method, req.URL(), time.Since(start), err)
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, t.fail(span, method, req.URL(), time.Since(start), err)
	}
	elapsed := time.Since(start)

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	response, err := newResponse(resp.StatusCode, resp.Header, raw, t.registry)
	if err == nil && !response.Success() {
		err = newHTTPError(method, req.URL(), response)
	}

	t.publish(instrumentation.Event{
		Duration:   elapsed,
		HTTPStatus: resp.StatusCode,
		Method:     method,
		URL:        req.URL(),
		Config:     t.cfg,
		Err:        err,
	})

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.logger.Debug().Err(err).Int("status", resp.StatusCode).Msg("Likee API request failed")
		return nil, err
	}
	return response, nil
}

// Close releases every pooled connection.
func (t *Transport) Close() {
	t.pool.Clear()
}

func (t *Transport) fail(span trace.Span, method, target string, elapsed time.Duration, err error) error {
	cerr := classify(err, method, target)

	t.publish(instrumentation.Event{
		Duration: elapsed,
		Method:   method,
		URL:      target,
		Config:   t.cfg,
		Err:      cerr,
	})

	span.RecordError(cerr)
	span.SetStatus(codes.Error, cerr.Fault)
	t.logger.Debug().
		Err(cerr).
		Str("fault", cerr.Fault).
		Bool("timeout", cerr.Timeout()).
		Msg("Likee API request failed")
	return cerr
}

func (t *Transport) publish(e instrumentation.Event) {
	t.bus.Notify(e)
}
