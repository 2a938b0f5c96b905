package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// class is a node of the error taxonomy. Its parent makes errors.Is match
// every ancestor, so errors.Is(err, ErrTransport) holds for all of them.
type class struct {
	name   string
	parent error
}

func (c *class) Error() string { return c.name }

func (c *class) Unwrap() error { return c.parent }

// Taxonomy roots and leaves. Errors returned by Transport match exactly one
// leaf plus its ancestors under errors.Is.
var (
	ErrTransport  error = &class{name: "transport error"}
	ErrConnection error = &class{name: "connection error", parent: ErrTransport}
	ErrTimeout    error = &class{name: "timeout error", parent: ErrConnection}
	ErrHTTP       error = &class{name: "http error", parent: ErrTransport}

	ErrBadRequest                  error = &class{name: "bad request", parent: ErrHTTP}
	ErrUnauthorized                error = &class{name: "unauthorized", parent: ErrHTTP}
	ErrForbidden                   error = &class{name: "forbidden", parent: ErrHTTP}
	ErrNotFound                    error = &class{name: "not found", parent: ErrHTTP}
	ErrProxyAuthenticationRequired error = &class{name: "proxy authentication required", parent: ErrHTTP}
	ErrUnprocessableEntity         error = &class{name: "unprocessable entity", parent: ErrHTTP}
	ErrClient                      error = &class{name: "client error", parent: ErrHTTP}
	ErrServer                      error = &class{name: "server error", parent: ErrHTTP}
)

// ErrDecode wraps a body that could not be decoded with the codec its
// Content-Type selected.
var ErrDecode = errors.New("failed to decode response body")

// Fault names for failures that happen before a status line is read.
const (
	FaultOpenTimeout       = "OpenTimeout"
	FaultReadTimeout       = "ReadTimeout"
	FaultWriteTimeout      = "WriteTimeout"
	FaultTimeout           = "Timeout"
	FaultDeadlineExceeded  = "DeadlineExceeded"
	FaultCanceled          = "Canceled"
	FaultDNS               = "DNSError"
	FaultTLS               = "TLSError"
	FaultEOF               = "EOFError"
	FaultMalformedResponse = "MalformedResponse"
	FaultInvalidURI        = "InvalidURI"
	FaultProxy             = "ProxyError"
	FaultRequest           = "RequestError"
)

type fault struct {
	name    string
	timeout bool
}

var errnoFaults = map[syscall.Errno]fault{
	syscall.ECONNREFUSED:  {name: "ECONNREFUSED"},
	syscall.ECONNRESET:    {name: "ECONNRESET"},
	syscall.ECONNABORTED:  {name: "ECONNABORTED"},
	syscall.EHOSTUNREACH:  {name: "EHOSTUNREACH"},
	syscall.EHOSTDOWN:     {name: "EHOSTDOWN"},
	syscall.ENETUNREACH:   {name: "ENETUNREACH"},
	syscall.EPIPE:         {name: "EPIPE"},
	syscall.EADDRNOTAVAIL: {name: "EADDRNOTAVAIL"},
	syscall.ETIMEDOUT:     {name: "ETIMEDOUT", timeout: true},
}

// ConnectionError reports a failure before any HTTP status was received.
type ConnectionError struct {
	Fault  string
	Method string
	URL    string
	Err    error

	timeout bool
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, e.Fault, e.Err)
}

// Timeout reports whether the fault is one of the timeout faults.
func (e *ConnectionError) Timeout() bool {
	return e.timeout
}

func (e *ConnectionError) Unwrap() []error {
	if e.timeout {
		return []error{ErrTimeout, e.Err}
	}
	return []error{ErrConnection, e.Err}
}

// HTTPError reports a response whose status is outside 200..299.
type HTTPError struct {
	Kind     error
	Response *Response
	Method   string
	URL      string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: %s: the server responded with a status of %d",
		e.Method, e.URL, e.Kind, e.Response.StatusCode())
}

func (e *HTTPError) Unwrap() error {
	return e.Kind
}

// StatusCode returns the response status.
func (e *HTTPError) StatusCode() int {
	return e.Response.StatusCode()
}

// IsNotFound checks if the error indicates a not found response
func (e *HTTPError) IsNotFound() bool {
	return e.Response.StatusCode() == http.StatusNotFound
}

// IsUnauthorized checks if the error indicates an authentication failure
func (e *HTTPError) IsUnauthorized() bool {
	code := e.Response.StatusCode()
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// IsTimeout reports whether err is a timeout ConnectionError.
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// statusKind maps a non-2xx status to its taxonomy leaf.
func statusKind(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrBadRequest
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusProxyAuthRequired:
		return ErrProxyAuthenticationRequired
	case http.StatusUnprocessableEntity:
		return ErrUnprocessableEntity
	}
	if code >= 400 && code < 500 {
		return ErrClient
	}
	return ErrServer
}

func newHTTPError(method, url string, resp *Response) *HTTPError {
	return &HTTPError{
		Kind:     statusKind(resp.StatusCode()),
		Response: resp,
		Method:   method,
		URL:      url,
	}
}

// faultError tags errors raised by the pool's dialer and connections so the
// classifier can name them precisely.
type faultError struct {
	fault
	err error
}

func (e *faultError) Error() string { return e.name + ": " + e.err.Error() }

func (e *faultError) Unwrap() error { return e.err }

func (e *faultError) Timeout() bool { return e.timeout }

func newFault(name string, err error) *faultError {
	return &faultError{fault: fault{name: name}, err: err}
}

func newTimeoutFault(name string, err error) *faultError {
	return &faultError{fault: fault{name: name, timeout: true}, err: err}
}

// classify turns a low-level send failure into a ConnectionError.
func classify(err error, method, url string) *ConnectionError {
	var cerr *ConnectionError
	if errors.As(err, &cerr) {
		return cerr
	}

	f := faultFor(err)
	return &ConnectionError{
		Fault:   f.name,
		Method:  method,
		URL:     url,
		Err:     err,
		timeout: f.timeout,
	}
}

func faultFor(err error) fault {
	var ferr *faultError
	if errors.As(err, &ferr) {
		return ferr.fault
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fault{name: FaultDeadlineExceeded, timeout: true}
	case errors.Is(err, context.Canceled):
		return fault{name: FaultCanceled}
	}

	var errno syscall.Errno
	if errors.As(err, &errno) {
		if f, ok := errnoFaults[errno]; ok {
			return f
		}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" && opErr.Timeout() {
		return fault{name: FaultOpenTimeout, timeout: true}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "TLS handshake timeout"):
		return fault{name: FaultOpenTimeout, timeout: true}
	case strings.Contains(msg, "timeout awaiting response headers"):
		return fault{name: FaultReadTimeout, timeout: true}
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fault{name: FaultDNS}
	}

	if isTLSFault(err) {
		return fault{name: FaultTLS}
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fault{name: FaultEOF}
	}

	if strings.Contains(msg, "malformed HTTP") {
		return fault{name: FaultMalformedResponse}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fault{name: FaultTimeout, timeout: true}
	}

	return fault{name: fmt.Sprintf("%T", rootCause(err))}
}

func isTLSFault(err error) bool {
	var (
		recordErr    tls.RecordHeaderError
		alertErr     tls.AlertError
		verifyErr    *tls.CertificateVerificationError
		authorityErr x509.UnknownAuthorityError
		hostnameErr  x509.HostnameError
		invalidErr   x509.CertificateInvalidError
	)
	return errors.As(err, &recordErr) ||
		errors.As(err, &alertErr) ||
		errors.As(err, &verifyErr) ||
		errors.As(err, &authorityErr) ||
		errors.As(err, &hostnameErr) ||
		errors.As(err, &invalidErr)
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}
