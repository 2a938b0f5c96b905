package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusKind(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{400, ErrBadRequest},
		{401, ErrUnauthorized},
		{403, ErrForbidden},
		{404, ErrNotFound},
		{407, ErrProxyAuthenticationRequired},
		{422, ErrUnprocessableEntity},
		{402, ErrClient},
		{409, ErrClient},
		{429, ErrClient},
		{499, ErrClient},
		{500, ErrServer},
		{502, ErrServer},
		{599, ErrServer},
		{301, ErrServer},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
			kind := statusKind(tt.status)
			assert.Equal(t, tt.want, kind)
			assert.ErrorIs(t, kind, ErrHTTP)
			assert.ErrorIs(t, kind, ErrTransport)
			assert.NotErrorIs(t, kind, ErrConnection)
		})
	}
}

func TestHTTPError(t *testing.T) {
	resp, err := newResponse(http.StatusNotFound, http.Header{}, []byte("missing"), DefaultRegistry())
	require.NoError(t, err)

	herr := newHTTPError(http.MethodGet, "https://likee.video/@nobody", resp)

	assert.ErrorIs(t, herr, ErrNotFound)
	assert.True(t, herr.IsNotFound())
	assert.False(t, herr.IsUnauthorized())
	assert.Equal(t, 404, herr.StatusCode())
	assert.Contains(t, herr.Error(), "the server responded with a status of 404")
	assert.Equal(t, "missing", herr.Response.Text())
}

func TestClassify(t *testing.T) {
	opErr := func(op string, err error) error {
		return &net.OpError{Op: op, Net: "tcp", Err: err}
	}

	tests := []struct {
		name        string
		err         error
		wantFault   string
		wantTimeout bool
	}{
		{
			name:      "connection refused",
			err:       opErr("dial", os.NewSyscallError("connect", syscall.ECONNREFUSED)),
			wantFault: "ECONNREFUSED",
		},
		{
			name:      "connection reset",
			err:       opErr("read", os.NewSyscallError("read", syscall.ECONNRESET)),
			wantFault: "ECONNRESET",
		},
		{
			name:      "broken pipe",
			err:       opErr("write", syscall.EPIPE),
			wantFault: "EPIPE",
		},
		{
			name:        "os timeout",
			err:         opErr("dial", syscall.ETIMEDOUT),
			wantFault:   "ETIMEDOUT",
			wantTimeout: true,
		},
		{
			name:        "open timeout",
			err:         &faultError{fault: fault{name: FaultOpenTimeout, timeout: true}, err: errors.New("i/o timeout")},
			wantFault:   FaultOpenTimeout,
			wantTimeout: true,
		},
		{
			name:        "write timeout",
			err:         fmt.Errorf("write: %w", &faultError{fault: fault{name: FaultWriteTimeout, timeout: true}, err: os.ErrDeadlineExceeded}),
			wantFault:   FaultWriteTimeout,
			wantTimeout: true,
		},
		{
			name:        "body read timeout",
			err:         &url.Error{Op: "Get", URL: "http://x", Err: newTimeoutFault(FaultReadTimeout, os.ErrDeadlineExceeded)},
			wantFault:   FaultReadTimeout,
			wantTimeout: true,
		},
		{
			name:      "invalid proxy",
			err:       fmt.Errorf("fetching: %w", newFault(FaultProxy, errors.New("invalid proxy"))),
			wantFault: FaultProxy,
		},
		{
			name:        "response header timeout",
			err:         errors.New("net/http: timeout awaiting response headers"),
			wantFault:   FaultReadTimeout,
			wantTimeout: true,
		},
		{
			name:      "dns",
			err:       &net.DNSError{Err: "no such host", Name: "likee.invalid"},
			wantFault: FaultDNS,
		},
		{
			name:      "eof",
			err:       fmt.Errorf("reading: %w", io.ErrUnexpectedEOF),
			wantFault: FaultEOF,
		},
		{
			name:        "context deadline",
			err:         context.DeadlineExceeded,
			wantFault:   FaultDeadlineExceeded,
			wantTimeout: true,
		},
		{
			name:      "context canceled",
			err:       context.Canceled,
			wantFault: FaultCanceled,
		},
		{
			name:      "unmapped fault keeps its type name",
			err:       fmt.Errorf("wrapped: %w", customFault{}),
			wantFault: "transport.customFault",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cerr := classify(tt.err, http.MethodGet, "https://likee.video/")

			assert.Equal(t, tt.wantFault, cerr.Fault)
			assert.Equal(t, tt.wantTimeout, cerr.Timeout())
			assert.Equal(t, tt.wantTimeout, IsTimeout(cerr))
			assert.ErrorIs(t, cerr, ErrConnection)
			assert.ErrorIs(t, cerr, ErrTransport)
			assert.NotErrorIs(t, cerr, ErrHTTP)
			assert.ErrorIs(t, cerr, tt.err)
			assert.Contains(t, cerr.Error(), tt.wantFault)
		})
	}
}

type customFault struct{}

func (customFault) Error() string { return "custom fault" }
