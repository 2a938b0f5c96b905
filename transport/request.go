package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/s0up4200/likee/config"
)

// Request is an immutable description of one outgoing call.
type Request struct {
	method string
	uri    *url.URL
	codec  Codec
	header http.Header
	body   []byte
}

// NewRequest builds a request for endpoint with query merged into any query
// the endpoint already carries. body is serialized with codec, whose MIME
// type also becomes the Content-Type header.
func NewRequest(cfg config.ClientConfig, method, endpoint string, query url.Values, codec Codec, body any) (*Request, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, newFault(FaultInvalidURI, fmt.Errorf("invalid endpoint %q: %w", endpoint, err))
	}

	if len(query) > 0 {
		merged := u.Query()
		for k, vs := range query {
			merged[k] = append([]string(nil), vs...)
		}
		u.RawQuery = merged.Encode()
	}

	payload, err := codec.Encode(body)
	if err != nil {
		return nil, newFault(FaultRequest, fmt.Errorf("encoding %s body: %w", codec.Name, err))
	}

	header := make(http.Header)
	header.Set("User-Agent", cfg.UserAgent)
	header.Set("Referer", cfg.Referer)
	if codec.MIMEType != "" {
		header.Set("Content-Type", codec.MIMEType)
	}

	return &Request{
		method: method,
		uri:    u,
		codec:  codec,
		header: header,
		body:   payload,
	}, nil
}

// Method returns the HTTP method.
func (r *Request) Method() string { return r.method }

// URL returns the fully encoded target URI.
func (r *Request) URL() string { return r.uri.String() }

// Codec returns the codec used for the body.
func (r *Request) Codec() Codec { return r.codec }

// Header returns a copy of the request headers.
func (r *Request) Header() http.Header { return r.header.Clone() }

// Body returns a copy of the serialized body.
func (r *Request) Body() []byte { return bytes.Clone(r.body) }

func (r *Request) httpRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.uri.String(), body)
	if err != nil {
		return nil, newFault(FaultRequest, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header = r.header.Clone()
	return req, nil
}
