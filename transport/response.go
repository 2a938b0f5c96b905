package transport

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"
)

// Response is an immutable, fully read reply.
type Response struct {
	status   int
	header   http.Header
	raw      []byte
	text     []byte
	mimeType string
	charset  string
	codec    Codec
	body     any
}

// newResponse resolves the codec and charset from the Content-Type header,
// transcodes the body to UTF-8 and decodes it. Decoding errors are only
// reported for successful statuses; error bodies fall back to the text.
func newResponse(status int, header http.Header, raw []byte, registry *Registry) (*Response, error) {
	mimeType, charset := parseContentType(header.Get("Content-Type"))
	text, _ := toUTF8(raw, charset)

	r := &Response{
		status:   status,
		header:   header.Clone(),
		raw:      raw,
		text:     text,
		mimeType: mimeType,
		charset:  charset,
		codec:    registry.FindByMIMEType(mimeType),
	}

	body, err := r.codec.Decode(text)
	if err != nil {
		r.body = text
		if r.Success() {
			return r, fmt.Errorf("%w as %s: %w", ErrDecode, r.codec.Name, err)
		}
		return r, nil
	}
	r.body = body
	return r, nil
}

// StatusCode returns the HTTP status.
func (r *Response) StatusCode() int { return r.status }

// Success reports whether the status is within 200..299.
func (r *Response) Success() bool { return r.status >= 200 && r.status <= 299 }

// Header returns a copy of the response headers.
func (r *Response) Header() http.Header { return r.header.Clone() }

// Raw returns a copy of the bytes as received.
func (r *Response) Raw() []byte { return bytes.Clone(r.raw) }

// Text returns the body transcoded to UTF-8.
func (r *Response) Text() string { return string(r.text) }

// MIMEType returns the media type without parameters.
func (r *Response) MIMEType() string { return r.mimeType }

// Charset returns the declared charset, lowercased, or "".
func (r *Response) Charset() string { return r.charset }

// Codec returns the codec chosen from the Content-Type.
func (r *Response) Codec() Codec { return r.codec }

// Body returns a copy of the decoded body. For JSON this is a map[string]any
// or []any with json.Number numbers; for undecoded bodies it is the UTF-8
// text as []byte.
func (r *Response) Body() any { return cloneBody(r.body) }

// cloneBody deep-copies the containers the registered codecs produce.
func cloneBody(v any) any {
	switch b := v.(type) {
	case []byte:
		return bytes.Clone(b)
	case []string:
		return slices.Clone(b)
	case []any:
		out := make([]any, len(b))
		for i, e := range b {
			out[i] = cloneBody(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(b))
		for k, e := range b {
			out[k] = cloneBody(e)
		}
		return out
	default:
		return v
	}
}
