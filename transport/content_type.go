package transport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"strings"
	"sync"
)

// Format names understood by the default registry.
const (
	FormatJSON           = "json"
	FormatFormURLEncoded = "form_url_encoded"
	FormatPassthrough    = "passthrough"
)

// Codec binds a format name and MIME type to a serializer/deserializer pair.
type Codec struct {
	Name     string
	MIMEType string
	Encode   func(v any) ([]byte, error)
	Decode   func(data []byte) (any, error)
}

// IsPassthrough reports whether c is the fallback identity codec.
func (c Codec) IsPassthrough() bool {
	return c.Name == FormatPassthrough
}

// Passthrough is returned for unknown names and MIME types. It neither
// sets a Content-Type nor transforms bodies.
var Passthrough = Codec{
	Name:   FormatPassthrough,
	Encode: encodeRaw,
	Decode: func(data []byte) (any, error) { return data, nil },
}

// Registry maps format names and MIME types to codecs.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Codec
	byMIME map[string]Codec
}

// NewRegistry returns an empty registry. Use DefaultRegistry for one that
// already knows json and form_url_encoded.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Codec),
		byMIME: make(map[string]Codec),
	}
}

// DefaultRegistry returns a registry populated with the json and
// form_url_encoded codecs.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(FormatJSON, "application/json", encodeJSON, decodeJSON)
	r.Register(FormatFormURLEncoded, "application/x-www-form-urlencoded", encodeForm, decodeForm)
	return r
}

// Register adds or replaces the codec for name and mimeType.
func (r *Registry) Register(name, mimeType string, encode func(any) ([]byte, error), decode func([]byte) (any, error)) {
	c := Codec{Name: name, MIMEType: mimeType, Encode: encode, Decode: decode}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[name] = c
	r.byMIME[normalizeMIME(mimeType)] = c
}

// Find returns the codec registered under name, or Passthrough.
func (r *Registry) Find(name string) Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.byName[name]; ok {
		return c
	}
	return Passthrough
}

// FindByMIMEType returns the codec for a MIME type, ignoring any
// parameters, or Passthrough.
func (r *Registry) FindByMIMEType(mimeType string) Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.byMIME[normalizeMIME(mimeType)]; ok {
		return c
	}
	return Passthrough
}

// parseContentType splits a Content-Type header into its media type and
// lowercased charset parameter.
func parseContentType(header string) (mediaType, charset string) {
	if header == "" {
		return "", ""
	}
	mediaType, params, err := mime.ParseMediaType(header)
	if err != nil {
		// Fall back to a plain split for headers ParseMediaType rejects.
		parts := strings.Split(header, ";")
		mediaType = normalizeMIME(parts[0])
		for _, p := range parts[1:] {
			k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
			if ok && strings.EqualFold(k, "charset") {
				charset = strings.ToLower(strings.Trim(v, `"' `))
			}
		}
		return mediaType, charset
	}
	return mediaType, strings.ToLower(params["charset"])
}

func normalizeMIME(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

func encodeRaw(v any) ([]byte, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case string:
		return []byte(b), nil
	default:
		return nil, fmt.Errorf("passthrough codec cannot encode %T", v)
	}
}

func encodeJSON(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func decodeJSON(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func encodeForm(v any) ([]byte, error) {
	switch m := v.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return []byte(m.Encode()), nil
	case map[string]string:
		values := make(url.Values, len(m))
		for k, val := range m {
			values.Set(k, val)
		}
		return []byte(values.Encode()), nil
	case map[string]any:
		values := make(url.Values, len(m))
		for k, val := range m {
			values.Set(k, fmt.Sprint(val))
		}
		return []byte(values.Encode()), nil
	default:
		return nil, fmt.Errorf("form codec cannot encode %T", v)
	}
}

// decodeForm returns a map of string values; keys that repeat keep every
// value as a []string.
func decodeForm(data []byte) (any, error) {
	values, err := url.ParseQuery(string(data))
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(values))
	for k, vs := range values {
		if len(vs) == 1 {
			out[k] = vs[0]
		} else {
			out[k] = vs
		}
	}
	return out, nil
}
