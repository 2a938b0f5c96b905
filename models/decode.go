package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// decodePayload copies a decoded JSON object into a wire struct. Numbers
// and strings convert freely since the API is inconsistent about both.
func decodePayload(input any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       snowflakeHook,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(input)
}

var snowflakeType = reflect.TypeOf(Snowflake(0))

func snowflakeHook(from, to reflect.Type, data any) (any, error) {
	if to != snowflakeType || from == snowflakeType {
		return data, nil
	}
	return ParseSnowflake(data)
}

// decodeEmbedded parses a JSON document carried inside a string field.
func decodeEmbedded(payload string, out any) error {
	if payload == "" {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(payload)))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("parsing embedded JSON: %w", err)
	}
	return decodePayload(raw, out)
}

// dig walks nested objects by key. It returns nil when a step is missing or
// not an object.
func dig(body any, keys ...string) any {
	cur := body
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[k]
	}
	return cur
}

// mapList maps every element of the list found at keys. A missing or
// non-list value yields an empty slice.
func mapList[T any](body any, mapOne func(map[string]any) (T, error), keys ...string) ([]T, error) {
	list, ok := dig(body, keys...).([]any)
	if !ok {
		return []T{}, nil
	}

	out := make([]T, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d: expected object, got %T", i, item)
		}
		v, err := mapOne(m)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
