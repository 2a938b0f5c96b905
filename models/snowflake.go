package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Snowflake is a Likee identifier whose upper 32 bits hold the creation
// time in Unix seconds.
type Snowflake uint64

// ParseSnowflake accepts the string, json.Number and integer forms the API
// uses for post and comment ids.
func ParseSnowflake(v any) (Snowflake, error) {
	switch id := v.(type) {
	case Snowflake:
		return id, nil
	case uint64:
		return Snowflake(id), nil
	case int64:
		if id < 0 {
			return 0, fmt.Errorf("negative snowflake %d", id)
		}
		return Snowflake(id), nil
	case int:
		if id < 0 {
			return 0, fmt.Errorf("negative snowflake %d", id)
		}
		return Snowflake(id), nil
	case json.Number:
		return parseSnowflakeString(id.String())
	case string:
		return parseSnowflakeString(id)
	case nil:
		return 0, fmt.Errorf("missing snowflake")
	default:
		return 0, fmt.Errorf("unsupported snowflake type %T", v)
	}
}

func parseSnowflakeString(s string) (Snowflake, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake %q: %w", s, err)
	}
	return Snowflake(n), nil
}

// Time returns the creation time encoded in the id.
func (s Snowflake) Time() time.Time {
	return time.Unix(int64(s>>32), 0)
}

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}
