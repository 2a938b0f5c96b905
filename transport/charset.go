package transport

import (
	"golang.org/x/text/encoding/htmlindex"
)

// toUTF8 transcodes body from charset. Empty, UTF-8 and unknown charsets
// leave the body untouched; the second return reports whether a
// conversion took place.
func toUTF8(body []byte, charset string) ([]byte, bool) {
	if charset == "" || isUTF8(charset) {
		return body, false
	}

	enc, err := htmlindex.Get(charset)
	if err != nil {
		return body, false
	}

	out, err := enc.NewDecoder().Bytes(body)
	if err != nil {
		return body, false
	}
	return out, true
}

func isUTF8(charset string) bool {
	switch charset {
	case "utf-8", "utf8", "unicode-1-1-utf-8":
		return true
	}
	return false
}
