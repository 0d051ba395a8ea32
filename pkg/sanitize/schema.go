package sanitize

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Kind selects the validation path for a field.
type Kind int

const (
	// KindText is the escape-and-length path with the default limit.
	KindText Kind = iota
	// KindAdminText allows longer admin free text.
	KindAdminText
	// KindRich allows rich HTML content, sanitized through bluemonday.
	KindRich
	// KindURL is the scheme-validation path.
	KindURL
)

// FieldSchema maps a column name to its validation kind. Declared once per
// entity; fields missing from the schema take the KindText path.
type FieldSchema map[string]Kind

// FieldError carries the offending field name so the UI can point at it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Row sanitizes every string value in cols according to schema. Non-string
// values pass through untouched. The input map is not modified.
func Row(cols map[string]interface{}, schema FieldSchema) (map[string]interface{}, error) {
	out := make(map[string]interface{}, len(cols))
	for name, value := range cols {
		s, ok := value.(string)
		if !ok {
			out[name] = value
			continue
		}

		clean, err := sanitizeField(s, schema[name])
		if err != nil {
			return nil, &FieldError{Field: name, Err: err}
		}
		out[name] = clean
	}
	return out, nil
}

// Payload recursively sanitizes a decoded JSON value. Keys naming a URL take
// the scheme-validation path, every other string leaf takes escape+length.
func Payload(v interface{}) (interface{}, error) {
	return sanitizePayload("", v)
}

func sanitizePayload(key string, v interface{}) (interface{}, error) {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, child := range val {
			clean, err := sanitizePayload(k, child)
			if err != nil {
				return nil, err
			}
			out[k] = clean
		}
		return out, nil
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, child := range val {
			clean, err := sanitizePayload(key, child)
			if err != nil {
				return nil, err
			}
			out[i] = clean
		}
		return out, nil
	case string:
		kind := KindAdminText
		if isURLKey(key) {
			kind = KindURL
		}
		clean, err := sanitizeField(val, kind)
		if err != nil {
			return nil, &FieldError{Field: key, Err: err}
		}
		return clean, nil
	default:
		return v, nil
	}
}

func sanitizeField(s string, kind Kind) (string, error) {
	switch kind {
	case KindURL:
		return URL(s)
	case KindAdminText:
		return Text(s, AdminTextMax)
	case KindRich:
		if utf8.RuneCountInString(s) > RichTextMax {
			return "", ErrInputTooLong
		}
		return RichHTML(strings.TrimSpace(s)), nil
	default:
		return Text(s, DefaultMaxLen)
	}
}

func isURLKey(key string) bool {
	lower := strings.ToLower(key)
	return strings.HasSuffix(lower, "url") || lower == "link" || strings.HasSuffix(lower, "_link")
}
