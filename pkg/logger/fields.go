package logger

import "time"

// Common field constructors for structured logging

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Int64 creates an int64 field
func Int64(key string, value int64) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field
func Err(err error) Field {
	if err == nil {
		return Field{Key: "error", Value: nil}
	}
	return Field{Key: "error", Value: err.Error()}
}

// Duration creates a duration field in milliseconds
func Duration(key string, d time.Duration) Field {
	return Field{Key: key, Value: d.Milliseconds()}
}

// Any creates a field with any value
func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// --- HTTP field helpers ---

// Method creates an http_method field
func Method(method string) Field {
	return Field{Key: "http_method", Value: method}
}

// Path creates a path field
func Path(path string) Field {
	return Field{Key: "path", Value: path}
}

// Status creates a status field
func Status(status int) Field {
	return Field{Key: "status", Value: status}
}

// RemoteIP creates a remote_ip field
func RemoteIP(ip string) Field {
	return Field{Key: "remote_ip", Value: ip}
}

// --- Domain-specific field helpers ---

// UserID creates a user_id field
func UserID(id int64) Field {
	return Field{Key: "user_id", Value: id}
}

// Email creates an email field
func Email(email string) Field {
	return Field{Key: "email", Value: email}
}

// Table creates a table field
func Table(name string) Field {
	return Field{Key: "table", Value: name}
}

// RowID creates a row_id field
func RowID(id int64) Field {
	return Field{Key: "row_id", Value: id}
}

// PageType creates a page_type field
func PageType(name string) Field {
	return Field{Key: "page_type", Value: name}
}

// Position creates a position field
func Position(pos int) Field {
	return Field{Key: "position", Value: pos}
}

// Component creates a component field
func Component(name string) Field {
	return Field{Key: "component", Value: name}
}
