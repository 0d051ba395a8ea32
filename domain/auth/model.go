package auth

import (
	"database/sql"
	"time"
)

// AdminUser is a row in admin_users. The table is deliberately outside the
// store adapter's write allow-list; only this package touches it.
type AdminUser struct {
	ID           int64     `db:"id"`
	Email        string    `db:"email"`
	Password     string    `db:"password"`
	TokenVersion int64     `db:"token_version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the primary JWT plus the secondary session and CSRF
// tokens the admin client must echo back on every write.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	SessionToken string `json:"session_token"`
	CSRFToken    string `json:"csrf_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
	Email        string `json:"email"`
}

// SessionResponse reports whether the caller's session is still good.
type SessionResponse struct {
	Valid bool   `json:"valid"`
	Email string `json:"email,omitempty"`
}

// loginAttempts mirrors the lockout bookkeeping row.
type loginAttempts struct {
	FailedAttempts int          `db:"failed_attempts"`
	BlockedUntil   sql.NullTime `db:"blocked_until"`
}
