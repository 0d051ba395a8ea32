package apperrors

// Error codes - organized by domain

// Authentication errors (AUTH_*)
const (
	ErrCodeInvalidCredentials = "AUTH_INVALID_CREDENTIALS"
	ErrCodeSessionExpired     = "AUTH_SESSION_EXPIRED"
	ErrCodeTokenInvalid       = "AUTH_TOKEN_INVALID"
	ErrCodeTokenMalformed     = "AUTH_TOKEN_MALFORMED"
	ErrCodeAccountLocked      = "AUTH_ACCOUNT_LOCKED"
	ErrCodeCSRFInvalid        = "AUTH_CSRF_INVALID"
)

// Authorization errors (AUTHZ_*)
const (
	ErrCodeForbidden      = "AUTHZ_FORBIDDEN"
	ErrCodeForbiddenTable = "AUTHZ_FORBIDDEN_TABLE"
	ErrCodeForbiddenPage  = "AUTHZ_FORBIDDEN_PAGE"
)

// Validation errors (VALIDATION_*)
const (
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeInputTooLong     = "VALIDATION_INPUT_TOO_LONG"
	ErrCodeInvalidURL       = "VALIDATION_INVALID_URL"
	ErrCodeInvalidColumn    = "VALIDATION_INVALID_COLUMN"
	ErrCodeInvalidPosition  = "VALIDATION_INVALID_POSITION"
	ErrCodeMissingField     = "VALIDATION_MISSING_FIELD"
)

// Resource errors (RESOURCE_*)
const (
	ErrCodeRowNotFound    = "RESOURCE_ROW_NOT_FOUND"
	ErrCodePageNotFound   = "RESOURCE_PAGE_NOT_FOUND"
	ErrCodeUserNotFound   = "RESOURCE_USER_NOT_FOUND"
	ErrCodeResourceExists = "RESOURCE_ALREADY_EXISTS"
)

// Rate limiting errors (RATE_*)
const (
	ErrCodeRateLimitExceeded  = "RATE_LIMIT_EXCEEDED"
	ErrCodeLoginLimitExceeded = "RATE_LOGIN_LIMIT_EXCEEDED"
)

// Internal errors (INTERNAL_*)
const (
	ErrCodeStoreUnreachable  = "INTERNAL_STORE_UNREACHABLE"
	ErrCodeDatabaseError     = "INTERNAL_DATABASE_ERROR"
	ErrCodeSessionStoreError = "INTERNAL_SESSION_STORE_ERROR"
	ErrCodeUnexpectedError   = "INTERNAL_UNEXPECTED_ERROR"
)
