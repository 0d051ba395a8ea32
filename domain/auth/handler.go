package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"

	"github.com/coinpass/be-content-platform/pkg/apperrors"
	"github.com/coinpass/be-content-platform/pkg/logger"
	"github.com/coinpass/be-content-platform/utils"
)

const (
	maxLoginAttempts = 5
	loginBlockWindow = 15 * time.Minute
	jwtExpirySeconds = 24 * 60 * 60
)

// Handler implements the auth collaborator surface: login, logout,
// checkSession, refreshSession.
type Handler struct {
	DB       *sqlx.DB
	Sessions *SessionStore
}

func NewHandler(db *sqlx.DB, sessions *SessionStore) *Handler {
	return &Handler{DB: db, Sessions: sessions}
}

// LoginHandler authenticates the admin and issues the primary JWT plus the
// secondary session and CSRF tokens.
func (h *Handler) LoginHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth").WithRequestID(logger.GetRequestIDFromContext(c))

	req := new(LoginRequest)
	if err := c.Bind(req); err != nil {
		log.Warn("Invalid login request payload", logger.Err(err))
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"Email and password are required.",
		))
	}

	ctx := c.Request().Context()
	now := time.Now()

	attempts, err := h.loadAttempts(ctx, req.Email, now)
	if err != nil {
		log.Error("Failed to read login attempts", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if attempts.BlockedUntil.Valid && attempts.BlockedUntil.Time.After(now) {
		remaining := attempts.BlockedUntil.Time.Sub(now)
		log.Warn("Login attempt while account locked", logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewTooManyRequests(
			apperrors.ErrCodeAccountLocked,
			fmt.Sprintf("Too many attempts. Please try again in %d minutes and %d seconds.",
				int(remaining.Minutes()), int(remaining.Seconds())%60),
		))
	}

	var user AdminUser
	err = h.DB.GetContext(ctx, &user, "SELECT * FROM admin_users WHERE email = ?", req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			h.recordFailure(ctx, req.Email, now, log)
			return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
				apperrors.ErrCodeInvalidCredentials,
				"Invalid email or password.",
			))
		}
		log.Error("Failed to fetch admin user", err, logger.Email(req.Email))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		h.recordFailure(ctx, req.Email, now, log)
		h.auditLogin(ctx, user.ID, false, c, log)
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeInvalidCredentials,
			"Invalid email or password.",
		))
	}

	// Successful login resets the lockout window
	if _, err := h.DB.ExecContext(ctx, `
		UPDATE user_login_attempts
		SET failed_attempts = 0, blocked_until = NULL, last_attempt_time = ?
		WHERE username = ?
	`, now, req.Email); err != nil {
		log.Warn("Failed to reset login attempts", logger.Err(err))
	}

	token, err := utils.GenerateJWT(user.ID, user.Email, user.TokenVersion)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Failed to create session.",
			err,
		))
	}

	sessionToken, csrfToken, err := h.Sessions.Start(ctx, user.ID)
	if err != nil {
		log.Error("Failed to start secondary session", err, logger.UserID(user.ID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeSessionStoreError,
			"Failed to create session.",
			err,
		))
	}

	h.auditLogin(ctx, user.ID, true, c, log)
	log.Info("Admin logged in", logger.UserID(user.ID), logger.Email(user.Email))

	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  token,
		SessionToken: sessionToken,
		CSRFToken:    csrfToken,
		ExpiresIn:    jwtExpirySeconds,
		TokenType:    "Bearer",
		Email:        user.Email,
	})
}

// LogoutHandler bumps token_version so every outstanding JWT dies, then
// drops the secondary session.
func (h *Handler) LogoutHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	userID := c.Get("user_id").(int64)
	ctx := c.Request().Context()

	if _, err := h.DB.ExecContext(ctx,
		"UPDATE admin_users SET token_version = token_version + 1 WHERE id = ?", userID,
	); err != nil {
		log.Error("Failed to revoke sessions", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeDatabaseError,
			"Internal server error.",
			err,
		))
	}

	h.Sessions.Clear(ctx, userID)
	log.Info("Admin logged out", logger.UserID(userID))

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out."})
}

// SessionHandler implements checkSession: it only runs behind the JWT
// middleware, so reaching it at all means the primary session is valid.
func (h *Handler) SessionHandler(c echo.Context) error {
	email, _ := c.Get("email").(string)
	return c.JSON(http.StatusOK, SessionResponse{Valid: true, Email: email})
}

// RefreshHandler implements refreshSession: reissues the JWT against the
// current token_version and resyncs the secondary session token.
func (h *Handler) RefreshHandler(c echo.Context) error {
	log := logger.Get().WithComponent("auth")
	userID := c.Get("user_id").(int64)
	email, _ := c.Get("email").(string)
	ctx := c.Request().Context()

	var tokenVersion int64
	if err := h.DB.GetContext(ctx, &tokenVersion,
		"SELECT token_version FROM admin_users WHERE id = ?", userID,
	); err != nil {
		log.Error("Failed to read token version", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewUnauthorized(
			apperrors.ErrCodeSessionExpired,
			"Session expired. Please log in again.",
		))
	}

	token, err := utils.GenerateJWT(userID, email, tokenVersion)
	if err != nil {
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeUnexpectedError,
			"Failed to refresh session.",
			err,
		))
	}

	sessionToken, csrfToken, err := h.Sessions.Resync(ctx, userID)
	if err != nil {
		log.Error("Failed to resync secondary session", err, logger.UserID(userID))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeSessionStoreError,
			"Failed to refresh session.",
			err,
		))
	}

	return c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  token,
		SessionToken: sessionToken,
		CSRFToken:    csrfToken,
		ExpiresIn:    jwtExpirySeconds,
		TokenType:    "Bearer",
		Email:        email,
	})
}

// loadAttempts fetches (or creates) the lockout row for email.
func (h *Handler) loadAttempts(ctx context.Context, email string, now time.Time) (loginAttempts, error) {
	var attempts loginAttempts
	err := h.DB.GetContext(ctx, &attempts, `
		SELECT failed_attempts, blocked_until
		FROM user_login_attempts
		WHERE username = ?
	`, email)
	if err == nil {
		return attempts, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return attempts, err
	}

	if _, err := h.DB.ExecContext(ctx, `
		INSERT INTO user_login_attempts (username, failed_attempts, last_attempt_time)
		VALUES (?, 0, ?)
	`, email, now); err != nil {
		return attempts, err
	}
	return loginAttempts{}, nil
}

// recordFailure bumps the failed-attempt counter and applies the lockout
// window once the threshold is reached.
func (h *Handler) recordFailure(ctx context.Context, email string, now time.Time, log logger.Logger) {
	var blocked interface{}
	var attempts loginAttempts
	if err := h.DB.GetContext(ctx, &attempts, `
		SELECT failed_attempts, blocked_until FROM user_login_attempts WHERE username = ?
	`, email); err == nil && attempts.FailedAttempts+1 >= maxLoginAttempts {
		blocked = now.Add(loginBlockWindow)
	}

	if _, err := h.DB.ExecContext(ctx, `
		UPDATE user_login_attempts
		SET failed_attempts = failed_attempts + 1, last_attempt_time = ?, blocked_until = ?
		WHERE username = ?
	`, now, blocked, email); err != nil {
		log.Warn("Failed to record login failure", logger.Err(err), logger.Email(email))
	}
}

// auditLogin writes the login_logs row. Audit failures never block login.
func (h *Handler) auditLogin(ctx context.Context, userID int64, success bool, c echo.Context, log logger.Logger) {
	if _, err := h.DB.ExecContext(ctx, `
		INSERT INTO login_logs (user_id, success, ip_address, user_agent, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, userID, success, c.RealIP(), c.Request().UserAgent(), time.Now()); err != nil {
		log.Warn("Failed to write login audit row", logger.Err(err), logger.UserID(userID))
	}
}
