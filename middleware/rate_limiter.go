package middleware

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/coinpass/be-content-platform/pkg/logger"
)

// RateLimiterConfig holds the configuration for rate limiting
type RateLimiterConfig struct {
	MaxRequests   int           // Maximum number of requests allowed
	Window        time.Duration // Time window for rate limiting
	BlockDuration time.Duration // Duration to block the IP after exceeding limits
	DB            *sql.DB       // Database connection
}

// RateLimiterMiddleware limits the number of requests per IP using the
// ip_rate_limits table. Used on the login route to slow credential stuffing.
func RateLimiterMiddleware(config RateLimiterConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()
			now := time.Now()
			log := logger.Get().WithComponent("middleware")

			tx, err := config.DB.Begin()
			if err != nil {
				log.Error("Failed to begin rate limit transaction", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "Internal server error",
				})
			}
			defer tx.Rollback()

			var blockedUntil sql.NullTime
			err = tx.QueryRow("SELECT blocked_until FROM ip_rate_limits WHERE ip_address = ?", ip).Scan(&blockedUntil)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				log.Error("Failed to fetch blocked_until", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "Internal server error",
				})
			}

			if blockedUntil.Valid && blockedUntil.Time.After(now) {
				tx.Commit()
				return c.JSON(http.StatusTooManyRequests, map[string]string{
					"error": "Too many requests from this IP, please try again later.",
				})
			}

			var requestCount int
			var firstRequestTime time.Time
			err = tx.QueryRow("SELECT request_count, first_request_time FROM ip_rate_limits WHERE ip_address = ?", ip).Scan(&requestCount, &firstRequestTime)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				log.Error("Failed to fetch rate limit data", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "Internal server error",
				})
			}

			if errors.Is(err, sql.ErrNoRows) {
				_, err = tx.Exec(`
                    INSERT INTO ip_rate_limits (ip_address, request_count, first_request_time, last_request_time)
                    VALUES (?, 1, ?, ?)
                `, ip, now, now)
				if err != nil {
					log.Error("Failed to insert rate limit data", err)
					return c.JSON(http.StatusInternalServerError, map[string]string{
						"error": "Internal server error",
					})
				}
			} else {
				if now.Sub(firstRequestTime) > config.Window {
					_, err = tx.Exec(`
                        UPDATE ip_rate_limits
                        SET request_count = 1, first_request_time = ?, last_request_time = ?, blocked_until = NULL
                        WHERE ip_address = ?
                    `, now, now, ip)
					if err != nil {
						log.Error("Failed to reset rate limit window", err)
						return c.JSON(http.StatusInternalServerError, map[string]string{
							"error": "Internal server error",
						})
					}
				} else {
					if requestCount >= config.MaxRequests {
						blockedUntilTime := now.Add(config.BlockDuration)
						_, err = tx.Exec(`
                            UPDATE ip_rate_limits
                            SET blocked_until = ?
                            WHERE ip_address = ?
                        `, blockedUntilTime, ip)
						if err != nil {
							log.Error("Failed to block IP", err)
							return c.JSON(http.StatusInternalServerError, map[string]string{
								"error": "Internal server error",
							})
						}
						tx.Commit()
						log.Warn("IP blocked for excessive requests", logger.String("ip", ip))
						return c.JSON(http.StatusTooManyRequests, map[string]string{
							"error": "Too many requests from this IP, please try again later.",
						})
					}

					_, err = tx.Exec(`
                        UPDATE ip_rate_limits
                        SET request_count = request_count + 1, last_request_time = ?
                        WHERE ip_address = ?
                    `, now, ip)
					if err != nil {
						log.Error("Failed to update rate limit data", err)
						return c.JSON(http.StatusInternalServerError, map[string]string{
							"error": "Internal server error",
						})
					}
				}
			}

			if err := tx.Commit(); err != nil {
				log.Error("Failed to commit rate limit transaction", err)
				return c.JSON(http.StatusInternalServerError, map[string]string{
					"error": "Internal server error",
				})
			}

			return next(c)
		}
	}
}
