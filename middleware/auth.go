package middleware

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"github.com/coinpass/be-content-platform/pkg/logger"
)

// JWT validates the primary admin session token and puts the claims on the
// echo context. The token_version claim is checked against the database so
// a logout revokes every outstanding token.
func JWT(db *sqlx.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			jwtSecret := viper.GetString("JWT_SECRET")

			authHeader := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing or invalid token"})
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if len(strings.Split(tokenString, ".")) != 3 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Malformed token"})
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid signing method")
				}
				return []byte(jwtSecret), nil
			})
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token claims"})
			}

			userID := int64(claims["user_id"].(float64))
			c.Set("user_id", userID)
			c.Set("email", claims["email"].(string))

			// token_version mismatch means the session was revoked
			if tokenVersionClaim, ok := claims["token_version"]; ok {
				claimVersion := int64(tokenVersionClaim.(float64))
				var dbVersion int64
				err := db.QueryRow("SELECT token_version FROM admin_users WHERE id = ?", userID).Scan(&dbVersion)
				if err != nil {
					if errors.Is(err, sql.ErrNoRows) {
						return c.JSON(http.StatusUnauthorized, map[string]string{"error": "User not found."})
					}
					logger.Get().WithComponent("middleware").Error("Error checking token version", err, logger.UserID(userID))
					return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error."})
				}
				if claimVersion != dbVersion {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Session revoked. Please login again."})
				}
			}

			return next(c)
		}
	}
}
