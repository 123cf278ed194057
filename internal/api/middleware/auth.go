package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/alumnet/alumni-network/internal/core/domain"
)

// Keys under which Auth stores the verified claims on the echo context.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextUserType = "user_type"
)

// Auth validates the bearer JWT and injects its claims into the context.
// Websocket upgrades may pass the token as the "token" query parameter,
// since browsers cannot set headers on them.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := bearerToken(c)
			if err != nil {
				return err
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
				return []byte(jwtSecret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			sub, err := claims.GetSubject()
			if err != nil || sub == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}
			userID, err := strconv.ParseUint(sub, 10, 64)
			if err != nil || userID == 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}
			username, _ := claims["username"].(string)
			userType, _ := claims["user_type"].(string)

			c.Set(ContextUserID, uint(userID))
			c.Set(ContextUsername, username)
			c.Set(ContextUserType, domain.UserType(userType))

			return next(c)
		}
	}
}

func bearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		if tok := c.QueryParam("token"); tok != "" && c.IsWebSocket() {
			return tok, nil
		}
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
	}
	return parts[1], nil
}
