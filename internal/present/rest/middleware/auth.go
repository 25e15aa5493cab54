package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("auth")

// TokenKey is the echo context key holding the caller's bearer token.
const TokenKey = "token"

// IdentifyToken extracts the caller's token and stores it on the echo
// context. The token is never parsed or verified here; the entity services
// do that.
func IdentifyToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyToken")
		defer span.End()

		token := ""
		authHeader := c.Request().Header.Get("authorization")
		if authHeader != "" {
			split := strings.SplitN(authHeader, " ", 2)
			switch {
			case len(split) != 2:
				span.RecordError(fmt.Errorf("invalid authentication header"))
			case !strings.EqualFold(split[0], "Bearer"):
				span.RecordError(fmt.Errorf("only Bearer is acceptable"))
			default:
				token = strings.TrimSpace(split[1])
			}
		}

		// legacy clients send the raw token in a jwt header
		if token == "" {
			token = strings.TrimSpace(c.Request().Header.Get("jwt"))
		}

		span.SetAttributes(attribute.Bool("authenticated", token != ""))
		c.Set(TokenKey, token)
		return next(c)
	}
}

// Token returns the token stored by IdentifyToken, or "".
func Token(c echo.Context) string {
	token, _ := c.Get(TokenKey).(string)
	return token
}
