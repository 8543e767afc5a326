package middleware

import (
	"infinity-park/internal/apperr"
	"infinity-park/internal/auth"
	"infinity-park/internal/model"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type TokenParser interface {
	Parse(raw string) (*auth.Session, error)
}

// Session attaches the caller's session to the request context when a
// bearer token is present. Requests without a token continue anonymously;
// services decide whether they need a session.
func Session(tokens TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			sess, err := tokens.Parse(raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			req := c.Request()
			c.SetRequest(req.WithContext(auth.WithSession(req.Context(), sess)))
			return next(c)
		}
	}
}

func RequireRole(role model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := auth.FromContext(c.Request().Context())
			if !sess.Authenticated() {
				return apperr.ErrAuthenticationRequired
			}
			if sess.Role != role {
				return apperr.ErrForbidden
			}
			return next(c)
		}
	}
}
