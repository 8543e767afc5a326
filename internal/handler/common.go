package handler

import (
	"infinity-park/internal/apperr"
	"infinity-park/internal/auth"
	"strconv"

	"github.com/labstack/echo/v4"
)

// currentSession returns the caller's session or ErrAuthenticationRequired.
// Handlers that need a login call it before reading the body.
func currentSession(c echo.Context) (*auth.Session, error) {
	sess := auth.FromContext(c.Request().Context())
	if !sess.Authenticated() {
		return nil, apperr.ErrAuthenticationRequired
	}
	return sess, nil
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return err
	}
	return c.Validate(req)
}

func idParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation(name, "must be a positive integer")
	}
	return uint(id), nil
}

func indexParam(c echo.Context) (int, error) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		return 0, apperr.Validation("index", "must be an integer")
	}
	return idx, nil
}
