package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: both identity claims
// must be present, otherwise the JWT predates the current claim shape and the
// request is rejected with 401.
func ctxClaims(c echo.Context) (username, adminID string, err error) {
	username, _ = c.Get("username").(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	adminID, _ = c.Get("admin_id").(string)
	if adminID == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "token missing admin identity")
	}

	return username, adminID, nil
}
