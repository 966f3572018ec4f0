package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/testivo/testimonial-system/internal/core/domain"
)

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{"admin exists", domain.ErrAdminExists, http.StatusBadRequest, "username or email already registered"},
		{"project not found", domain.ErrProjectNotFound, http.StatusNotFound, "project not found"},
		{"testimonial not found", domain.ErrTestimonialNotFound, http.StatusNotFound, "testimonial not found"},
		{"token used", domain.ErrTokenUsed, http.StatusConflict, domain.ErrTokenUsed.Error()},
		{"token revoked", domain.ErrTokenRevoked, http.StatusConflict, domain.ErrTokenRevoked.Error()},
		{"token expired", domain.ErrTokenExpired, http.StatusConflict, domain.ErrTokenExpired.Error()},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest, "invalid id"},
		{"echo error passes through", echo.NewHTTPError(http.StatusUnprocessableEntity, "rating must be at most 5"), http.StatusUnprocessableEntity, "rating must be at most 5"},
		{"unknown error is masked", errors.New("mongo: connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			handler(tc.err, c)

			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}

			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("unmarshal response: %v", err)
			}
			if resp.Error != tc.wantMsg {
				t.Errorf("expected message %q, got %q", tc.wantMsg, resp.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_CommittedResponseUntouched(t *testing.T) {
	handler := NewHTTPErrorHandler(zerolog.Nop())

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := c.NoContent(http.StatusNoContent); err != nil {
		t.Fatalf("commit response: %v", err)
	}

	handler(domain.ErrProjectNotFound, c)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("committed response must not be overwritten, got %d", rec.Code)
	}
}
