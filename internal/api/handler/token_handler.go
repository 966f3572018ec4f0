package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/testivo/testimonial-system/internal/api/metrics"
	"github.com/testivo/testimonial-system/internal/core/domain"
	"github.com/testivo/testimonial-system/internal/core/ports"
)

const defaultExpiresHours = 72

// TokenHandler handles invite token issuance, validation, redemption, and
// revocation.
type TokenHandler struct {
	service ports.TokenService
}

func NewTokenHandler(service ports.TokenService) *TokenHandler {
	return &TokenHandler{service: service}
}

// Generate handles POST /api/tokens/generate.
func (h *TokenHandler) Generate(c echo.Context) error {
	var req generateTokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	if req.ExpiresHours == 0 {
		req.ExpiresHours = defaultExpiresHours
	}

	_, adminID, err := ctxClaims(c)
	if err != nil {
		return err
	}

	view, err := h.service.Issue(c.Request().Context(), ports.IssueTokenInput{
		ProjectID:    req.ProjectID,
		ExpiresHours: req.ExpiresHours,
		Note:         req.Note,
		IssuedBy:     adminID,
	})
	if err != nil {
		return err
	}

	metrics.TokensIssuedTotal.Inc()
	return c.JSON(http.StatusCreated, toTokenResponse(view))
}

// List handles GET /api/tokens.
func (h *TokenHandler) List(c echo.Context) error {
	views, err := h.service.List(c.Request().Context(), "")
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTokenListResponse(views))
}

// ListByProject handles GET /api/tokens/project/:project_id.
func (h *TokenHandler) ListByProject(c echo.Context) error {
	views, err := h.service.List(c.Request().Context(), c.Param("project_id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTokenListResponse(views))
}

// Validate handles GET /api/tokens/validate/:token. It is unauthenticated and
// always answers 200 with an outcome body for known lifecycle states.
func (h *TokenHandler) Validate(c echo.Context) error {
	result, err := h.service.Validate(c.Request().Context(), c.Param("token"))
	if err != nil {
		metrics.TokenValidationsTotal.WithLabelValues("invalid").Inc()
		return err
	}

	resp := validateTokenResponse{Valid: result.Valid, Message: result.Message}
	if result.Project != nil {
		p := toProjectResponse(result.Project)
		resp.Project = &p
	}

	outcome := "invalid"
	if result.Valid {
		outcome = "valid"
	}
	metrics.TokenValidationsTotal.WithLabelValues(outcome).Inc()

	return c.JSON(http.StatusOK, resp)
}

// Submit handles POST /api/testimonials/submit, the unauthenticated redemption
// endpoint.
func (h *TokenHandler) Submit(c echo.Context) error {
	var req submitTestimonialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	view, err := h.service.Redeem(c.Request().Context(), ports.SubmitTestimonialInput{
		Token:         req.Token,
		ClientName:    req.ClientName,
		ClientRole:    req.ClientRole,
		ClientCompany: req.ClientCompany,
		ClientAvatar:  req.ClientAvatar,
		Rating:        req.Rating,
		Title:         req.Title,
		Content:       req.Content,
		IsFeatured:    req.IsFeatured,
	})
	if err != nil {
		metrics.TokenRedemptionsTotal.WithLabelValues(redemptionResult(err)).Inc()
		return err
	}

	metrics.TokenRedemptionsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, toTestimonialResponse(view))
}

// Revoke handles DELETE /api/tokens/:token_id.
func (h *TokenHandler) Revoke(c echo.Context) error {
	if err := h.service.Revoke(c.Request().Context(), c.Param("token_id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "token revoked"})
}

func redemptionResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenUsed),
		errors.Is(err, domain.ErrTokenRevoked),
		errors.Is(err, domain.ErrTokenExpired):
		return "conflict"
	default:
		return "error"
	}
}
