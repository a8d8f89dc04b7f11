package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/praceando/event-platform/internal/api/dto"
	"github.com/praceando/event-platform/internal/auth"
	"github.com/praceando/event-platform/internal/rate"
	"github.com/praceando/event-platform/internal/service"
	apperrors "github.com/praceando/event-platform/pkg/util/errorutil"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth    *service.AuthService
	limiter rate.Limiter
	logger  *zap.Logger
}

// NewAuthHandler constructs handler. limiter may be nil when Redis is not
// configured.
func NewAuthHandler(authService *service.AuthService, limiter rate.Limiter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: authService, limiter: limiter, logger: logger}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	// input is validated before any credential store traffic
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}
	if err := auth.ValidateEmail(req.Email); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return apperrors.NewValidationError(err.Error(), nil)
	}

	if err := h.throttle(c, req.Email); err != nil {
		return err
	}

	token, expiresAt, err := h.auth.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return apperrors.NewUnauthorized("invalid credentials")
		case errors.Is(err, service.ErrTokenSigning):
			h.logger.Error("token issuance failed", zap.Error(err))
			return c.Status(http.StatusInternalServerError).SendString("failed to generate token")
		default:
			// credential store failure or deadline: a transient rejection,
			// not a signing error
			h.logger.Error("credential store lookup failed", zap.Error(err))
			return apperrors.MapError(err)
		}
	}

	return c.JSON(dto.LoginResponse{Token: "Bearer " + token, ExpiresAt: expiresAt})
}

// KeepAlive handles GET /api/auth/keep-alive.
func (h *AuthHandler) KeepAlive(c *fiber.Ctx) error {
	return c.SendStatus(http.StatusOK)
}

// throttle applies the fixed-window limit uniformly, before any credential
// check, so the response shape never depends on whether the email exists.
func (h *AuthHandler) throttle(c *fiber.Ctx, email string) error {
	if h.limiter == nil {
		return nil
	}
	result, err := h.limiter.Allow(c.UserContext(), strings.ToLower(email)+"|"+c.IP())
	if err != nil {
		h.logger.Warn("login rate limiter unavailable", zap.Error(err))
		return nil
	}
	if !result.Allowed {
		return apperrors.NewTooManyRequests("too many login attempts")
	}
	return nil
}
