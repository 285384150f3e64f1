package handler

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	authdto "github.com/aftermeet-app/aftermeet/internal/adapter/dto/auth"
	"github.com/aftermeet-app/aftermeet/internal/usecase/auth"
)

// Auth handles the OTP login flow
type Auth struct {
	service *auth.Service
	logger  *zap.Logger
}

// NewAuth creates a new auth handler
func NewAuth(service *auth.Service, logger *zap.Logger) *Auth {
	return &Auth{service: service, logger: logger}
}

// RequestCode emails an OTP to the given address. The response is identical
// whether or not the address belongs to an existing account.
func (h *Auth) RequestCode(c echo.Context) error {
	var req authdto.RequestCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.service.RequestCode(c.Request().Context(), req.Email); err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, map[string]string{
		"message": "verification code sent",
	})
}

// VerifyCode exchanges an OTP for a token pair
func (h *Auth) VerifyCode(c echo.Context) error {
	var req authdto.VerifyCodeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	pair, err := h.service.VerifyCode(c.Request().Context(), req.Email, req.Code)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, tokenResponse(pair))
}

// RefreshToken rotates a refresh token
func (h *Auth) RefreshToken(c echo.Context) error {
	var req authdto.RefreshTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	pair, err := h.service.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, tokenResponse(pair))
}

// Logout revokes the refresh token
func (h *Auth) Logout(c echo.Context) error {
	var req authdto.LogoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return handleError(c, h.logger, err)
	}

	if err := h.service.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, map[string]string{
		"message": "logged out",
	})
}

// Me returns the authenticated user's profile
func (h *Auth) Me(c echo.Context) error {
	sess, err := requireSession(c)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	user, err := h.service.GetUser(c.Request().Context(), sess.UserID)
	if err != nil {
		return handleError(c, h.logger, err)
	}
	return handleSuccess(c, h.logger, authdto.ProfileResponse{
		ID:          user.ID.String(),
		Email:       user.Email,
		Name:        user.Name,
		Role:        string(user.Role),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	})
}

func tokenResponse(pair *auth.TokenPair) authdto.TokenResponse {
	return authdto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    pair.ExpiresIn,
		TokenType:    "Bearer",
	}
}
