package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/parlorchat/parlor-server/internal/auth"
)

// OTPHandlers exposes the verification collaborator. Codes are logged rather
// than delivered; SMS/mail integration is out of scope.
type OTPHandlers struct {
	authService *auth.Service
	log         *zerolog.Logger
}

// NewOTPHandlers creates a new OTP handlers instance.
func NewOTPHandlers(authService *auth.Service, logger *zerolog.Logger) *OTPHandlers {
	return &OTPHandlers{
		authService: authService,
		log:         logger,
	}
}

// RequestCodeRequest represents the code request body.
type RequestCodeRequest struct {
	Contact string `json:"contact" binding:"required"`
}

// VerifyCodeRequest represents the verification request body.
type VerifyCodeRequest struct {
	Contact  string `json:"contact" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Username string `json:"username" binding:"required,min=1,max=32"`
}

// TokenResponse represents the verification response body.
type TokenResponse struct {
	Token string `json:"token"`
}

// RequestCode issues a verification code for a contact.
// POST /api/otp/request
func (h *OTPHandlers) RequestCode(c *gin.Context) {
	var req RequestCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid otp request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	code, err := h.authService.RequestCode(c.Request.Context(), req.Contact)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidContact) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid contact"})
			return
		}
		h.log.Error().Err(err).Msg("failed to issue code")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	// Stand-in for a delivery channel.
	h.log.Info().Str("contact", req.Contact).Str("code", code).Msg("verification code issued")
	c.JSON(http.StatusOK, gin.H{"message": "code sent"})
}

// VerifyCode checks a code and returns an identity token.
// POST /api/otp/verify
func (h *OTPHandlers) VerifyCode(c *gin.Context) {
	var req VerifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid otp verification request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	token, err := h.authService.VerifyCode(c.Request.Context(), req.Contact, req.Code, req.Username)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrCodeInvalid):
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid or expired code"})
		case errors.Is(err, auth.ErrInvalidContact), errors.Is(err, auth.ErrInvalidUsername):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request"})
		default:
			h.log.Error().Err(err).Msg("failed to verify code")
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		}
		return
	}

	h.log.Info().Str("contact", req.Contact).Str("username", req.Username).Msg("identity verified")
	c.JSON(http.StatusOK, TokenResponse{Token: token})
}
