package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"printstore/internal/models"
	"printstore/internal/services"
)

type PasswordResetHandler struct {
	service services.PasswordResetService
}

func NewPasswordResetHandler(service services.PasswordResetService) *PasswordResetHandler {
	return &PasswordResetHandler{service: service}
}

// @Summary      Request a password reset
// @Description  Sends a reset email when the account exists. The response shape is identical for unknown addresses; only rate-limited callers see cooldown metadata.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.ForgotPasswordRequest  true  "Account email"
// @Success      200      {object}  models.ApiResponse
// @Failure      400      {object}  models.ErrorResponse
// @Failure      502      {object}  models.ErrorResponse
// @Router       /api/auth/forgot-password [post]
func (h *PasswordResetHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		businessError(c, "A valid email address is required.")
		return
	}

	ip := clientIP(c)
	log.Printf("[password-reset] forgot-password request ip=%s", ip)

	result, err := h.service.ProcessForgotPassword(req.Email, ip)
	if err != nil {
		translateResetError(c, err)
		return
	}

	// Always 200 and always the same message: the body never reveals
	// whether the address belongs to an account.
	c.JSON(http.StatusOK, models.OKWithData(
		"If the email exists in our system, you will receive instructions to reset your password.",
		result,
	))
}

// @Summary      Reset the password with a token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.ResetPasswordRequest  true  "Token and new password"
// @Success      200      {object}  models.ApiResponse
// @Failure      400      {object}  models.ErrorResponse
// @Router       /api/auth/reset-password [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		businessError(c, "Token and passwords are required.")
		return
	}

	if err := h.service.ResetPassword(req.Token, req.NewPassword, req.ConfirmPassword); err != nil {
		translateResetError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.OK("Password updated successfully. You can now sign in with your new password."))
}

// @Summary      Pre-flight check of a reset token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.ValidateTokenRequest  true  "Token"
// @Success      200      {object}  models.ApiResponse
// @Failure      400      {object}  models.ErrorResponse
// @Router       /api/auth/validate-reset-token [post]
func (h *PasswordResetHandler) ValidateResetToken(c *gin.Context) {
	var req models.ValidateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		businessError(c, "Token is required.")
		return
	}

	if !h.service.ValidateToken(req.Token) {
		businessError(c, "Invalid or expired token.")
		return
	}
	c.JSON(http.StatusOK, models.OK("Token is valid."))
}
