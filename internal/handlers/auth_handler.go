package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"printstore/internal/models"
	"printstore/internal/services"
)

type AuthHandler struct {
	userService services.UserService
	authService services.AuthService
}

func NewAuthHandler(userService services.UserService, authService services.AuthService) *AuthHandler {
	return &AuthHandler{userService: userService, authService: authService}
}

// @Summary      Register a new customer account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.RegisterRequest  true  "Registration data"
// @Success      201      {object}  models.ApiResponse
// @Failure      400      {object}  models.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		businessError(c, "Full name, a valid email and a password of at least 6 characters are required.")
		return
	}

	user, err := h.userService.Register(req)
	if err != nil {
		log.Printf("[auth][register] failed for email=%q: %v", req.Email, err)
		businessError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, models.OKWithData("Account created.", user))
}

// @Summary      Sign in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      models.LoginRequest  true  "Credentials"
// @Success      200      {object}  models.ApiResponse
// @Failure      401      {object}  models.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		businessError(c, "Email and password are required.")
		return
	}

	email := strings.TrimSpace(req.Email)
	user, err := h.userService.GetUserByEmail(email)
	if err != nil {
		log.Printf("[auth][login] lookup failed email=%q: %v", email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}
	// one rejection path for every bad-credential case
	if user == nil || !user.Active || !h.authService.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := h.authService.IssueAccessToken(user.ID, user.RoleID)
	if err != nil {
		log.Printf("[auth][login] sign token failed userID=%d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate access token"})
		return
	}

	c.JSON(http.StatusOK, models.OKWithData("Login successful.", gin.H{
		"user":         user,
		"access_token": token,
	}))
}
