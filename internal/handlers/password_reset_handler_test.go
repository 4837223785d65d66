package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printstore/internal/models"
	"printstore/internal/services"
)

type stubResetService struct {
	forgotResult *models.ForgotPasswordResult
	forgotErr    error
	resetErr     error
	valid        bool

	gotEmail string
	gotIP    string
}

func (s *stubResetService) ProcessForgotPassword(email, clientIP string) (*models.ForgotPasswordResult, error) {
	s.gotEmail = email
	s.gotIP = clientIP
	return s.forgotResult, s.forgotErr
}

func (s *stubResetService) ResetPassword(token, newPassword, confirmPassword string) error {
	return s.resetErr
}

func (s *stubResetService) ValidateToken(token string) bool { return s.valid }

func (s *stubResetService) CleanupExpiredTokens()   {}
func (s *stubResetService) CleanupExpiredAttempts() {}

func newResetRouter(stub *stubResetService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPasswordResetHandler(stub)
	r := gin.New()
	r.POST("/api/auth/forgot-password", h.ForgotPassword)
	r.POST("/api/auth/reset-password", h.ResetPassword)
	r.POST("/api/auth/validate-reset-token", h.ValidateResetToken)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestForgotPasswordAlwaysRepliesWithNeutralEnvelope(t *testing.T) {
	// same status and message whether the address is registered or not
	cases := []struct {
		name   string
		result *models.ForgotPasswordResult
	}{
		{"known account", &models.ForgotPasswordResult{EmailSent: true, Email: "a@x.com"}},
		{"unknown account", &models.ForgotPasswordResult{EmailSent: false}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubResetService{forgotResult: tc.result}
			r := newResetRouter(stub)

			w := postJSON(t, r, "/api/auth/forgot-password", gin.H{"email": "a@x.com"})
			assert.Equal(t, http.StatusOK, w.Code)

			var resp models.ApiResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.True(t, resp.Success)
			assert.Equal(t,
				"If the email exists in our system, you will receive instructions to reset your password.",
				resp.Message)
		})
	}
}

func TestForgotPasswordRateLimitedStillReturns200(t *testing.T) {
	next := time.Now().Add(time.Hour).UTC()
	remaining := int64(3600)
	stub := &stubResetService{forgotResult: &models.ForgotPasswordResult{
		EmailSent:            false,
		Email:                "a@x.com",
		NextAttemptAllowed:   &next,
		RemainingTimeSeconds: &remaining,
	}}
	r := newResetRouter(stub)

	w := postJSON(t, r, "/api/auth/forgot-password", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                        `json:"success"`
		Data    models.ForgotPasswordResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.False(t, resp.Data.EmailSent)
	require.NotNil(t, resp.Data.RemainingTimeSeconds)
	assert.Equal(t, int64(3600), *resp.Data.RemainingTimeSeconds)
	require.NotNil(t, resp.Data.NextAttemptAllowed)
}

func TestForgotPasswordRejectsMalformedEmail(t *testing.T) {
	r := newResetRouter(&stubResetService{})

	w := postJSON(t, r, "/api/auth/forgot-password", gin.H{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, r, "/api/auth/forgot-password", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestForgotPasswordDeliveryFailureIs502(t *testing.T) {
	stub := &stubResetService{forgotErr: &services.DeliveryError{Err: assert.AnError}}
	r := newResetRouter(stub)

	w := postJSON(t, r, "/api/auth/forgot-password", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusBadGateway, resp.Status)
	assert.NotContains(t, resp.Message, assert.AnError.Error(), "upstream detail must not leak to callers")
}

func TestForgotPasswordForwardsClientIP(t *testing.T) {
	stub := &stubResetService{forgotResult: &models.ForgotPasswordResult{EmailSent: true}}
	r := newResetRouter(stub)

	b, _ := json.Marshal(gin.H{"email": "a@x.com"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/forgot-password", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "203.0.113.9", stub.gotIP, "first forwarded hop wins")
	assert.Equal(t, "a@x.com", stub.gotEmail)
}

func TestResetPasswordSuccess(t *testing.T) {
	r := newResetRouter(&stubResetService{})

	w := postJSON(t, r, "/api/auth/reset-password", gin.H{
		"token":           "tok-1",
		"newPassword":     "secret1",
		"confirmPassword": "secret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestResetPasswordMismatchIs400(t *testing.T) {
	stub := &stubResetService{resetErr: services.ErrPasswordMismatch}
	r := newResetRouter(stub)

	w := postJSON(t, r, "/api/auth/reset-password", gin.H{
		"token":           "tok-1",
		"newPassword":     "secret1",
		"confirmPassword": "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Passwords do not match.", resp.Message)
}

func TestResetPasswordBadTokenIsGeneric400(t *testing.T) {
	stub := &stubResetService{resetErr: services.ErrInvalidResetToken}
	r := newResetRouter(stub)

	w := postJSON(t, r, "/api/auth/reset-password", gin.H{
		"token":           "tok-1",
		"newPassword":     "secret1",
		"confirmPassword": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid or expired token.", resp.Message,
		"unknown, used and expired tokens share one message")
}

func TestValidateResetToken(t *testing.T) {
	r := newResetRouter(&stubResetService{valid: true})
	w := postJSON(t, r, "/api/auth/validate-reset-token", gin.H{"token": "tok-1"})
	assert.Equal(t, http.StatusOK, w.Code)

	r = newResetRouter(&stubResetService{valid: false})
	w = postJSON(t, r, "/api/auth/validate-reset-token", gin.H{"token": "tok-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid or expired token.", resp.Message)
}
