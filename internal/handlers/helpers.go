package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"printstore/internal/models"
	"printstore/internal/services"
)

func getIntFromCtx(c *gin.Context, key string) (int, bool) {
	v, ok := c.Get(key)
	if !ok {
		return 0, false
	}
	if n, ok := v.(int); ok {
		return n, true
	}
	return 0, false
}

func currentUserID(c *gin.Context) (int, bool) {
	return getIntFromCtx(c, "user_id")
}

// clientIP resolves the caller address behind proxies: first hop of
// X-Forwarded-For, then X-Real-Ip, then the socket peer.
func clientIP(c *gin.Context) string {
	if xff := strings.TrimSpace(c.GetHeader("X-Forwarded-For")); xff != "" && !strings.EqualFold(xff, "unknown") {
		return strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	if xri := strings.TrimSpace(c.GetHeader("X-Real-Ip")); xri != "" && !strings.EqualFold(xri, "unknown") {
		return xri
	}
	ip := c.ClientIP()
	if ip == "::1" || ip == "0:0:0:0:0:0:0:1" {
		return "127.0.0.1"
	}
	return ip
}

func businessError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Status:    http.StatusBadRequest,
		Message:   message,
		Timestamp: time.Now(),
	})
}

// translateResetError maps the reset taxonomy onto HTTP: validation and
// token failures are 400s with caller-safe messages, delivery failures are
// 502s, anything else is a generic 500. Details only reach the log.
func translateResetError(c *gin.Context, err error) {
	var delivery *services.DeliveryError
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		businessError(c, "Passwords do not match.")
	case errors.Is(err, services.ErrInvalidResetToken):
		businessError(c, "Invalid or expired token.")
	case errors.As(err, &delivery):
		log.Printf("[password-reset] delivery error: %v", err)
		c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Status:    http.StatusBadGateway,
			Message:   "We could not send the email right now. Please try again later.",
			Timestamp: time.Now(),
		})
	default:
		log.Printf("[password-reset] internal error: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Status:    http.StatusInternalServerError,
			Message:   "Something went wrong. Please try again later.",
			Timestamp: time.Now(),
		})
	}
}
