package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"partner-portal-api/internal/domain"
	"partner-portal-api/internal/response"
)

// extractActor reads the authenticated user set by the auth middleware.
// It writes the error response itself when the context is incomplete.
func extractActor(c *gin.Context) (domain.Actor, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in context")
		return domain.Actor{}, false
	}
	userUUID, ok := userID.(uuid.UUID)
	if !ok {
		response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid user ID format")
		return domain.Actor{}, false
	}

	return domain.Actor{
		ID:   userUUID,
		Name: c.GetString("user_name"),
		Role: c.GetString("user_role"),
	}, true
}
