package handlers

import (
	"net/http"

	"github.com/JulianPasquale/fudo-rack/internal/auth"
	"github.com/JulianPasquale/fudo-rack/internal/dto"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the current account.
type UserHandler struct{}

// NewUserHandler returns a new UserHandler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile godoc
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ProfileResponse
// @Failure      401  {object}  map[string]string
// @Router       /users/profile [get]
func (h *UserHandler) Profile(c *gin.Context) {
	u, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.JSON(http.StatusOK, dto.ProfileResponse{
		User: dto.UserResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt},
	})
}
