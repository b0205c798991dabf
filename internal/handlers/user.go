package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/educa-backend/internal/services"
)

type UserHandler struct {
	userService services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetMe(c.Request.Context())
	if err != nil {
		RespondServiceError(c, "load_user_failed", err)
		return
	}
	RespondOK(c, gin.H{"user": user})
}
