package users

import (
	"torgi-backend/internal/domain"
	"torgi-backend/internal/middleware"
	"torgi-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Handlers struct {
	DB *gorm.DB
}

// Me GET /api/v1/users/me — current user's profile including balance and
// subscription status.
func (h *Handlers) Me(c *fiber.Ctx) error {
	u := middleware.GetUser(c)
	m, ok := u.(map[string]interface{})
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}
	s, _ := m["user_id"].(string)
	userID, err := uuid.Parse(s)
	if err != nil {
		return response.Unauthorized(c, "Unauthorized")
	}

	var user domain.User
	if err := h.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return response.Error(c, "User not found", 404, nil)
		}
		log.Error().Err(err).Msg("users: me failed")
		return response.Error(c, "Internal Server Error", 500, nil)
	}
	return response.Success(c, "User fetched", user, nil)
}
