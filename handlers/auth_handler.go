package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/dto"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/models"
	"github.com/rendyyanisusanto/edulite-v1-backend-sub000/utils"
)

type AuthHandler struct {
	db *gorm.DB
}

func NewAuthHandler(db *gorm.DB) *AuthHandler {
	return &AuthHandler{db: db}
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "invalid request body", err.Error())
	}

	if errMap := req.Validate(); len(errMap) > 0 {
		return utils.BadRequest(c, "validation failed", errMap)
	}

	var user models.User
	err := h.db.Where("username = ?", req.Username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.Unauthorized(c, "invalid username or password")
	}
	if err != nil {
		return utils.InternalServerError(c, "failed to look up user")
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return utils.Unauthorized(c, "invalid username or password")
	}

	token, claims, err := utils.GenerateAccessToken(user)
	if err != nil {
		return utils.InternalServerError(c, "failed to issue token")
	}

	return utils.OK(c, "login successful", dto.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Unix(),
	})
}
