package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bazaarhub/internal/middleware"
	"github.com/example/bazaarhub/internal/models"
	"github.com/example/bazaarhub/internal/utils"
)

// ProfileHandler manages user profile endpoints.
type ProfileHandler struct {
	db *gorm.DB
}

// NewProfileHandler constructs ProfileHandler.
func NewProfileHandler(db *gorm.DB) *ProfileHandler {
	return &ProfileHandler{db: db}
}

// GetProfile returns the authenticated user's public record.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.loadSessionUser(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": user.Public()})
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateProfile updates only the supplied fields; a new password is rehashed.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	user, err := h.loadSessionUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
		}
		updates["password_hash"] = hash
	}
	if len(updates) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "no fields to update")
	}
	updates["updated_at"] = time.Now()

	if err := h.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "Profile updated successfully"})
}

func (h *ProfileHandler) loadSessionUser(c *fiber.Ctx) (*models.User, error) {
	claims, ok := middleware.GetSessionClaims(c)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	userID, err := claims.Identity()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, err
	}

	return &user, nil
}
