package handlers

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/bazaarhub/internal/config"
	"github.com/example/bazaarhub/internal/middleware"
	"github.com/example/bazaarhub/internal/models"
	"github.com/example/bazaarhub/internal/services"
	"github.com/example/bazaarhub/internal/utils"
)

const otpValidity = 10 * time.Minute

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db       *gorm.DB
	cfg      *config.Config
	mailer   *services.Mailer
	validate *validator.Validate
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, mailer *services.Mailer) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, mailer: mailer, validate: validator.New()}
}

type registerRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	AdminSecret string `json:"adminSecret"`
}

// Register creates a new unverified user account and mails an OTP.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	return h.register(c, models.RoleUser)
}

// RegisterAdmin creates an admin account when the shared admin secret
// matches.
func (h *AuthHandler) RegisterAdmin(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.AdminSecret != h.cfg.AdminSecret {
		return fiber.NewError(fiber.StatusForbidden, "Invalid admin secret")
	}
	return h.register(c, models.RoleAdmin)
}

func (h *AuthHandler) register(c *fiber.Ctx, role string) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "missing or malformed fields")
	}

	var existing models.User
	if err := h.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return fiber.NewError(fiber.StatusConflict, "User already exists")
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
	}

	code, err := generateOTP()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate OTP")
	}
	expires := time.Now().Add(otpValidity)

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: passwordHash,
		OTP:          &code,
		OTPExpires:   &expires,
		IsVerified:   false,
		Role:         role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	if err := h.mailer.SendOTP(user.Email, code); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to send OTP email")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered. OTP sent to your email.",
		"data":    fiber.Map{"email": user.Email, "role": user.Role},
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// VerifyOTP confirms the emailed code and marks the account verified.
// Codes are single-use: verification clears both the code and its expiry.
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	if user.OTP == nil || *user.OTP != req.OTP ||
		user.OTPExpires == nil || user.OTPExpires.Before(time.Now()) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid or expired OTP")
	}

	user.MarkVerified()
	if err := h.db.Model(&user).Select("is_verified", "otp", "otp_expires").Updates(&user).Error; err != nil {
		return err
	}

	if err := h.mailer.SendVerified(user.Email, user.Role); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to send confirmation email")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP verified successfully",
		"data":    fiber.Map{"role": user.Role},
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a verified user and issues a session cookie. The
// response body carries the token as well, plus the public user projection.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var user models.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}

	if !user.IsVerified {
		return fiber.NewError(fiber.StatusForbidden, "Please verify your email with OTP")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, user.Email, user.Role, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		HTTPOnly: true,
		Secure:   h.cfg.Production(),
		MaxAge:   int(h.cfg.TokenExpires.Seconds()),
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"data":    user.Public(),
	})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; sessions are stateless and not revoked server-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		HTTPOnly: true,
		Secure:   h.cfg.Production(),
		MaxAge:   -1,
		Expires:  time.Now().Add(-time.Hour),
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}

// CheckAuth echoes the authenticated user's public record.
func (h *AuthHandler) CheckAuth(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": user.Public()})
}

func (h *AuthHandler) currentUser(c *fiber.Ctx) (*models.User, error) {
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

func generateOTP() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
