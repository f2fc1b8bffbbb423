package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/config"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

// AuthHandler issues first-party tokens for password accounts (admins).
// Regular seekers and providers authenticate with tokens from the external
// identity provider; they never hit this endpoint.
type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{db: db, config: cfg}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
			return
		}
		httperr.Internal(c, "internal_error", "something went wrong")
		return
	}

	if user.PasswordHash == "" || !user.Active {
		httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "invalid email or password")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "could not issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"token": token,
	})
}

// generateToken mints a token shaped like the external provider's, so the
// same verification path handles both.
func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	uid := LocalUID(user)

	claims := jwt.MapClaims{
		"uid":   uid,
		"email": user.Email,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

// LocalUID returns the user's identity uid, synthesizing a first-party one
// for password accounts created before any external login.
func LocalUID(user *models.User) string {
	if user.IdentityUID != nil && *user.IdentityUID != "" {
		return *user.IdentityUID
	}
	return fmt.Sprintf("local_%d", user.ID)
}

// EnsureAdminUser creates or repairs the bootstrap admin account from the
// configured credentials. A no-op when they are unset.
func EnsureAdminUser(db *gorm.DB, cfg *config.Config, log *slog.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(cfg.AdminEmail))

	var user models.User
	err := db.Where("email = ?", email).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user = models.User{
			Email:        email,
			Name:         "Administrator",
			Role:         models.RoleAdmin,
			Active:       true,
			Staff:        true,
			Superuser:    true,
			PasswordHash: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Info("bootstrap admin created", "email", email)
		return nil

	case err != nil:
		return err
	}

	// Account exists: make sure it can actually administrate and log in.
	changed := false
	if !user.IsAdmin() {
		user.Role = models.RoleAdmin
		user.Staff = true
		changed = true
	}
	if user.PasswordHash == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hashed)
		changed = true
	}
	if changed {
		if err := db.Save(&user).Error; err != nil {
			return err
		}
		log.Info("bootstrap admin repaired", "email", email)
	}
	return nil
}
