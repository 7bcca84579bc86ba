package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/wenqianzh/medpoint-backend/internal/config"
	"github.com/wenqianzh/medpoint-backend/internal/utils"
)

// AuthHandler issues access tokens for the admin console.  There is a
// single configured admin account; the password is verified against a
// bcrypt hash from configuration, never stored in plain text.
type AuthHandler struct {
	cfg config.Config
}

// NewAuthHandler constructs an AuthHandler bound to the loaded config.
func NewAuthHandler(cfg config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// Login handles POST /api/admin/login.  The request body must contain a
// JSON object with "username" and "password".  On success it returns a
// signed access token along with its expiry; on failure it returns 401
// without revealing which of the two fields was wrong.
func (h *AuthHandler) Login(c echo.Context) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Username == "" || body.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password are required"})
	}
	if body.Username != h.cfg.AdminUser {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPassHash), []byte(body.Password)); err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	token, err := utils.NewAdminToken(h.cfg.JWTSecret, body.Username, h.cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to issue token"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token":      token.Token,
		"expires_at": token.Exp.Format(time.RFC3339),
	})
}
