package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/OldStager01/gpa-tracker/internal/auth"
	"github.com/OldStager01/gpa-tracker/internal/logger"
	"github.com/OldStager01/gpa-tracker/pkg/database/queries"
)

// UserFinder looks up operators by username.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*queries.User, error)
}

type CookieSettings struct {
	Name   string
	Secure bool
}

type AuthHandler struct {
	users       UserFinder
	authService *auth.Service
	cookie      CookieSettings
}

func NewAuthHandler(users UserFinder, authService *auth.Service, cookie CookieSettings) *AuthHandler {
	return &AuthHandler{
		users:       users,
		authService: authService,
		cookie:      cookie,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"admin"`
	Password string `json:"password" binding:"required" example:"Secr3t!pass"`
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in" example:"86400"`
	Username  string `json:"username" example:"admin"`
}

// Login godoc
// @Summary Log in
// @Description Exchange operator credentials for a JWT. The token is also set as an HTTP-only cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 429 {object} map[string]string "Too many attempts"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, queries.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		logger.ErrorCtxf(c.Request.Context(), "Failed to load user %q: %v", req.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.authService.GenerateToken(user.ID, user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	maxAge := int(h.authService.Duration().Seconds())

	if h.cookie.Name != "" {
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresIn: maxAge,
		Username:  user.Username,
	})
}
