package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"pasarumkm/internal/domain"
	"pasarumkm/internal/middleware"
)

type AuthHandler struct {
	users domain.UserUseCase
	log   *logrus.Logger
}

func NewAuthHandler(users domain.UserUseCase, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		users: users,
		log:   logger,
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Register")
	var req RegisterRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	user, err := h.users.RegisterUser(c.Request.Context(), req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Login")
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	auth, err := h.users.AuthenticateUser(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, auth)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "Logout")

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid Authorization header format"})
		return
	}

	if err := h.users.Logout(c.Request.Context(), parts[1]); err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "GetProfile")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	profile, err := h.users.GetUserProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "UpdateProfile")
	userID := c.GetInt64(middleware.ContextUserIDKey)

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlerLogger.Warnf("Failed to bind request: %v", err)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	profile, err := h.users.UpdateProfile(c.Request.Context(), userID, req.Name, req.Phone)
	if err != nil {
		respondWithError(c, handlerLogger, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}
