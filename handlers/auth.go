package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"slotswapper/models"
	"slotswapper/services/user"
	"slotswapper/utils"
)

// AuthHandler exposes the identity endpoints.
type AuthHandler struct {
	Svc user.UserService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

// RegisterUserHandler creates a new user account and returns a token.
func (h *AuthHandler) RegisterUserHandler(c *gin.Context) {
	var input models.User
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Svc.Register(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			utils.JSONError(c, http.StatusConflict, err.Error(), "")
			return
		}
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// AuthenticateUserHandler verifies credentials and returns a fresh token.
func (h *AuthHandler) AuthenticateUserHandler(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Svc.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "login failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RevokeUserAuthTokenHandler invalidates the caller's current token.
func (h *AuthHandler) RevokeUserAuthTokenHandler(c *gin.Context) {
	userID := c.GetString("userID")
	if err := h.Svc.RevokeToken(c.Request.Context(), userID); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to revoke token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "token revoked"})
}
