package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"goldenview/realty/internal/auth"
	"goldenview/realty/internal/models"
	"goldenview/realty/internal/services"
)

// UserHandler handles sign-in and admin account management.
type UserHandler struct {
	users     services.IUserService
	jwtSecret string
	jwtTTL    time.Duration
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.IUserService, jwtSecret string, jwtTTL time.Duration) *UserHandler {
	return &UserHandler{users: users, jwtSecret: jwtSecret, jwtTTL: jwtTTL}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /v1/auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}
	token, err := auth.GenerateJWT(user.ID, string(user.Role), user.IsAdmin(), h.jwtSecret, h.jwtTTL)
	if err != nil {
		respondError(c, err, "Failed to issue token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

// ListUsers handles GET /v1/admin/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	role := models.Role(c.Query("role"))
	if role != "" && !role.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}
	users, err := h.users.ListUsers(c.Request.Context(), role)
	if err != nil {
		respondError(c, err, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateUser handles POST /v1/admin/users.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req services.NewUser
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.users.CreateUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create user")
		return
	}
	c.JSON(http.StatusCreated, user)
}

// DeleteUser handles DELETE /v1/admin/users/:id. Admins cannot delete themselves.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}
	caller, ok := mustCaller(c)
	if !ok {
		return
	}
	if caller.UserID == id {
		c.JSON(http.StatusConflict, gin.H{"error": "You cannot delete your own account"})
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
