package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Vladislav1234512345/topten/domain"
)

// UserHandlers exposes the role-gated administration surface consumed by the
// downstream CRUD side of the service.
type UserHandlers struct {
	userRepo domain.UserRepository
	logger   *zap.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userRepo domain.UserRepository, logger *zap.Logger) *UserHandlers {
	return &UserHandlers{
		userRepo: userRepo,
		logger:   logger,
	}
}

// UpdateRoleRequest carries the target role name.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// List returns all users. Stuff-gated.
func (h *UserHandlers) List(c *gin.Context) {
	users, err := h.userRepo.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	envelopes := make([]gin.H, 0, len(users))
	for _, user := range users {
		envelopes = append(envelopes, userEnvelope(user))
	}

	c.JSON(http.StatusOK, gin.H{"users": envelopes})
}

// UpdateRole changes a user's role. Admin-gated. Tokens issued before the
// change keep the old role snapshot until their next refresh.
func (h *UserHandlers) UpdateRole(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	if err := h.userRepo.UpdateRole(c.Request.Context(), uint(id), role); err != nil {
		writeError(c, err)
		return
	}

	h.logger.Info("user role updated", zap.Uint64("user_id", id), zap.String("role", role.String()))
	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// Deactivate disables an account. Admin-gated. The fresh identity resolve in
// the auth gate makes this take effect on the account's next request.
func (h *UserHandlers) Deactivate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return
	}

	if err := h.userRepo.SetActive(c.Request.Context(), uint(id), false); err != nil {
		writeError(c, err)
		return
	}

	h.logger.Info("user deactivated", zap.Uint64("user_id", id))
	c.JSON(http.StatusOK, gin.H{"message": "User deactivated"})
}
