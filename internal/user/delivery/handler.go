package delivery

import (
	"errors"
	"net/http"

	"connect-backend/internal/user/domain"
	"connect-backend/internal/user/dto"
	"connect-backend/internal/user/usecase"

	"github.com/gin-gonic/gin"
)

// UserHandler handles account, session and follow-graph HTTP requests
type UserHandler struct {
	userUsecase   usecase.UserUsecase
	authUsecase   usecase.AuthUsecase
	followUsecase usecase.FollowUsecase
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userUc usecase.UserUsecase, authUc usecase.AuthUsecase, followUc usecase.FollowUsecase) *UserHandler {
	return &UserHandler{
		userUsecase:   userUc,
		authUsecase:   authUc,
		followUsecase: followUc,
	}
}

// Register creates an account and returns its first token pair
// POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, pair, err := h.userUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("X-User-Id", userID)
	c.JSON(http.StatusCreated, pair)
}

// Login exchanges credentials for a token pair
// POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.userUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Refresh exchanges a refresh token for a new pair
// POST /api/users/refresh
func (h *UserHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.authUsecase.Refresh(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Edit updates an account; all existing sessions are ended
// PUT /api/users/edit
func (h *UserHandler) Edit(c *gin.Context) {
	var req dto.EditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userUsecase.Edit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Delete removes an account, its tokens and its outgoing follow edges
// DELETE /api/users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userUsecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RevokeAccess deletes the user's stored tokens
// DELETE /api/users/revoke/:id
func (h *UserHandler) RevokeAccess(c *gin.Context) {
	if err := h.userUsecase.RevokeAccess(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetUser returns a user projection, served through the lookup cache
// GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userUsecase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Follow adds a follow edge
// POST /api/users/follow
func (h *UserHandler) Follow(c *gin.Context) {
	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.followUsecase.Follow(c.Request.Context(), req.UserID, req.TargetID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// Unfollow removes a follow edge
// POST /api/users/unfollow
func (h *UserHandler) Unfollow(c *gin.Context) {
	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.followUsecase.Unfollow(c.Request.Context(), req.UserID, req.TargetID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

// GetFollowers lists the user's followers
// GET /api/users/:id/followers
func (h *UserHandler) GetFollowers(c *gin.Context) {
	followers, err := h.followUsecase.GetFollowers(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, followers)
}

// respondError maps core error kinds to status codes. Only the transport
// layer knows about HTTP.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrAuthentication):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
