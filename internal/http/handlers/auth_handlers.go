package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Vladislav1234512345/topten/domain"
	"github.com/Vladislav1234512345/topten/internal/http/middleware"
)

// CookieSettings controls the refresh token cookie written by the auth
// response envelopes.
type CookieSettings struct {
	Name   string
	MaxAge int
	Secure bool
}

// AuthHandlers handles identity verification and credential issuance requests.
type AuthHandlers struct {
	authSvc domain.AuthService
	cookie  CookieSettings
	logger  *zap.Logger
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(authSvc domain.AuthService, cookie CookieSettings, logger *zap.Logger) *AuthHandlers {
	return &AuthHandlers{
		authSvc: authSvc,
		cookie:  cookie,
		logger:  logger,
	}
}

// SendCodeRequest asks for a verification code to be delivered out of band.
// Password is required only for the login variant.
type SendCodeRequest struct {
	Phone    string `json:"phone_number" binding:"required"`
	Password string `json:"password,omitempty"`
}

// SignupRequest represents the signup submission
type SignupRequest struct {
	Phone     string `json:"phone_number" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	Code      string `json:"code" binding:"required,len=6,numeric"`
}

// LoginRequest represents the login submission
type LoginRequest struct {
	Phone    string `json:"phone_number" binding:"required"`
	Password string `json:"password" binding:"required"`
	Code     string `json:"code" binding:"required,len=6,numeric"`
}

// ResetPasswordRequest carries the two new-password fields; the reset key
// arrives as the path parameter.
type ResetPasswordRequest struct {
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required"`
}

// SendVerificationCode handles both signup and login code requests: with a
// password the request is treated as a login code for an existing account,
// without one as a signup code for a new account.
func (h *AuthHandlers) SendVerificationCode(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var err error
	if req.Password != "" {
		err = h.authSvc.SendLoginCode(c.Request.Context(), req.Phone, req.Password)
	} else {
		err = h.authSvc.SendSignupCode(c.Request.Context(), req.Phone)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

// SendResetKey handles password reset key requests
func (h *AuthHandlers) SendResetKey(c *gin.Context) {
	var req SendCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.RequestPasswordReset(c.Request.Context(), req.Phone); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset key sent"})
}

// Signup handles user registration
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Signup(c.Request.Context(), req.Phone, req.Password, req.FirstName, req.Code)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setTokens(c, result.Tokens)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful",
		"user":    userEnvelope(result.User),
	})
}

// Login handles user login
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), req.Phone, req.Password, req.Code)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setTokens(c, result.Tokens)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userEnvelope(result.User),
	})
}

// ResetPassword handles the reset submission addressed by the delivered key
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.authSvc.ResetPassword(c.Request.Context(), c.Param("key"), req.Password, req.PasswordConfirm)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// Refresh re-issues a token pair for the identity the refresh gate resolved.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token not found"})
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), user)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setTokens(c, result.Tokens)
	c.JSON(http.StatusOK, gin.H{"message": "Tokens refreshed"})
}

// Me returns the authenticated identity.
func (h *AuthHandlers) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Bearer token not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userEnvelope(user)})
}

// setTokens writes the issuance envelope: access token in the Authorization
// header, refresh token in an http-only SameSite=Strict cookie.
func (h *AuthHandlers) setTokens(c *gin.Context, tokens domain.TokenPair) {
	c.Header("Authorization", "Bearer "+tokens.AccessToken)
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.cookie.Name, tokens.RefreshToken, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)
}

func userEnvelope(user *domain.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"phone_number": user.Phone,
		"first_name":   user.FirstName,
		"role":         user.Role.String(),
		"is_active":    user.IsActive,
	}
}

// writeError maps each domain error kind to its distinct client-visible
// status so callers can decide whether to request a new code,
// re-authenticate, or back off.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests, try again later"})
	case errors.Is(err, domain.ErrInvalidCode):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid verification code"})
	case errors.Is(err, domain.ErrInvalidPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
	case errors.Is(err, domain.ErrInvalidResetKey):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password reset key"})
	case errors.Is(err, domain.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
	case errors.Is(err, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrUserInactive):
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is inactive"})
	case errors.Is(err, domain.ErrTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token expired"})
	case errors.Is(err, domain.ErrTokenInvalid), errors.Is(err, domain.ErrWrongTokenType), errors.Is(err, domain.ErrTokenNotFound):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient role"})
	case errors.Is(err, domain.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
