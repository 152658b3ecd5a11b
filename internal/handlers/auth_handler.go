package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GiaHeplBro/SEO/internal/auth"
	apperrors "github.com/GiaHeplBro/SEO/internal/errors"
	"github.com/GiaHeplBro/SEO/internal/middleware"
	"github.com/GiaHeplBro/SEO/internal/models"
	"github.com/GiaHeplBro/SEO/internal/services"
)

// AuthHandler handles authentication-related requests.
type AuthHandler struct {
	userService services.UserServicer
	google      *auth.GoogleAuthenticator
}

// NewAuthHandler creates a new AuthHandler. google may be nil when Google
// sign-in is not configured.
func NewAuthHandler(userService services.UserServicer, google *auth.GoogleAuthenticator) *AuthHandler {
	return &AuthHandler{userService: userService, google: google}
}

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Password string `json:"password" binding:"required,min=8,max=128"`
	FullName string `json:"fullName" binding:"max=150"`
	Email    string `json:"email" binding:"omitempty,email,max=255"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// GoogleLoginRequest carries either a Google ID token (credential) or an
// authorization code from the popup flow.
type GoogleLoginRequest struct {
	Credential string `json:"credential"`
	Code       string `json:"code"`
}

// RefreshRequest represents the token refresh request payload.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserResponse represents the user data in the response.
type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

// AuthResponse represents the authentication response with a token pair.
type AuthResponse struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         UserResponse `json:"user"`
}

func userResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Role:     user.Role,
		Avatar:   user.Avatar,
	}
}

// respondWithTokens issues an access/refresh pair for the user.
func respondWithTokens(c *gin.Context, user *models.User, status int) {
	accessToken, err := middleware.GenerateAccessToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	refreshToken, err := middleware.GenerateRefreshToken(user)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}

	c.JSON(status, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         userResponse(user),
	})
}

// Register handles user registration
// @Summary     Register a new user
// @Description Register a new user with username and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RegisterRequest true "User registration data"
// @Success     201 {object} AuthResponse "User registered and tokens generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Username taken"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.CreateUser(req.Username, req.Password, req.FullName, req.Email)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondWithTokens(c, user, http.StatusCreated)
}

// Login handles user login
// @Summary     Login user
// @Description Authenticate a user and get a token pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body LoginRequest true "User login credentials"
// @Success     200 {object} AuthResponse "User authenticated and tokens generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid credentials"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	user, err := h.userService.AttemptLogin(req.Username, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondWithTokens(c, user, http.StatusOK)
}

// GoogleLogin handles Google sign-in
// @Summary     Login with Google
// @Description Authenticate with a Google ID token or authorization code
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body GoogleLoginRequest true "Google credential or code"
// @Success     200 {object} AuthResponse "User authenticated and tokens generated"
// @Failure     400 {object} ErrorResponse "Google sign-in not configured"
// @Failure     401 {object} ErrorResponse "Invalid Google token"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/google [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if h.google == nil {
		respondWithError(c, apperrors.ErrGoogleNotConfigured)
		return
	}

	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	if req.Credential == "" && req.Code == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "credential or code is required"))
		return
	}

	var profile *auth.Profile
	var err error
	if req.Credential != "" {
		profile, err = h.google.VerifyCredential(c.Request.Context(), req.Credential)
	} else {
		profile, err = h.google.ExchangeCode(c.Request.Context(), req.Code)
	}
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInvalidGoogleToken, err))
		return
	}
	if !profile.EmailVerified {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidGoogleToken, "Google account email is not verified"))
		return
	}

	user, err := h.userService.GetOrCreateGoogleUser(profile.Email, profile.Name, profile.Picture)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondWithTokens(c, user, http.StatusOK)
}

// Refresh exchanges a refresh token for a new token pair
// @Summary     Refresh tokens
// @Description Exchange a valid refresh token for a new access/refresh pair
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body RefreshRequest true "Refresh token"
// @Success     200 {object} AuthResponse "New tokens generated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid refresh token"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	claims, err := middleware.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrUnauthorized, "Invalid refresh token"))
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	respondWithTokens(c, user, http.StatusOK)
}

// Me returns the authenticated user's profile
// @Summary     Get current user
// @Description Get the authenticated user's profile
// @Tags        auth
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} UserResponse "Current user"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	user, err := h.userService.GetUserByID(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, userResponse(user))
}
