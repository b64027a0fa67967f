package handler

import (
	"errors"
	"net/http"

	"course_platform/internal/middleware"
	"course_platform/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	service       service.AuthService
	googleService service.GoogleAuthService
	exposeErrors  bool
	log           zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler. When exposeErrors is set
// (development only), 500 responses carry the underlying error text.
func NewAuthHandler(s service.AuthService, g service.GoogleAuthService, exposeErrors bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{service: s, googleService: g, exposeErrors: exposeErrors, log: log}
}

func (h *AuthHandler) internalError(c *gin.Context, err error, fallback string) {
	h.log.Error().Err(err).Str("path", c.FullPath()).Msg("internal error")
	message := fallback
	if h.exposeErrors {
		message = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": message})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string  `json:"name" binding:"required"`
		Email    string  `json:"email" binding:"required,email"`
		Password string  `json:"password" binding:"required,min=8"`
		Phone    *string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Phone)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": err.Error()})
			return
		}
		h.internalError(c, err, "Failed to register user")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "User registered successfully",
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// One message for both unknown email and wrong password
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": service.ErrInvalidCredentials.Error()})
			return
		}
		h.internalError(c, err, "Failed to login")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	var req struct {
		OldPassword     string `json:"old_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	err := h.service.ChangePassword(c.Request.Context(), identity.UserID, req.OldPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyPasswordField),
			errors.Is(err, service.ErrPasswordMismatch),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordUnchanged):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, service.ErrInvalidOldPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
		default:
			h.internalError(c, err, "Failed to change password")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.internalError(c, err, "Failed to process request")
		return
	}

	// Same answer whether or not the account exists
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "If an account exists, a reset link was sent"})
}

func (h *AuthHandler) Verify(c *gin.Context) {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Token is valid",
		"data":    identity,
	})
}

func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req struct {
		IDToken string `json:"id_token"`
		Claim   *struct {
			Subject string `json:"subject"`
			Email   string `json:"email"`
			Name    string `json:"name"`
			Picture string `json:"picture"`
		} `json:"claim"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request: " + err.Error()})
		return
	}

	input := service.GoogleLoginInput{IDToken: req.IDToken}
	if req.Claim != nil {
		input.Claim = &service.VerifiedClaim{
			Subject: req.Claim.Subject,
			Email:   req.Claim.Email,
			Name:    req.Claim.Name,
			Picture: req.Claim.Picture,
		}
	}

	user, token, err := h.googleService.Login(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingGoogleInput), errors.Is(err, service.ErrMissingEmailClaim):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		case errors.Is(err, service.ErrGoogleTokenInvalid):
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": service.ErrGoogleTokenInvalid.Error()})
		default:
			h.internalError(c, err, "Failed to login with Google")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"user":  user,
			"token": token,
		},
	})
}

// RegisterAuthRoutes registers auth routes. rateLimitMW guards the public
// credential endpoints; authMW guards the token-bearing ones.
func (h *AuthHandler) RegisterAuthRoutes(rg *gin.RouterGroup, rateLimitMW, authMW gin.HandlerFunc) {
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/register", rateLimitMW, h.Register)
		authGroup.POST("/login", rateLimitMW, h.Login)
		authGroup.POST("/forgot-password", rateLimitMW, h.ForgotPassword)
		authGroup.POST("/google", h.GoogleLogin)
		authGroup.POST("/change-password", authMW, h.ChangePassword)
		authGroup.GET("/verify", authMW, h.Verify)
	}
}
