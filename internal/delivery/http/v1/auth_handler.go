package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rezaariel/insight-report-hub/internal/delivery/http/response"
	"github.com/rezaariel/insight-report-hub/internal/domain"
	"github.com/rezaariel/insight-report-hub/pkg/apperror"
	"github.com/rezaariel/insight-report-hub/pkg/auth"
)

type AuthHandler struct {
	authUC domain.AuthUsecase
}

func NewAuthHandler(public *gin.RouterGroup, protected *gin.RouterGroup, authUC domain.AuthUsecase, loginLimiter gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	// Public Routes
	publicAuth := public.Group("/auth")
	{
		publicAuth.POST("/login", loginLimiter, handler.Login)
		publicAuth.POST("/register", handler.Register)
	}

	// Protected Routes
	protectedAuth := protected.Group("/auth")
	{
		protectedAuth.POST("/logout", handler.Logout)
		protectedAuth.GET("/me", handler.Me)
		protectedAuth.PUT("/password", handler.ChangePassword)
	}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

// Register godoc
// @Summary      User Registration
// @Description  Register a new account with name, email and password. New accounts get the 'user' role.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile, err := h.authUC.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registrasi berhasil", profile)
}

// Login godoc
// @Summary      User Login
// @Description  Authenticate with email and password, returns a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200    {object}  response.Response{data=domain.TokenResponse}
// @Failure      401    {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login berhasil", token)
}

// Logout godoc
// @Summary      Logout
// @Description  Revokes the presented token until its natural expiry.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	raw, ok := c.Get("TokenClaims")
	claims, _ := raw.(*auth.Claims)
	if !ok || claims == nil {
		c.Error(apperror.Unauthorized("Invalid token"))
		return
	}

	if err := h.authUC.Logout(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Logout berhasil", nil)
}

// Me godoc
// @Summary      Current User
// @Description  Returns the authenticated user's profile and role.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200    {object}  response.Response{data=domain.Identity}
// @Failure      401    {object}  response.Response
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, err := h.authUC.Me(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "OK", identity)
}

// ChangePassword godoc
// @Summary      Change Password
// @Description  Sets a new password for the authenticated user.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        password  body      ChangePasswordRequest  true  "New Password"
// @Success      200    {object}  response.Response
// @Failure      400    {object}  response.Response
// @Failure      401    {object}  response.Response
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.authUC.ChangePassword(c.Request.Context(), req.NewPassword); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password berhasil diubah", nil)
}
