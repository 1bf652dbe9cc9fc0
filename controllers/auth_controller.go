package controllers

import (
	"net/http"
	"time"

	"clothing-store/middleware"
	"clothing-store/models"
	"clothing-store/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	refreshCookieName = "refreshToken"
	refreshCookiePath = "/api"
)

type AuthController struct {
	auth         *services.AuthService
	refreshTTL   time.Duration
	secureCookie bool
	log          logrus.FieldLogger
}

func NewAuthController(auth *services.AuthService, refreshTTL time.Duration, secureCookie bool, log logrus.FieldLogger) *AuthController {
	return &AuthController{auth: auth, refreshTTL: refreshTTL, secureCookie: secureCookie, log: log}
}

// @Summary Register
// @Description Create an account and sign in. The refresh token is set as an HttpOnly cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.SignupRequest true "Signup data"
// @Success 201 {object} models.Response{data=models.AuthResponse}
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /api/signup [post]
func (ctrl *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	result, err := ctrl.auth.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	ctrl.setRefreshCookie(c, result.RefreshToken)
	respondCreated(c, "Signup successful", models.AuthResponse{AccessToken: result.AccessToken, User: result.User})
}

// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Credentials"
// @Success 200 {object} models.Response{data=models.AuthResponse}
// @Failure 401 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Router /api/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	result, err := ctrl.auth.Login(c.Request.Context(), req, c.ClientIP())
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}

	ctrl.setRefreshCookie(c, result.RefreshToken)
	respondOK(c, "Login successful", models.AuthResponse{AccessToken: result.AccessToken, User: result.User})
}

// @Summary Refresh access token
// @Description Reads the refreshToken cookie and returns a new access token.
// @Tags Auth
// @Produce json
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /api/refresh [post]
func (ctrl *AuthController) Refresh(c *gin.Context) {
	token, _ := c.Cookie(refreshCookieName)

	accessToken, err := ctrl.auth.Refresh(c.Request.Context(), token)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Token refreshed", gin.H{"accessToken": accessToken})
}

// @Summary Logout
// @Tags Auth
// @Produce json
// @Success 200 {object} models.Response
// @Router /api/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, refreshCookiePath, "", ctrl.secureCookie, true)
	respondOK(c, "Logged out", nil)
}

// @Summary Request a password reset
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.ForgotPasswordRequest true "Account email"
// @Success 200 {object} models.Response
// @Failure 404 {object} models.ErrorResponse
// @Router /api/forgot-password [post]
func (ctrl *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	if err := ctrl.auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Password reset link sent to your email", nil)
}

// @Summary Reset password
// @Tags Auth
// @Accept json
// @Produce json
// @Param token path string true "Reset token from the email link"
// @Param request body models.ResetPasswordRequest true "New password"
// @Success 200 {object} models.Response
// @Failure 401 {object} models.ErrorResponse
// @Router /api/reset-password/{token} [post]
func (ctrl *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	if err := ctrl.auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Password has been reset", nil)
}

// @Summary Get profile
// @Tags Profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.Response{data=models.PublicUser}
// @Failure 401 {object} models.ErrorResponse
// @Router /api/user/profile [get]
func (ctrl *AuthController) GetProfile(c *gin.Context) {
	profile, err := ctrl.auth.GetProfile(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Profile retrieved", profile)
}

// @Summary Update profile
// @Description Only the fields present in the body change.
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.Response{data=models.PublicUser}
// @Router /api/user/profile [put]
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	profile, err := ctrl.auth.UpdateProfile(c.Request.Context(), middleware.GetUserID(c), req)
	if err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Profile updated", profile)
}

// @Summary Change password
// @Tags Profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body models.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} models.Response
// @Router /api/user/change-password [put]
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	if !bindJSON(c, ctrl.log, &req) {
		return
	}

	if err := ctrl.auth.ChangePassword(c.Request.Context(), middleware.GetUserID(c), req); err != nil {
		respondError(c, ctrl.log, err)
		return
	}
	respondOK(c, "Password changed", nil)
}

func (ctrl *AuthController) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, int(ctrl.refreshTTL.Seconds()), refreshCookiePath, "", ctrl.secureCookie, true)
}
