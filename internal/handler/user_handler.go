package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studentbay/backend/internal/dto"
	"github.com/studentbay/backend/internal/middleware"
	"github.com/studentbay/backend/internal/service"
	"github.com/studentbay/backend/pkg/response"
	"github.com/studentbay/backend/pkg/validation"
)

type UserHandler struct {
	authService service.AuthService
	userService service.UserService
}

func NewUserHandler(authService service.AuthService, userService service.UserService) *UserHandler {
	return &UserHandler{authService: authService, userService: userService}
}

func (h *UserHandler) Register(c *gin.Context) {
	var in validation.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, verrs, err := h.authService.Register(c.Request.Context(), in)
	if len(verrs) > 0 {
		response.ValidationFailed(c, verrs)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "registration received, please verify your email", gin.H{
		"tempId":               result.TempID,
		"email":                result.Email,
		"requiresVerification": result.RequiresVerification,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var in dto.LoginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, verrs, err := h.authService.Login(c.Request.Context(), in)
	if len(verrs) > 0 {
		response.ValidationFailed(c, verrs)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "login successful", gin.H{
		"token": result.Token,
		"user":  result.UserData,
	})
}

// Logout is stateless: tokens simply expire. The endpoint exists so the
// client has a uniform call to clear its session against.
func (h *UserHandler) Logout(c *gin.Context) {
	response.OK(c, "logged out", nil)
}

func (h *UserHandler) Verify(c *gin.Context) {
	var in dto.VerifyRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	userID, err := h.authService.Verify(c.Request.Context(), in.Token, in.TempID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "email verified successfully", gin.H{"userId": userID})
}

func (h *UserHandler) SkipVerification(c *gin.Context) {
	var in dto.SkipVerifyRequest
	if err := c.ShouldBindJSON(&in); err != nil || in.TempID == "" {
		response.Fail(c, http.StatusBadRequest, "tempId is required")
		return
	}

	userID, err := h.authService.SkipVerification(c.Request.Context(), in.TempID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "account created without verification", gin.H{"userId": userID})
}

func (h *UserHandler) SendVerification(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	if _, err := h.authService.SendVerification(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "verification email sent", nil)
}

func (h *UserHandler) VerificationStatus(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	status, err := h.authService.VerificationStatus(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", status)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	user, err := h.userService.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", user)
}

// Profile serves a public profile by userId query parameter, falling
// back to the authenticated identity when none is given.
func (h *UserHandler) Profile(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		userID, _ = middleware.UserID(c)
	}
	if userID == "" {
		response.Fail(c, http.StatusBadRequest, "userId query parameter is required")
		return
	}

	user, err := h.userService.Profile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authentication required")
		return
	}

	var in validation.ProfileUpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	verrs, err := h.userService.UpdateProfile(c.Request.Context(), userID, in)
	if len(verrs) > 0 {
		response.ValidationFailed(c, verrs)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "profile updated", nil)
}
