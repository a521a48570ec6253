package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/wheelyhq/dealer-portal/internal/application"
	"github.com/wheelyhq/dealer-portal/pkg/response"
	"github.com/wheelyhq/dealer-portal/pkg/validation"
)

type OnboardingHandler struct {
	Svc    *application.OnboardingService
	Logger *logrus.Logger
}

func NewOnboardingHandler(svc *application.OnboardingService, logger *logrus.Logger) *OnboardingHandler {
	return &OnboardingHandler{Svc: svc, Logger: logger}
}

type issueVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type validateTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type completeSetupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// IssueVerification POST /api/signup/email {email}
// Issues a fresh verification token and queues the email carrying it.
// The token itself never appears in the response or the logs.
func (h *OnboardingHandler) IssueVerification(c *gin.Context) {
	var req issueVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	_, _, err := h.Svc.IssueToken(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error[any](c, http.StatusNotFound, "email not found in system", nil)
			return
		}
		h.Logger.WithError(err).WithField("email", req.Email).Error("issue verification token failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	response.Success[any](c, http.StatusOK, gin.H{"sent": true}, "verification email sent")
}

// ValidateToken GET|POST /api/signup/verify
// Accepts the token as a query param (the emailed link) or JSON body.
func (h *OnboardingHandler) ValidateToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		var req validateTokenRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error[any](c, http.StatusBadRequest, "token is required", validation.ToDetails(err))
			return
		}
		token = req.Token
	}

	email, err := h.Svc.ValidateAndConsume(c.Request.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrInvalidOrUsedToken):
			response.Error[any](c, http.StatusBadRequest, "invalid or expired token", nil)
		case errors.Is(err, application.ErrTokenExpired):
			response.Error[any](c, http.StatusBadRequest, "token has expired", nil)
		default:
			h.Logger.WithError(err).Error("validate token failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"email": email}, "email verified successfully")
}

// CompleteSetup POST /api/signup/complete {email, username, password, role}
func (h *OnboardingHandler) CompleteSetup(c *gin.Context) {
	var req completeSetupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "all fields are required", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.CompleteSetup(c.Request.Context(), req.Email, req.Username, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, application.ErrRoleMismatch):
			response.Error[any](c, http.StatusForbidden, "you are not authorized for the "+req.Role+" role", nil)
		case errors.Is(err, application.ErrUsernameTaken):
			response.Error[any](c, http.StatusBadRequest, "username is already taken", nil)
		case errors.Is(err, application.ErrWeakPassword):
			response.Error[any](c, http.StatusBadRequest, "password must be at least 6 characters", nil)
		default:
			h.Logger.WithError(err).WithField("email", req.Email).Error("complete setup failed")
			response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"email":    u.Email,
			"username": u.Username,
			"role":     u.Role,
		},
	}, "signup completed successfully")
}
