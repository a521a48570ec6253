package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wheelyhq/dealer-portal/internal/container"
	handlers "github.com/wheelyhq/dealer-portal/internal/interface/http"
	"github.com/wheelyhq/dealer-portal/internal/interface/middleware"
)

// OnboardingModule wires the signup flow routes.
// POST /api/signup/email    — issue a verification token
// GET|POST /api/signup/verify — redeem a token (link clicks arrive as GET)
// POST /api/signup/complete — bind username/password to the account
type OnboardingModule struct {
	Handler *handlers.OnboardingHandler
}

func NewOnboardingModule(h *handlers.OnboardingHandler) *OnboardingModule {
	return &OnboardingModule{Handler: h}
}

func (m *OnboardingModule) Register(rg *gin.RouterGroup) {
	issueLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	verifyLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath())
	completeLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/signup/email", issueLimiter, m.Handler.IssueVerification)
	rg.GET("/signup/verify", verifyLimiter, m.Handler.ValidateToken)
	rg.POST("/signup/verify", verifyLimiter, m.Handler.ValidateToken)
	rg.POST("/signup/complete", completeLimiter, m.Handler.CompleteSetup)
}
