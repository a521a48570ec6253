package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wheelyhq/dealer-portal/internal/container"
	handlers "github.com/wheelyhq/dealer-portal/internal/interface/http"
	"github.com/wheelyhq/dealer-portal/internal/interface/middleware"
)

type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP()) // 10 req/min per IP

	rg.POST("/login", loginLimiter, m.Handler.Login)
}
