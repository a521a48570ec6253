package router

import (
	"github.com/wheelyhq/dealer-portal/internal/application"
	"github.com/wheelyhq/dealer-portal/internal/container"
	pginfra "github.com/wheelyhq/dealer-portal/internal/infrastructure/postgres"
	handlers "github.com/wheelyhq/dealer-portal/internal/interface/http"
	"github.com/wheelyhq/dealer-portal/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	tokens := pginfra.NewTokenRepository(pool)

	onboardingSvc := application.NewOnboardingService(
		users,
		tokens,
		container.GetRabbitPub(),
		logger,
		cfg.AppName,
		cfg.VerifyTokenTTL,
		cfg.BcryptCost,
		cfg.VerifyEmailURL,
		cfg.MailSendEnabled,
	)
	authSvc := application.NewAuthService(users, logger)

	r.Add(modules.NewOnboardingModule(handlers.NewOnboardingHandler(onboardingSvc, logger)))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
