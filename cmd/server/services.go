package main

import (
	"fmt"

	"codeberg.org/lendora/server/internal/auth"
	"codeberg.org/lendora/server/internal/config"
	"codeberg.org/lendora/server/internal/metrics"
	"codeberg.org/lendora/server/internal/ratelimit"
	"codeberg.org/lendora/server/lendora/profiles"
	"codeberg.org/lendora/server/lendora/sessions"
)

// creates and configures all services
func InitializeServices(cfg *config.Config, deps Dependencies) (*Services, error) {
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create token manager: %w", err)
	}

	var revocations sessions.Revocations = sessions.NewMemoryRevocations()
	if deps.Redis != nil {
		revocations = sessions.NewRedisRevocations(deps.Redis)
	}

	collector := metrics.NewCollector(deps.Registry)

	issuer := sessions.NewIssuer(deps.Verifier, deps.Directory, tokens, revocations,
		sessions.WithMetrics(collector),
	)

	profileService := profiles.NewService(deps.Directory, issuer,
		profiles.WithMetrics(collector),
	)

	loginLimiter, err := ratelimit.NewLoginLimiter(fmt.Sprintf("%d-M", cfg.LoginRateLimit), deps.Redis)
	if err != nil {
		return nil, err
	}

	var adminAuth *auth.AdminAuth
	if cfg.AdminEnabled() {
		adminAuth, err = auth.NewAdminAuth(cfg.SessionSecret, cfg.AdminID, cfg.AdminPasswordHash, cfg.IsProduction())
		if err != nil {
			return nil, fmt.Errorf("failed to configure admin login: %w", err)
		}
	}

	return &Services{
		Issuer:         issuer,
		Profiles:       profileService,
		Metrics:        collector,
		AdminAuth:      adminAuth,
		Revocations:    revocations,
		LoginLimiter:   loginLimiter,
		ProfileLimiter: ratelimit.NewUserLimiter(ratelimit.DefaultUserLimiterConfig()),
	}, nil
}
