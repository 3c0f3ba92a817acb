package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kaungsithu202/Tide-Focus/domain"
	"github.com/kaungsithu202/Tide-Focus/internal/config"
	httpapi "github.com/kaungsithu202/Tide-Focus/internal/http"
	"github.com/kaungsithu202/Tide-Focus/internal/http/handlers"
	"github.com/kaungsithu202/Tide-Focus/internal/http/middleware"
	"github.com/kaungsithu202/Tide-Focus/internal/infrastructure/auth"
	"github.com/kaungsithu202/Tide-Focus/internal/infrastructure/cache"
	"github.com/kaungsithu202/Tide-Focus/internal/infrastructure/database"
	"github.com/kaungsithu202/Tide-Focus/internal/infrastructure/repositories"
	"github.com/kaungsithu202/Tide-Focus/internal/services"
)

// defaultPolicies seeds the policy store on first boot so the role-gated
// route groups work out of the box.
var defaultPolicies = [][]string{
	{domain.RoleAdmin, "/api/admin/*", "(GET|POST|PUT|DELETE)"},
	{domain.RoleAdmin, "/api/user/*", "(GET|POST|PUT|DELETE)"},
	{domain.RoleUser, "/api/user/*", "(GET|POST|PUT|DELETE)"},
}

// Run wires every layer together and serves HTTP until the process exits
func Run(cfg *config.Config, logger zerolog.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	db, err := database.Open(cfg.DSN)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	redisClient := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	casbinSvc, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
	if err != nil {
		return fmt.Errorf("failed to initialize casbin: %w", err)
	}
	if err := seedPolicies(casbinSvc, logger); err != nil {
		return err
	}

	userRepo := repositories.NewUserRepository(db)
	tokenRepo := repositories.NewTokenRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)

	if err := tokenRepo.DeleteExpiredInvalidated(ctx, time.Now()); err != nil {
		logger.Warn().Err(err).Msg("failed to prune expired denylist entries")
	}

	passwordSvc := auth.NewPasswordService()
	tokenSvc := auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	twoFactorSvc := auth.NewTOTPService(cfg.TwoFAIssuer)
	pendingStore := cache.NewPendingLoginStore(redisClient.Client, cfg.TempTokenTTL)

	authSvc := services.NewAuthService(userRepo, tokenRepo, pendingStore, passwordSvc, tokenSvc, twoFactorSvc)
	sessionSvc := services.NewSessionService(sessionRepo, categoryRepo)
	categorySvc := services.NewCategoryService(categoryRepo)
	policySvc := services.NewPolicyService(casbinSvc.E)

	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:     handlers.NewAuthHandlers(authSvc),
		Session:  handlers.NewSessionHandlers(sessionSvc),
		Category: handlers.NewCategoryHandlers(categorySvc),
		Policy:   handlers.NewPolicyHandlers(policySvc),
		AuthMW:   middleware.NewAuthMW(tokenSvc, tokenRepo),
		RoleMW:   middleware.NewRoleMW(services.NewCasbinEnforcerWrapper(casbinSvc.E)),
		Logger:   logger,
	})

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("server listening")
	return router.Run(addr)
}

func seedPolicies(casbinSvc *auth.CasbinService, logger zerolog.Logger) error {
	existing, err := casbinSvc.E.GetPolicy()
	if err != nil {
		return fmt.Errorf("failed to read policies: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, p := range defaultPolicies {
		if _, err := casbinSvc.E.AddPolicy(p[0], p[1], p[2]); err != nil {
			return fmt.Errorf("failed to seed policy %v: %w", p, err)
		}
	}
	if err := casbinSvc.E.SavePolicy(); err != nil {
		return fmt.Errorf("failed to save seeded policies: %w", err)
	}
	logger.Info().Int("count", len(defaultPolicies)).Msg("seeded default policies")
	return nil
}
