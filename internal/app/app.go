package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Vladislav1234512345/topten/internal/config"
	httpx "github.com/Vladislav1234512345/topten/internal/http"
	"github.com/Vladislav1234512345/topten/internal/http/handlers"
	"github.com/Vladislav1234512345/topten/internal/http/middleware"
	"github.com/Vladislav1234512345/topten/internal/infrastructure/auth"
	"github.com/Vladislav1234512345/topten/internal/infrastructure/database"
	"github.com/Vladislav1234512345/topten/internal/infrastructure/notifications"
	"github.com/Vladislav1234512345/topten/internal/infrastructure/repositories"
	"github.com/Vladislav1234512345/topten/internal/services"
)

func Run(cfg *config.Config, logger *zap.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService()
	tokenSvc, err := auth.NewJWTService(cfg.JWTPrivateKeyPEM, cfg.JWTPublicKeyPEM, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		return err
	}
	notificationSvc := notifications.NewTwilioService(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom, logger)

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	verificationStore := repositories.NewVerificationStore(rdb.Client, repositories.VerificationConfig{
		CodeLength:     cfg.CodeLength,
		CodeTTL:        cfg.CodeTTL,
		ResetKeyLength: cfg.ResetKeyLength,
		ResetTTL:       cfg.ResetTTL,
	})

	authSvc := services.NewAuthService(userRepo, verificationStore, passwordSvc, tokenSvc, notificationSvc, cfg.CodeTTL, logger)

	// Handlers and middleware
	cookie := handlers.CookieSettings{
		Name:   cfg.RefreshCookieName,
		MaxAge: int(cfg.RefreshTTL.Seconds()),
		Secure: cfg.CookieSecure,
	}
	authH := handlers.NewAuthHandlers(authSvc, cookie, logger)
	userH := handlers.NewUserHandlers(userRepo, logger)
	jwtMW := middleware.NewAuthMW(tokenSvc, userRepo, cfg.RefreshCookieName)

	r := httpx.BuildRouter(authH, userH, jwtMW)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
