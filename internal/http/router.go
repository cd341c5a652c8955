package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/Vladislav1234512345/topten/domain"
	"github.com/Vladislav1234512345/topten/internal/http/handlers"
	"github.com/Vladislav1234512345/topten/internal/http/middleware"
)

func BuildRouter(ah *handlers.AuthHandlers, uh *handlers.UserHandlers, mw *middleware.AuthMW) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	v1 := r.Group("/v1")

	sms := v1.Group("/sms")
	sms.POST("/verification-code", ah.SendVerificationCode)
	sms.POST("/reset-password", ah.SendResetKey)

	auth := v1.Group("/auth")
	auth.POST("/signup", ah.Signup)
	auth.POST("/login", ah.Login)
	auth.POST("/reset-password/:key", ah.ResetPassword)
	auth.GET("/me", mw.RequireAuth(domain.TokenTypeAccess, domain.RoleUser), ah.Me)

	v1.POST("/jwt/refresh", mw.RequireAuth(domain.TokenTypeRefresh, domain.RoleUser), ah.Refresh)

	stuff := v1.Group("/stuff").Use(mw.RequireAuth(domain.TokenTypeAccess, domain.RoleStuff))
	stuff.GET("/users", uh.List)

	adm := v1.Group("/admin").Use(mw.RequireAuth(domain.TokenTypeAccess, domain.RoleAdmin))
	adm.POST("/users/:id/role", uh.UpdateRole)
	adm.POST("/users/:id/deactivate", uh.Deactivate)

	return r
}
