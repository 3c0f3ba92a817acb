package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/kaungsithu202/Tide-Focus/internal/http/handlers"
	"github.com/kaungsithu202/Tide-Focus/internal/http/middleware"
)

// Handlers bundles everything the router mounts
type Handlers struct {
	Auth     *handlers.AuthHandlers
	Session  *handlers.SessionHandlers
	Category *handlers.CategoryHandlers
	Policy   *handlers.PolicyHandlers
	AuthMW   *middleware.AuthMW
	RoleMW   *middleware.RoleMW
	Logger   zerolog.Logger
}

// NewRouter builds the HTTP route tree
func NewRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(h.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/login/2fa", h.Auth.TwoFALogin)

		guarded := auth.Group("", h.AuthMW.Guard())
		{
			guarded.POST("/refresh-token", h.Auth.Refresh)
			guarded.POST("/change-password", h.Auth.ChangePassword)
			guarded.POST("/logout", h.Auth.Logout)
			guarded.POST("/2fa/generate", h.Auth.GenerateTwoFA)
			guarded.POST("/2fa/validate", h.Auth.ValidateTwoFA)
			guarded.POST("/2fa/disable", h.Auth.DisableTwoFA)
		}
	}

	sessions := api.Group("/sessions", h.AuthMW.Guard())
	{
		sessions.POST("", h.Session.Start)
		sessions.GET("", h.Session.List)
		sessions.POST("/:id/pause", h.Session.Pause)
		sessions.POST("/:id/resume", h.Session.Resume)
		sessions.POST("/:id/complete", h.Session.Complete)
		sessions.DELETE("/:id", h.Session.Delete)
	}

	categories := api.Group("/categories", h.AuthMW.Guard())
	{
		categories.POST("", h.Category.Create)
		categories.GET("", h.Category.List)
		categories.PUT("/:id", h.Category.Update)
		categories.DELETE("/:id", h.Category.Delete)
	}

	user := api.Group("/user", h.AuthMW.Guard(), h.RoleMW.Enforce())
	{
		user.GET("/current", h.Auth.Me)
	}

	admin := api.Group("/admin", h.AuthMW.Guard(), h.RoleMW.Enforce())
	{
		admin.GET("/policies", h.Policy.List)
		admin.POST("/policies", h.Policy.Add)
		admin.DELETE("/policies", h.Policy.Remove)
	}

	return r
}
