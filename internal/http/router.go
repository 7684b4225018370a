package api

import (
	"log/slog"
	stdhttp "net/http"

	intconfig "spacecrew/internal/config"
	h "spacecrew/internal/http/handlers"
	"spacecrew/internal/http/middleware"
	"spacecrew/internal/services"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, crew *services.CrewMemberService) *gin.Engine {
	h.RegisterValidators()

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		slog.Warn("failed to set trusted proxies", "error", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":      "route not found",
			"code":       "not_found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": middleware.GetRequestID(c),
		})
	})

	write := []gin.HandlerFunc{middleware.RequireBearer(env.JWTSecret)}
	if env.JWTSecret != "" && len(env.WriteRoles) > 0 {
		write = append(write, middleware.RequireRoles(env.WriteRoles...))
	}

	crewHandler := h.NewCrewMemberHandler(crew, env.PublicBaseURL)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck(crew))
		api.GET("/routes", h.Routes)

		members := api.Group("/space-crew-members")
		members.GET("", crewHandler.List)
		members.GET("/roster.pdf", crewHandler.Roster)
		members.GET("/:id", crewHandler.Get)

		writes := members.Group("", write...)
		writes.POST("", crewHandler.Create)
		writes.PUT("/:id", crewHandler.Put)
		writes.PATCH("/:id", crewHandler.Patch)
		writes.DELETE("/:id", crewHandler.Delete)
	}

	h.SetRouter(r)
	return r
}
