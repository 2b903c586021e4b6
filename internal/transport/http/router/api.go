package router

import (
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"urbanvibe-api/internal/core/auth"
	"urbanvibe-api/internal/core/config"
	"urbanvibe-api/internal/core/server"
	"urbanvibe-api/internal/domain"
	"urbanvibe-api/internal/transport/http/handler"
	mdw "urbanvibe-api/internal/transport/http/middleware"
	resp "urbanvibe-api/internal/transport/http/response"
)

// Deps are the collaborators the public API needs.
type Deps struct {
	Listings domain.ListingRepository
	Tags     domain.TagRepository
	Users    domain.UserRepository
	Health   domain.HealthChecker
	IdP      auth.IdentityProvider
}

func NewAPIEngine(l *zap.Logger, cfg *config.Config, d Deps) *gin.Engine {
	r := gin.New()

	lim := cfg.Limits
	r.Use(
		mdw.RequestID(),
		ginzap.CustomRecoveryWithZap(l, true, func(c *gin.Context, _ any) {
			resp.Abort(c, resp.CodeServerError, "")
		}),
		server.CORS(cfg.CORS.AllowedOrigins),
		mdw.RateLimitPerIP(rate.Limit(lim.RPS), lim.Burst, 10*time.Minute),
		mdw.ConcurrencyLimit(lim.MaxConcurrent),
		mdw.MaxBodyBytes(lim.MaxBodyBytes),
		mdw.Timeout(time.Duration(lim.RequestTimeoutSec)*time.Second),
		mdw.Metrics("/metrics"),
		mdw.AccessLog(l),
	)
	r.NoRoute(func(c *gin.Context) { resp.Abort(c, resp.CodeNotFound, "") })

	health := handler.Health{DB: d.Health, Log: l}
	r.GET("/health", health.Handle)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	MountAll(api,
		handler.Locals{Repo: d.Listings},
		handler.Tags{Repo: d.Tags},
		handler.Users{Repo: d.Users, IdP: d.IdP},
	)

	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusMethodNotAllowed, resp.Resp{
			Code: http.StatusMethodNotAllowed, Msg: "Method Not Allowed", Data: struct{}{},
		})
	})
	return r
}
