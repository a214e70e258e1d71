package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillgraph-backend/internal/http"
	httpH "github.com/yungbote/skillgraph-backend/internal/http/handlers"
	httpMW "github.com/yungbote/skillgraph-backend/internal/http/middleware"
	"github.com/yungbote/skillgraph-backend/internal/observability"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/realtime"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health         *httpH.HealthHandler
	Realtime       *httpH.RealtimeHandler
	Recommendation *httpH.RecommendationHandler
	Search         *httpH.SearchHandler
	Application    *httpH.ApplicationHandler
	Shortlist      *httpH.ShortlistHandler
	Profile        *httpH.ProfileHandler
	Notification   *httpH.NotificationHandler
}

func wireHandlers(log *logger.Logger, cfg Config, services Services, sseHub *realtime.SSEHub) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:         httpH.NewHealthHandler(),
		Realtime:       httpH.NewRealtimeHandler(log, sseHub),
		Recommendation: httpH.NewRecommendationHandler(services.Recommendation, cfg.DefaultLimit),
		Search:         httpH.NewSearchHandler(services.Semantic),
		Application:    httpH.NewApplicationHandler(services.Application),
		Shortlist:      httpH.NewShortlistHandler(services.Shortlist),
		Profile:        httpH.NewProfileHandler(services.Profile),
		Notification:   httpH.NewNotificationHandler(services.Notification, cfg.NotificationListLimit),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Identity),
	}
}

func wireRouter(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:                   log,
		Metrics:               metrics,
		ServiceName:           cfg.ServiceName,
		AuthMiddleware:        middleware.Auth,
		HealthHandler:         handlers.Health,
		RealtimeHandler:       handlers.Realtime,
		RecommendationHandler: handlers.Recommendation,
		SearchHandler:         handlers.Search,
		ApplicationHandler:    handlers.Application,
		ShortlistHandler:      handlers.Shortlist,
		ProfileHandler:        handlers.Profile,
		NotificationHandler:   handlers.Notification,
	})
}
