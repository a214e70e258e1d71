package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/skillgraph-backend/internal/http/handlers"
	httpMW "github.com/yungbote/skillgraph-backend/internal/http/middleware"
	"github.com/yungbote/skillgraph-backend/internal/observability"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler         *httpH.HealthHandler
	RealtimeHandler       *httpH.RealtimeHandler
	RecommendationHandler *httpH.RecommendationHandler
	SearchHandler         *httpH.SearchHandler
	ApplicationHandler    *httpH.ApplicationHandler
	ShortlistHandler      *httpH.ShortlistHandler
	ProfileHandler        *httpH.ProfileHandler
	NotificationHandler   *httpH.NotificationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	if cfg.Log != nil {
		r.Use(httpMW.RequestLogger(cfg.Log))
	}
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	protected := r.Group("/api")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/notifications/stream", cfg.RealtimeHandler.SSEStream)
		}

		// Recommendations
		if cfg.RecommendationHandler != nil {
			protected.GET("/recommendations/openings", cfg.RecommendationHandler.OpeningsForStudent)
			protected.GET("/recommendations/mentors", cfg.RecommendationHandler.MentorsForStudent)
			protected.GET("/recommendations/students", cfg.RecommendationHandler.StudentsForFaculty)
			protected.GET("/openings/:id/recommended-students", cfg.RecommendationHandler.StudentsForOpening)
			protected.GET("/openings/:id/match", cfg.RecommendationHandler.OpeningMatch)
		}

		// Semantic search
		if cfg.SearchHandler != nil {
			protected.GET("/search/students", cfg.SearchHandler.Students)
			protected.GET("/search/faculty", cfg.SearchHandler.Faculty)
		}

		// Applications
		if cfg.ApplicationHandler != nil {
			protected.POST("/openings/:id/apply", cfg.ApplicationHandler.Apply)
			protected.DELETE("/openings/:id/application", cfg.ApplicationHandler.Withdraw)
			protected.PUT("/applications/:id/status", cfg.ApplicationHandler.UpdateStatus)
			protected.GET("/applications", cfg.ApplicationHandler.List)
		}

		// Shortlist
		if cfg.ShortlistHandler != nil {
			protected.POST("/shortlist/:student_id", cfg.ShortlistHandler.Add)
			protected.GET("/shortlist", cfg.ShortlistHandler.List)
		}

		// Profile
		if cfg.ProfileHandler != nil {
			protected.PUT("/profile/concepts/:edge_type", cfg.ProfileHandler.ReplaceConcepts)
		}

		// Notifications
		if cfg.NotificationHandler != nil {
			protected.GET("/notifications", cfg.NotificationHandler.List)
			protected.GET("/notifications/unread-count", cfg.NotificationHandler.UnreadCount)
			protected.PUT("/notifications/read-all", cfg.NotificationHandler.MarkAllRead)
			protected.PUT("/notifications/:id/read", cfg.NotificationHandler.MarkRead)
		}
	}

	return r
}
