package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/skillgraph-backend/internal/data/db"
	"github.com/yungbote/skillgraph-backend/internal/data/graph"
	"github.com/yungbote/skillgraph-backend/internal/observability"
	"github.com/yungbote/skillgraph-backend/internal/platform/envutil"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/realtime"
	"github.com/yungbote/skillgraph-backend/internal/realtime/bus"
)

type Options struct {
	// HTTP wires Postgres, realtime fan-out, the write services and the router.
	HTTP bool
}

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Clients  Clients
	Stores   Stores
	Services Services
	Metrics  *observability.Metrics

	DB     *gorm.DB
	SSEHub *realtime.SSEHub
	Bus    bus.Bus
	Router *gin.Engine

	pg           *db.PostgresService
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func NewLogger() (*logger.Logger, error) {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

func New(ctx context.Context, opts Options) (*App, error) {
	log, err := NewLogger()
	if err != nil {
		return nil, err
	}

	log.Info("Loading environment variables...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, err
	}

	a := &App{Log: log, Cfg: cfg}
	a.Metrics = observability.Init(log)
	a.otelShutdown = observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Env,
		Version:     cfg.Version,
	})

	a.Clients, err = wireClients(log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Stores = wireStores(a.Clients.Graph, log)
	a.Services = wireQueryServices(log, cfg, a.Clients, a.Stores)

	if !opts.HTTP {
		return a, nil
	}

	if err := cfg.RequireJWT(); err != nil {
		a.Close()
		return nil, err
	}

	a.pg, err = db.NewPostgresService(log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("init postgres: %w", err)
	}
	a.DB = a.pg.DB()
	if err := db.AutoMigrateAll(a.DB); err != nil {
		a.Close()
		return nil, fmt.Errorf("postgres automigrate: %w", err)
	}
	if err := db.EnsureNotificationIndexes(a.DB); err != nil {
		log.Warn("notification indexes not created", "error", err)
	}

	a.SSEHub = realtime.NewSSEHub(log)
	if envutil.String("REDIS_ADDR", "") != "" {
		a.Bus, err = bus.NewRedisBus(log)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("init redis bus: %w", err)
		}
	} else {
		a.Bus = bus.NewLocalBus(a.SSEHub)
	}

	repos := wireRepos(a.DB, log)
	a.Services = wireCommandServices(log, cfg, a.Clients, a.Stores, repos, a.Bus, a.Metrics, a.Services)

	handlers := wireHandlers(log, cfg, a.Services, a.SSEHub)
	middleware := wireMiddleware(log, a.Services)
	a.Router = wireRouter(log, cfg, a.Metrics, handlers, middleware)
	return a, nil
}

// EnsureSchema applies graph constraints and vector indexes sized to the embedder.
func (a *App) EnsureSchema(ctx context.Context) error {
	dims := graph.DefaultEmbeddingDimensions
	if a.Clients.Embedder != nil {
		dims = a.Clients.Embedder.Dimensions()
	}
	return graph.EnsureSchema(ctx, a.Clients.Graph, dims, a.Log)
}

// Start launches background loops: bus forwarding into the hub and collectors.
func (a *App) Start(ctx context.Context) error {
	if a == nil || a.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Bus != nil && a.SSEHub != nil {
		if err := a.Bus.StartForwarder(ctx, a.SSEHub.Broadcast); err != nil {
			return fmt.Errorf("start bus forwarder: %w", err)
		}
	}
	a.Metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
	a.Metrics.StartRedisCollector(ctx, a.Log, envutil.String("REDIS_ADDR", ""))
	return nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout)
	defer cancel()

	if a.Services.Notification != nil {
		if err := a.Services.Notification.Wait(shutdownCtx); err != nil {
			a.Log.Warn("notifications still in flight at shutdown", "error", err)
		}
	}
	if a.Bus != nil {
		_ = a.Bus.Close()
	}
	if a.Clients.Temporal != nil {
		a.Clients.Temporal.Close()
	}
	if a.Clients.Graph != nil {
		_ = a.Clients.Graph.Close(shutdownCtx)
	}
	if a.pg != nil {
		_ = a.pg.Close()
	}
	if a.otelShutdown != nil {
		_ = a.otelShutdown(shutdownCtx)
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
