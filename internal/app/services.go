package app

import (
	dataagg "github.com/yungbote/skillgraph-backend/internal/data/aggregates"
	"github.com/yungbote/skillgraph-backend/internal/observability"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/realtime/bus"
	"github.com/yungbote/skillgraph-backend/internal/services"
	"github.com/yungbote/skillgraph-backend/internal/temporalx"
	"github.com/yungbote/skillgraph-backend/internal/temporalx/embedrefresh"
)

type Services struct {
	Recommendation services.RecommendationService
	Semantic       services.SemanticService

	// Set only when the HTTP surface is wired.
	Identity     services.IdentityService
	Notification services.NotificationService
	Application  services.ApplicationService
	Shortlist    services.ShortlistService
	Profile      services.ProfileService
}

// wireQueryServices builds the read-only matching services every entrypoint needs.
func wireQueryServices(log *logger.Logger, cfg Config, clients Clients, stores Stores) Services {
	log.Info("Wiring query services...")
	return Services{
		Recommendation: services.NewRecommendationService(log, stores.People, stores.Openings, cfg.Matching),
		Semantic:       services.NewSemanticService(log, clients.Embedder, stores.People, cfg.Matching),
	}
}

// wireCommandServices adds the write paths used by the HTTP API.
func wireCommandServices(
	log *logger.Logger,
	cfg Config,
	clients Clients,
	stores Stores,
	repos Repos,
	b bus.Bus,
	metrics *observability.Metrics,
	base Services,
) Services {
	log.Info("Wiring command services...")
	out := base

	out.Identity = services.NewIdentityService(log, cfg.JWTSecretKey, cfg.JWTIssuer)
	out.Notification = services.NewNotificationService(log, repos.Notification, &services.BusEmitter{Bus: b, Log: log})

	aggregate := dataagg.NewApplicationAggregate(dataagg.ApplicationAggregateDeps{
		Base: dataagg.BaseDeps{
			Graph: clients.Graph,
			Log:   log,
			Hooks: dataagg.NewObservabilityHooks(metrics),
		},
		Location: cfg.Matching.Location(),
	})
	out.Application = services.NewApplicationService(log, aggregate, stores.Applications, out.Notification)
	out.Shortlist = services.NewShortlistService(log, stores.Shortlist, stores.People, out.Notification)

	var refresher services.EmbeddingRefresher
	if clients.Temporal != nil {
		refresher = &embedrefresh.Scheduler{Log: log, Client: clients.Temporal, TaskQueue: temporalx.LoadConfig().TaskQueue}
	} else {
		refresher = &services.InlineEmbeddingRefresher{Log: log, People: stores.People, Semantic: base.Semantic}
	}
	out.Profile = services.NewProfileService(log, stores.Concepts, refresher)
	return out
}
