package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/skillgraph-backend/internal/data/graph"
	"github.com/yungbote/skillgraph-backend/internal/data/repos/notification"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
	"github.com/yungbote/skillgraph-backend/internal/platform/neo4jdb"
)

// Stores are the graph-backed reads and writes.
type Stores struct {
	People       graph.PeopleStore
	Openings     graph.OpeningStore
	Concepts     graph.ConceptStore
	Applications graph.ApplicationStore
	Shortlist    graph.ShortlistStore
}

func wireStores(client *neo4jdb.Client, log *logger.Logger) Stores {
	log.Info("Wiring graph stores...")
	return Stores{
		People:       graph.NewPeopleStore(client, log),
		Openings:     graph.NewOpeningStore(client, log),
		Concepts:     graph.NewConceptStore(client, log),
		Applications: graph.NewApplicationStore(client, log),
		Shortlist:    graph.NewShortlistStore(client, log),
	}
}

// Repos are the relational repositories.
type Repos struct {
	Notification notification.NotificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Notification: notification.NewNotificationRepo(db, log),
	}
}
