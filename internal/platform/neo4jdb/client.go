package neo4jdb

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/yungbote/skillgraph-backend/internal/platform/envutil"
	"github.com/yungbote/skillgraph-backend/internal/platform/logger"
)

// Client owns the driver's connection pool. Sessions are acquired per operation
// and must be closed by the caller.
type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	log      *logger.Logger
}

func NewFromEnv(log *logger.Logger) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("neo4jdb: logger required")
	}

	uri := envutil.String("NEO4J_URI", "")
	if uri == "" {
		return nil, nil
	}
	user := envutil.String("NEO4J_USER", "neo4j")
	password := strings.TrimSpace(envutil.String("NEO4J_PASSWORD", ""))
	database := envutil.String("NEO4J_DATABASE", "")

	timeout := envutil.Seconds("NEO4J_TIMEOUT_SECONDS", 10)
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxPool := envutil.Int("NEO4J_MAX_POOL_SIZE", 50)
	if maxPool <= 0 {
		maxPool = 50
	}
	maxLifetime := envutil.Seconds("NEO4J_MAX_CONN_LIFETIME_SECONDS", 3600)
	acquireTimeout := envutil.Seconds("NEO4J_ACQUIRE_TIMEOUT_SECONDS", 30)

	auth := neo4j.BasicAuth(user, password, "")
	driver, err := neo4j.NewDriverWithContext(uri, auth, func(cfg *neo4j.Config) {
		cfg.MaxConnectionPoolSize = maxPool
		cfg.SocketConnectTimeout = timeout
		if maxLifetime > 0 {
			cfg.MaxConnectionLifetime = maxLifetime
		}
		if acquireTimeout > 0 {
			cfg.ConnectionAcquisitionTimeout = acquireTimeout
		}
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jdb: init driver: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jdb: verify connectivity: %w", err)
	}

	log.Info("neo4j connected", "uri", uri, "database", database, "max_pool", maxPool)
	return &Client{
		Driver:   driver,
		Database: database,
		log:      log.With("client", "Neo4jDB"),
	}, nil
}

// readSession opens a read-mode session on the configured database.
func (c *Client) readSession(ctx context.Context) neo4j.SessionWithContext {
	return c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: c.Database,
	})
}

// WriteSession opens a write-mode session on the configured database.
func (c *Client) WriteSession(ctx context.Context) neo4j.SessionWithContext {
	return c.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeWrite,
		DatabaseName: c.Database,
	})
}

// Read runs fn in a managed read transaction and releases the session on every path.
func (c *Client) Read(ctx context.Context, fn func(tx neo4j.ManagedTransaction) (any, error)) (any, error) {
	if c == nil || c.Driver == nil {
		return nil, fmt.Errorf("neo4jdb: client not initialized")
	}
	session := c.readSession(ctx)
	defer session.Close(ctx)
	return session.ExecuteRead(ctx, fn)
}

// Write runs fn in a managed write transaction and releases the session on every path.
func (c *Client) Write(ctx context.Context, fn func(tx neo4j.ManagedTransaction) (any, error)) (any, error) {
	if c == nil || c.Driver == nil {
		return nil, fmt.Errorf("neo4jdb: client not initialized")
	}
	session := c.WriteSession(ctx)
	defer session.Close(ctx)
	return session.ExecuteWrite(ctx, fn)
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}
