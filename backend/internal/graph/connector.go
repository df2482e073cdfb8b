package graph

import (
	"context"

	"lexigraph/backend/pkg/config"
	apperrors "lexigraph/backend/pkg/errors"
	"lexigraph/backend/pkg/logger"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
)

// Session is one open, authenticated connection to the graph. Callers own it
// and must Close it.
type Session interface {
	Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
	Write(ctx context.Context, cypher string, params map[string]any) (WriteSummary, error)
	Close(ctx context.Context) error
}

// WriteSummary reports what a write query changed.
type WriteSummary struct {
	NodesCreated         int
	RelationshipsCreated int
	PropertiesSet        int
}

// Connector opens sessions against a single Neo4j deployment
type Connector struct {
	cfg    config.Neo4jConfig
	logger *zap.Logger
}

// NewConnector validates cfg once. An invalid configuration is reported here,
// before any network I/O.
func NewConnector(cfg config.Neo4jConfig, log *zap.Logger) (*Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Named("graph")
	}
	return &Connector{cfg: cfg, logger: log}, nil
}

// Database returns the logical database queries run against
func (c *Connector) Database() string {
	return c.cfg.Database
}

// Open creates a driver and verifies it can reach and authenticate against
// the server. The driver is released if verification fails.
func (c *Connector) Open(ctx context.Context) (Session, error) {
	driver, err := neo4j.NewDriverWithContext(
		c.cfg.URI,
		neo4j.BasicAuth(c.cfg.User, c.cfg.Password, ""),
	)
	if err != nil {
		return nil, apperrors.NewGraphConnectionFailed(c.cfg.URI, err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		if closeErr := driver.Close(context.Background()); closeErr != nil {
			c.logger.Warn("Failed to close Neo4j driver after connectivity failure", zap.Error(closeErr))
		}
		if ctx.Err() != nil {
			return nil, apperrors.NewContextCancelled("graph connect", err)
		}
		return nil, apperrors.NewGraphConnectionFailed(c.cfg.URI, err)
	}

	c.logger.Debug("Neo4j connection established",
		zap.String("uri", c.cfg.URI),
		zap.String("database", c.cfg.Database),
	)

	return &Conn{driver: driver, database: c.cfg.Database}, nil
}

// Conn is a Session backed by a dedicated neo4j driver
type Conn struct {
	driver   neo4j.DriverWithContext
	database string
}

// Read executes cypher on a reader and returns its records in server order
func (c *Conn) Read(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	result, err := neo4j.ExecuteQuery(ctx, c.driver, cypher, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.database),
		neo4j.ExecuteQueryWithReadersRouting(),
	)
	if err != nil {
		return nil, queryError(ctx, cypher, err)
	}
	return result.Records, nil
}

// Write executes cypher on a writer
func (c *Conn) Write(ctx context.Context, cypher string, params map[string]any) (WriteSummary, error) {
	result, err := neo4j.ExecuteQuery(ctx, c.driver, cypher, params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(c.database),
		neo4j.ExecuteQueryWithWritersRouting(),
	)
	if err != nil {
		return WriteSummary{}, queryError(ctx, cypher, err)
	}

	counters := result.Summary.Counters()
	return WriteSummary{
		NodesCreated:         counters.NodesCreated(),
		RelationshipsCreated: counters.RelationshipsCreated(),
		PropertiesSet:        counters.PropertiesSet(),
	}, nil
}

// Close releases the driver and every pooled connection it holds
func (c *Conn) Close(ctx context.Context) error {
	return c.driver.Close(ctx)
}

func queryError(ctx context.Context, cypher string, err error) error {
	if ctx.Err() != nil {
		return apperrors.NewContextCancelled("graph query", err)
	}
	return apperrors.NewGraphQueryFailed(cypher, err)
}
