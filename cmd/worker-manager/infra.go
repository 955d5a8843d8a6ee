// cmd/worker-manager/infra.go
package main

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"card-advisor-workers/internal/catalog"
	"card-advisor-workers/internal/common/aws"
	"card-advisor-workers/internal/common/config"
	"card-advisor-workers/internal/common/database"
	"card-advisor-workers/internal/common/logger"
	src "card-advisor-workers/internal/workers/communication/send-recommendation-summary"

	"github.com/redis/go-redis/v9"
)

// infrastructure holds the optional backing stores. A nil field means the
// store is disabled in configuration.
type infrastructure struct {
	postgres *database.PostgresClient
	redis    *database.RedisClient
	elastic  *database.ElasticsearchClient
}

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// connectInfrastructure dials every enabled store concurrently and fails if
// any of them stays unreachable.
func connectInfrastructure(ctx context.Context, cfg *config.Config, log logger.Logger) (*infrastructure, error) {
	infra := &infrastructure{}
	g, gctx := errgroup.WithContext(ctx)

	if cfg.Database.Postgres.Enabled {
		g.Go(func() error {
			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			if err := retryWithBackoff(gctx, func() error { return pg.Ping(gctx) }, 15, 2*time.Second, log, "PostgreSQL connection"); err != nil {
				pg.Close()
				return err
			}
			infra.postgres = pg
			log.Info("PostgreSQL connected successfully", nil)
			return nil
		})
	}

	if cfg.Database.Redis.Enabled {
		g.Go(func() error {
			rc := database.NewRedis(cfg.Database.Redis)
			if err := retryWithBackoff(gctx, func() error { return rc.Ping(gctx) }, 10, 2*time.Second, log, "Redis connection"); err != nil {
				rc.Close()
				return err
			}
			infra.redis = rc
			log.Info("Redis connected successfully", nil)
			return nil
		})
	}

	if cfg.Database.Elasticsearch.Enabled {
		g.Go(func() error {
			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := retryWithBackoff(gctx, func() error { return es.Ping(gctx) }, 15, 2*time.Second, log, "Elasticsearch connection"); err != nil {
				return err
			}
			infra.elastic = es
			log.Info("Elasticsearch connected successfully", nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		infra.Close(log)
		return nil, err
	}
	return infra, nil
}

func (i *infrastructure) redisClient() *redis.Client {
	if i.redis == nil {
		return nil
	}
	return i.redis.Client
}

func (i *infrastructure) Close(log logger.Logger) {
	if i.postgres != nil {
		if err := i.postgres.Close(); err != nil {
			log.Error("error closing postgres", map[string]interface{}{"error": err.Error()})
		}
	}
	if i.redis != nil {
		if err := i.redis.Close(); err != nil {
			log.Error("error closing redis", map[string]interface{}{"error": err.Error()})
		}
	}
}

// catalogDeps is what the catalog-facing workers need.
type catalogDeps struct {
	source *catalog.CachedStore
	search *catalog.SearchIndex // nil without Elasticsearch
}

// buildCatalog picks the catalog source (PostgreSQL or the seed file), puts
// the Redis cache in front of it and prepares the search index.
func buildCatalog(ctx context.Context, cfg *config.Config, infra *infrastructure, log logger.Logger) (*catalogDeps, error) {
	cc := cfg.Catalog

	var base catalog.Source
	reseeded := false

	if infra.postgres != nil {
		store := catalog.NewPostgresStore(infra.postgres.DB, log)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		if cc.SeedOnStartup {
			cards, err := catalog.LoadSeedFile(cc.SeedPath)
			if err != nil {
				return nil, err
			}
			inserted, err := store.Seed(ctx, cards)
			if err != nil {
				return nil, err
			}
			reseeded = inserted > 0
			log.Info("catalog seeded", map[string]interface{}{"inserted": inserted, "seedPath": cc.SeedPath})
		}
		base = store
	} else {
		cards, err := catalog.LoadSeedFile(cc.SeedPath)
		if err != nil {
			return nil, err
		}
		log.Info("serving catalog from seed file", map[string]interface{}{"cards": len(cards), "seedPath": cc.SeedPath})
		base = catalog.NewStaticSource(cards)
	}

	cached := catalog.NewCachedStore(base, infra.redisClient(), cc.CacheTTLDuration(), log)
	if reseeded {
		if err := cached.Invalidate(ctx); err != nil {
			log.Warn("catalog cache invalidation failed", map[string]interface{}{"error": err.Error()})
		}
	}

	deps := &catalogDeps{source: cached}
	if infra.elastic == nil {
		return deps, nil
	}

	deps.search = catalog.NewSearchIndex(infra.elastic.Client, cc.IndexName, log)
	if cc.IndexOnStart {
		if err := deps.search.EnsureIndex(ctx); err != nil {
			return nil, err
		}
		cards, err := cached.LoadAll(ctx)
		if err != nil {
			return nil, err
		}
		if _, err := deps.search.IndexCards(ctx, cards); err != nil {
			return nil, err
		}
	}
	return deps, nil
}

// notifier carries the AWS senders. A nil field turns its channel off.
type notifier struct {
	email src.EmailSender
	sms   src.SMSSender
}

func buildNotifier(ctx context.Context, cfg *config.Config) (*notifier, error) {
	n := &notifier{}
	nc := cfg.Notifications
	if !nc.Email.Enabled && !nc.SMS.Enabled {
		return n, nil
	}

	clients, err := aws.NewClients(ctx, nc.AWS.Region)
	if err != nil {
		return nil, err
	}
	if nc.Email.Enabled {
		n.email = clients.SES
	}
	if nc.SMS.Enabled {
		n.sms = clients.SNS
	}
	return n, nil
}
