// cmd/tools/catalog-tool/seed.go
package main

import (
	"context"
	"fmt"

	"card-advisor-workers/internal/catalog"
	"card-advisor-workers/internal/common/config"
	"card-advisor-workers/internal/common/database"

	"github.com/spf13/cobra"
)

func newSeedCmd(opts *options) *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert seed cards into PostgreSQL (existing names are left alone)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Database.Postgres.Enabled {
				return fmt.Errorf("database.postgres.enabled is false")
			}
			if seedPath == "" {
				seedPath = cfg.Catalog.SeedPath
			}
			log := opts.logger()
			ctx := cmd.Context()

			cards, err := catalog.LoadSeedFile(seedPath)
			if err != nil {
				return err
			}

			pg, err := database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			defer pg.Close()
			if err := pg.Ping(ctx); err != nil {
				return err
			}

			store := catalog.NewPostgresStore(pg.DB, log)
			if err := store.EnsureSchema(ctx); err != nil {
				return err
			}
			inserted, err := store.Seed(ctx, cards)
			if err != nil {
				return err
			}

			if inserted > 0 && cfg.Database.Redis.Enabled {
				invalidateCache(ctx, cmd, opts, cfg.Database.Redis)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d of %d cards from %s\n", inserted, len(cards), seedPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&seedPath, "seed", "s", "", "Seed file (default: catalog.seed_path)")
	return cmd
}

// invalidateCache drops the cached catalog so workers pick up new cards
// before the TTL expires. Failure only delays that.
func invalidateCache(ctx context.Context, cmd *cobra.Command, opts *options, rcfg config.RedisConfig) {
	rc := database.NewRedis(rcfg)
	defer rc.Close()

	store := catalog.NewCachedStore(nil, rc.Client, 0, opts.logger())
	if err := store.Invalidate(ctx); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: catalog cache not invalidated: %v\n", err)
	}
}
