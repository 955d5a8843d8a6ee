// cmd/tools/catalog-tool/index.go
package main

import (
	"fmt"

	"card-advisor-workers/internal/catalog"
	"card-advisor-workers/internal/common/database"

	"github.com/spf13/cobra"
)

func newIndexCmd(opts *options) *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Index the seed catalog into Elasticsearch",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if !cfg.Database.Elasticsearch.Enabled {
				return fmt.Errorf("database.elasticsearch.enabled is false")
			}
			if seedPath == "" {
				seedPath = cfg.Catalog.SeedPath
			}
			ctx := cmd.Context()

			cards, err := catalog.LoadSeedFile(seedPath)
			if err != nil {
				return err
			}

			es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			if err := es.Ping(ctx); err != nil {
				return err
			}

			index := catalog.NewSearchIndex(es.Client, cfg.Catalog.IndexName, opts.logger())
			if err := index.EnsureIndex(ctx); err != nil {
				return err
			}
			indexed, err := index.IndexCards(ctx, cards)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d of %d cards into %s\n", indexed, len(cards), index.Index())
			return nil
		},
	}

	cmd.Flags().StringVarP(&seedPath, "seed", "s", "", "Seed file (default: catalog.seed_path)")
	return cmd
}
