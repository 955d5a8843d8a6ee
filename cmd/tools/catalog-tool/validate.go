// cmd/tools/catalog-tool/validate.go
package main

import (
	"fmt"

	"card-advisor-workers/internal/catalog"
	apperrors "card-advisor-workers/internal/common/errors"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <seed.yaml>",
		Short: "Check a catalog seed file against the card schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := catalog.LoadSeedFile(args[0])
			if err != nil {
				if stdErr, ok := apperrors.AsStandardError(err); ok {
					if problems, ok := stdErr.Metadata["problems"].([]string); ok {
						for _, p := range problems {
							fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", p)
						}
					}
				}
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d cards OK\n", args[0], len(cards))
			return nil
		},
	}
}
