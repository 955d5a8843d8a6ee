// cmd/tools/catalog-tool/tasks.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"card-advisor-workers/pkg/registry"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newTasksCmd() *cobra.Command {
	var registryPath string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and check the worker activity registry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := registry.LoadRegistry(registryPath)
			if err != nil {
				return fmt.Errorf("failed to load registry: %w", err)
			}
			if err := reg.Validate(); err != nil {
				return err
			}

			rows := make([][]string, 0, len(reg.Activities))
			for _, a := range reg.Activities {
				rows = append(rows, []string{
					a.TaskType,
					a.Category,
					a.Timeout,
					strconv.Itoa(a.Retries),
					strings.Join(a.ErrorCodes, ", "),
				})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(borderStyle).
				Headers("Task type", "Category", "Timeout", "Retries", "Error codes").
				Rows(rows...).
				StyleFunc(func(row, _ int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, t.Render())
			fmt.Fprintf(out, "Registry %s: %d activities\n", reg.Version, len(reg.Activities))
			return nil
		},
	}

	cmd.Flags().StringVarP(&registryPath, "path", "r", registry.DefaultPath, "Registry file")
	return cmd
}
