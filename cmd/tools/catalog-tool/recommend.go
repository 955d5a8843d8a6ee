// cmd/tools/catalog-tool/recommend.go
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"card-advisor-workers/internal/catalog"
	"card-advisor-workers/internal/engine"
	"card-advisor-workers/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#575653"))
)

func newRecommendCmd() *cobra.Command {
	var (
		profilePath string
		seedPath    string
		maxResults  int
		normalize   bool
	)

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Rank the seed catalog for a profile file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			cards, err := catalog.LoadSeedFile(seedPath)
			if err != nil {
				return err
			}

			recs := engine.Ranker{MaxResults: maxResults, Normalize: normalize}.Rank(profile, cards)
			renderRecommendations(cmd.OutOrStdout(), profile, recs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Profile YAML file")
	cmd.Flags().StringVarP(&seedPath, "seed", "s", "data/cards.yaml", "Seed file")
	cmd.Flags().IntVarP(&maxResults, "max", "n", engine.DefaultMaxResults, "Maximum recommendations")
	cmd.Flags().BoolVar(&normalize, "normalize", false, "Report scores on a 0-100 scale")
	_ = cmd.MarkFlagRequired("profile")
	return cmd
}

func loadProfile(path string) (models.UserProfile, error) {
	var p models.UserProfile
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("read profile: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parse profile %s: %w", path, err)
	}
	return p, nil
}

func renderRecommendations(w io.Writer, profile models.UserProfile, recs []models.Recommendation) {
	fmt.Fprintf(w, "Top spending category: %s\n", engine.TopCategory(profile))
	if len(recs) == 0 {
		fmt.Fprintln(w, "No cards to recommend.")
		return
	}

	rows := make([][]string, 0, len(recs))
	for i, r := range recs {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Name,
			strconv.Itoa(r.Score),
			"₹" + strconv.Itoa(r.AnnualFee),
			string(r.RewardType.Normalize()),
			r.RewardSimulation,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("#", "Card", "Score", "Fee", "Reward", "Estimate").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
}
