// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/models"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS credit_cards (
	id SERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE,
	issuer TEXT,
	annual_fee INTEGER NOT NULL DEFAULT 0,
	reward_type TEXT,
	reward_rate TEXT,
	min_income INTEGER NOT NULL DEFAULT 0,
	min_credit_score INTEGER NOT NULL DEFAULT 0,
	perks TEXT,
	apply_link TEXT,
	img_url TEXT
)`

	insertCardSQL = `INSERT INTO credit_cards
	(name, issuer, annual_fee, reward_type, reward_rate, min_income, min_credit_score, perks, apply_link, img_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (name) DO NOTHING`

	selectCardsSQL = `SELECT name, issuer, annual_fee, reward_type, reward_rate, min_income, min_credit_score, perks, apply_link, img_url
FROM credit_cards ORDER BY id`
)

// PostgresStore keeps the catalog in the credit_cards table. Perks are a
// JSON array in a TEXT column.
type PostgresStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewPostgresStore(db *sql.DB, log logger.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "catalog-postgres"}),
	}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableSQL); err != nil {
		return queryError(ctx, "create-table", err)
	}
	return nil
}

// Seed inserts cards whose names are not present yet and returns how many
// rows were added.
func (s *PostgresStore) Seed(ctx context.Context, cards []models.CardRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, apperrors.NewDatabaseConnectionFailedError(err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, c := range cards {
		perks, err := json.Marshal(nonNilPerks(c.Perks))
		if err != nil {
			return 0, fmt.Errorf("encode perks for %q: %w", c.Name, err)
		}
		res, err := tx.ExecContext(ctx, insertCardSQL,
			c.Name, c.Issuer, c.AnnualFee, string(c.RewardType), c.RewardRate,
			c.MinIncome, c.MinCreditScore, string(perks), c.ApplyLink, c.ImgURL)
		if err != nil {
			return 0, queryError(ctx, "seed-cards", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, queryError(ctx, "seed-cards", err)
	}

	s.logger.Info("catalog seeded", map[string]interface{}{
		"cards":    len(cards),
		"inserted": inserted,
	})
	return inserted, nil
}

func (s *PostgresStore) LoadAll(ctx context.Context) ([]models.CardRecord, error) {
	rows, err := s.db.QueryContext(ctx, selectCardsSQL)
	if err != nil {
		return nil, queryError(ctx, "load-cards", err)
	}
	defer rows.Close()

	cards := []models.CardRecord{}
	for rows.Next() {
		var (
			c                                         models.CardRecord
			issuer, rewardType, rewardRate, perksJSON sql.NullString
			applyLink, imgURL                         sql.NullString
		)
		if err := rows.Scan(&c.Name, &issuer, &c.AnnualFee, &rewardType, &rewardRate,
			&c.MinIncome, &c.MinCreditScore, &perksJSON, &applyLink, &imgURL); err != nil {
			return nil, queryError(ctx, "load-cards", err)
		}
		c.Issuer = issuer.String
		c.RewardType = models.RewardType(rewardType.String).Normalize()
		c.RewardRate = rewardRate.String
		c.ApplyLink = applyLink.String
		c.ImgURL = imgURL.String
		c.Perks = s.decodePerks(c.Name, perksJSON)
		cards = append(cards, c)
	}
	if err := rows.Err(); err != nil {
		return nil, queryError(ctx, "load-cards", err)
	}
	return cards, nil
}

func (s *PostgresStore) decodePerks(card string, raw sql.NullString) []string {
	perks := []string{}
	if !raw.Valid || raw.String == "" {
		return perks
	}
	if err := json.Unmarshal([]byte(raw.String), &perks); err != nil {
		s.logger.Warn("invalid perks column, treating as empty", map[string]interface{}{
			"card":  card,
			"error": err,
		})
		return []string{}
	}
	return perks
}

func queryError(ctx context.Context, queryType string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
		return apperrors.NewQueryTimeoutError(queryType)
	}
	return apperrors.NewQueryExecutionFailedError(queryType, err)
}

func nonNilPerks(perks []string) []string {
	if perks == nil {
		return []string{}
	}
	return perks
}
