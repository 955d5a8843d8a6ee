// internal/catalog/postgres_test.go
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	apperrors "card-advisor-workers/internal/common/errors"
	"card-advisor-workers/internal/common/logger"
	"card-advisor-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var cardColumns = []string{
	"name", "issuer", "annual_fee", "reward_type", "reward_rate",
	"min_income", "min_credit_score", "perks", "apply_link", "img_url",
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS credit_cards`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	store := NewPostgresStore(db, logger.NewTestLogger(t))
	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Seed(t *testing.T) {
	db, mock := setupMockDB(t)
	cards := []models.CardRecord{
		{Name: "Fuel Saver", Issuer: "Example", AnnualFee: 500, RewardType: models.RewardCashback, RewardRate: "5% on fuel", MinIncome: 30000, MinCreditScore: 700, Perks: []string{"fuel"}, ApplyLink: "a"},
		{Name: "Already There", RewardType: models.RewardOther},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO credit_cards`).
		WithArgs("Fuel Saver", "Example", 500, "cashback", "5% on fuel", 30000, 700, `["fuel"]`, "a", "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO credit_cards`).
		WithArgs("Already There", sqlmock.AnyArg(), sqlmock.AnyArg(), "other", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), `[]`, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	store := NewPostgresStore(db, logger.NewTestLogger(t))
	inserted, err := store.Seed(context.Background(), cards)
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SeedRollsBackOnError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO credit_cards`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	store := NewPostgresStore(db, logger.NewTestLogger(t))
	_, err := store.Seed(context.Background(), []models.CardRecord{{Name: "X"}})

	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, stdErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadAll(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT name, issuer, annual_fee, reward_type, reward_rate, min_income, min_credit_score, perks, apply_link, img_url FROM credit_cards ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(cardColumns).
			AddRow("Fuel Saver", "Example", 500, "cashback", "5% on fuel", 30000, 700, `["fuel","dining"]`, "a", nil).
			AddRow("Odd Card", nil, 0, "VOUCHERS", nil, 0, 0, `not json`, nil, "img.png").
			AddRow("No Perks", "Example", 0, "points", "2 points on dining", 0, 0, nil, "c", nil))

	store := NewPostgresStore(db, logger.NewTestLogger(t))
	cards, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cards, 3)

	assert.Equal(t, []string{"fuel", "dining"}, cards[0].Perks)
	assert.Equal(t, models.RewardCashback, cards[0].RewardType)
	assert.Equal(t, "", cards[0].ImgURL)

	assert.Equal(t, models.RewardOther, cards[1].RewardType)
	assert.Equal(t, []string{}, cards[1].Perks)
	assert.Equal(t, "img.png", cards[1].ImgURL)

	assert.Equal(t, []string{}, cards[2].Perks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_LoadAllEmpty(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT name`).WillReturnRows(sqlmock.NewRows(cardColumns))

	store := NewPostgresStore(db, logger.NewTestLogger(t))
	cards, err := store.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, cards)
	assert.Empty(t, cards)
}

func TestPostgresStore_LoadAllErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(`SELECT name`).WillReturnError(errors.New("relation does not exist"))

	store := NewPostgresStore(db, logger.NewTestLogger(t))
	_, err := store.LoadAll(context.Background())
	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeQueryExecutionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)

	mock.ExpectQuery(`SELECT name`).WillReturnError(context.DeadlineExceeded)
	_, err = store.LoadAll(context.Background())
	stdErr, ok = apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeQueryTimeout, stdErr.Code)
}

func TestPostgresStore_SeedAndLoadCardWithPerks(t *testing.T) {
	db, mock := setupMockDB(t)
	card := models.CardRecord{
		Name: "Dining Plus", Issuer: "Example", AnnualFee: 999, RewardType: models.RewardPoints,
		RewardRate: "4 points on dining", MinIncome: 40000, MinCreditScore: 720,
		Perks: []string{"dining", "lounge access", "fuel surcharge waiver"}, ApplyLink: "a",
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO credit_cards`).
		WithArgs("Dining Plus", "Example", 999, "points", "4 points on dining", 40000, 720,
			`["dining","lounge access","fuel surcharge waiver"]`, "a", "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	store := NewPostgresStore(db, logger.NewTestLogger(t))
	inserted, err := store.Seed(context.Background(), []models.CardRecord{card})
	require.NoError(t, err)
	assert.Equal(t, 1, inserted)

	assert.Equal(t, card.Perks, store.decodePerks(card.Name, sql.NullString{
		String: `["dining","lounge access","fuel surcharge waiver"]`, Valid: true,
	}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNonNilPerks(t *testing.T) {
	assert.Equal(t, []string{}, nonNilPerks(nil))
	assert.Equal(t, []string{"fuel", "dining"}, nonNilPerks([]string{"fuel", "dining"}))
}
