package discount

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

func discountRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "code", "description", "discount_type", "percent", "value", "scope",
		"product_ids", "categories", "min_order_value", "max_discount_amount",
		"start_date", "end_date", "status", "created_at",
	}).AddRow(
		1, "SUMMER10", "", "PERCENTAGE", 10.0, 0, "GLOBAL",
		"{}", "{}", 0, nil,
		now.Add(-time.Hour), now.Add(time.Hour), "ACTIVE", now,
	)
}

func TestGetByCode(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM discounts WHERE code = \\$1").
		WithArgs("SUMMER10").
		WillReturnRows(discountRows(now))

	d, err := repo.GetByCode(context.Background(), "SUMMER10")
	require.NoError(t, err)
	require.Equal(t, "SUMMER10", d.Code)
	require.Equal(t, "PERCENTAGE", d.DiscountType)
}

func TestListValid(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM discounts WHERE status = 'ACTIVE' AND start_date <= \\$1 AND end_date >= \\$1").
		WithArgs(now).
		WillReturnRows(discountRows(now))

	discounts, err := repo.ListValid(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, discounts, 1)
}

func TestDeleteNotFound(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM discounts WHERE id = $1")).
		WithArgs(42).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 42)
	require.ErrorIs(t, err, ErrNotFoundOrUnchanged)
}

func TestDelete(t *testing.T) {
	repo, mock, closer := setupMock(t)
	defer closer()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM discounts WHERE id = $1")).
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 1))
}
