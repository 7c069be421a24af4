//go:build !integration

package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/marcelsud/webhook-courier/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
Testes unitários com sqlmock: validam o SQL sem precisar de um banco real.
Executar com: go test ./subscription/postgres/...
(Sem -tags=integration)
*/

const testID = "6f2c1a90-95b9-4a6e-9a0b-2f4dfc17a111"

func TestRepository_Get_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &Repository{DB: db}
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "target_url", "secret", "events"}).
		AddRow(testID, "https://example.com/hooks", "whsec_abc", "{order.created}")
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, target_url, secret, events FROM subscriptions WHERE id = $1",
	)).WithArgs(testID).WillReturnRows(rows)

	sub, err := repo.Get(ctx, testID)

	require.NoError(t, err)
	assert.Equal(t, testID, sub.ID)
	assert.Equal(t, "https://example.com/hooks", sub.TargetURL)
	require.NotNil(t, sub.Secret)
	assert.Equal(t, "whsec_abc", *sub.Secret)
	assert.Equal(t, []string{"order.created"}, sub.Events)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_Unit_NullFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &Repository{DB: db}
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "target_url", "secret", "events"}).
		AddRow(testID, "https://example.com/hooks", nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, target_url, secret, events FROM subscriptions WHERE id = $1",
	)).WithArgs(testID).WillReturnRows(rows)

	sub, err := repo.Get(ctx, testID)

	require.NoError(t, err)
	assert.Nil(t, sub.Secret)
	assert.Nil(t, sub.Events)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Get_Unit_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &Repository{DB: db}
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, target_url, secret, events FROM subscriptions WHERE id = $1",
	)).WithArgs(testID).WillReturnRows(sqlmock.NewRows([]string{"id", "target_url", "secret", "events"}))

	_, err = repo.Get(ctx, testID)

	assert.ErrorIs(t, err, subscription.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Insert_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &Repository{DB: db}
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO subscriptions (id, target_url, secret, events)
		VALUES ($1, $2, $3, $4)`,
	)).WithArgs(testID, "https://example.com/hooks", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Insert(ctx, subscription.Subscription{
		ID:        testID,
		TargetURL: "https://example.com/hooks",
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Update_Unit_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &Repository{DB: db}
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE subscriptions
		SET target_url = $1, secret = $2, events = $3
		WHERE id = $4`,
	)).WithArgs("https://example.com", sqlmock.AnyArg(), sqlmock.AnyArg(), testID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Update(ctx, subscription.Subscription{
		ID:        testID,
		TargetURL: "https://example.com",
	})

	assert.ErrorIs(t, err, subscription.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Delete_Unit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := &Repository{DB: db}
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(
		"DELETE FROM subscriptions WHERE id = $1",
	)).WithArgs(testID).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(ctx, testID))
	require.NoError(t, mock.ExpectationsWereMet())
}
