package storage

import (
	"context"
	"errors"
	"testing"

	"go-dou-scraper/internal/scraper"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

var vacancies = []scraper.Vacancy{
	{Title: "A", URL: "u1", Description: "D1", City: "Kyiv"},
	{Title: "A", URL: "u1", Description: "D1", City: "Kyiv"},
}

func TestSaveRun_Success(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO vacancies`)
	prep.ExpectExec().WithArgs("run-1", 0, "A", "u1", "D1", "Kyiv").WillReturnResult(sqlmock.NewResult(0, 1))
	prep.ExpectExec().WithArgs("run-1", 1, "A", "u1", "D1", "Kyiv").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.SaveRun(context.Background(), "run-1", vacancies)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRun_RollsBackOnError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	prep := mock.ExpectPrepare(`INSERT INTO vacancies`)
	prep.ExpectExec().WithArgs("run-1", 0, "A", "u1", "D1", "Kyiv").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := store.SaveRun(context.Background(), "run-1", vacancies)

	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveRun_Empty(t *testing.T) {
	store, mock := newMockStore(t)

	require.NoError(t, store.SaveRun(context.Background(), "run-1", nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS vacancies`).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
