package dbhandler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(&pq.Error{Code: "40001"}))
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", &pq.Error{Code: "40P01"})))
	assert.False(t, IsRetryable(&pq.Error{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("plain")))
	assert.False(t, IsRetryable(nil))
}

func TestTransactRetries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectCommit()

	attempts := 0
	err = DBHandler{DB: db}.Transact(context.Background(), nil, func(tx *sql.Tx) error {
		attempts++
		if attempts == 1 {
			return &pq.Error{Code: "40P01"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("update").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = DBHandler{DB: db}.Transact(context.Background(), nil, func(tx *sql.Tx) error {
		_, err := tx.Exec("update mints set supply = 1")
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
