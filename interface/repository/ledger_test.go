package repository

import (
	"context"
	"errors"
	"regexp"
	"rewards/domain"
	"rewards/infrastructure/dbhandler"
	"rewards/usecase"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gagliardetto/solana-go"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockLedger(t *testing.T) (*PostgresLedger, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresLedger(dbhandler.DBHandler{DB: db}), mock
}

func TestPostgresLedgerUpdateLocksAndCommits(t *testing.T) {
	ledger, mock := newMockLedger(t)
	address := solana.NewWallet().PublicKey()
	state := &domain.GlobalState{
		Authority:             solana.NewWallet().PublicKey(),
		TaxRateBasisPoints:    500,
		RewardIntervalSeconds: 60,
	}
	data, err := state.MarshalAccount()
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("from program_accounts") + `\s+where address = \$1\s+for update`).
		WithArgs(address.String()).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(data))
	mock.ExpectExec(regexp.QuoteMeta("insert into program_accounts")).
		WithArgs(address.String(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = ledger.Update(context.Background(), func(tx usecase.LedgerTx) error {
		read, err := tx.GlobalState(address)
		if err != nil {
			return err
		}
		assert.Equal(t, state, read)
		read.LastDistributionTimestamp = 42
		return tx.PutGlobalState(address, read)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLedgerUpdateRollsBack(t *testing.T) {
	ledger, mock := newMockLedger(t)
	account := &domain.TokenAccount{
		Address: solana.NewWallet().PublicKey(),
		Mint:    solana.NewWallet().PublicKey(),
		Owner:   solana.NewWallet().PublicKey(),
		Amount:  18446744073709551615,
	}
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("insert into token_accounts")).
		WithArgs(account.Address.String(), account.Mint.String(), account.Owner.String(), "18446744073709551615").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	err := ledger.Update(context.Background(), func(tx usecase.LedgerTx) error {
		if err := tx.PutTokenAccount(account); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLedgerRetriesSerializationFailure(t *testing.T) {
	ledger, mock := newMockLedger(t)
	address := solana.NewWallet().PublicKey()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("from native_accounts")).
		WithArgs(address.String()).
		WillReturnError(&pq.Error{Code: "40001"})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("from native_accounts")).
		WithArgs(address.String()).
		WillReturnRows(sqlmock.NewRows([]string{"lamports"}).AddRow("7"))
	mock.ExpectCommit()

	attempts := 0
	err := ledger.Update(context.Background(), func(tx usecase.LedgerTx) error {
		attempts++
		native, err := tx.NativeAccount(address)
		if err != nil {
			return err
		}
		assert.Equal(t, uint64(7), native.Lamports)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLedgerViewReadsWithoutLock(t *testing.T) {
	ledger, mock := newMockLedger(t)
	state := solana.NewWallet().PublicKey()
	address := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("from program_accounts") + `\s+where address = \$1\s*$`).
		WithArgs(state.String()).
		WillReturnRows(sqlmock.NewRows([]string{"data"}))
	mock.ExpectQuery(regexp.QuoteMeta("from token_accounts")).
		WithArgs(address.String()).
		WillReturnRows(sqlmock.NewRows([]string{"address", "mint", "owner", "amount"}).
			AddRow(address.String(), mint.String(), owner.String(), "250"))
	mock.ExpectQuery(regexp.QuoteMeta("from mints")).
		WithArgs(mint.String()).
		WillReturnRows(sqlmock.NewRows([]string{"address", "mint_authority", "decimals", "supply"}))
	mock.ExpectCommit()

	err := ledger.View(context.Background(), func(tx usecase.LedgerTx) error {
		read, err := tx.GlobalState(state)
		require.NoError(t, err)
		assert.Nil(t, read)

		account, err := tx.TokenAccount(address)
		require.NoError(t, err)
		assert.Equal(t, &domain.TokenAccount{Address: address, Mint: mint, Owner: owner, Amount: 250}, account)

		_, err = tx.Mint(mint)
		assert.ErrorIs(t, err, domain.ErrorAccountNotFound)
		return nil
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresLedgerRejectsInvalidState(t *testing.T) {
	ledger, mock := newMockLedger(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := ledger.Update(context.Background(), func(tx usecase.LedgerTx) error {
		return tx.PutGlobalState(solana.NewWallet().PublicKey(), &domain.GlobalState{RewardIntervalSeconds: -5})
	})
	assert.ErrorIs(t, err, domain.ErrorInvalidRewardInterval)
	assert.NoError(t, mock.ExpectationsWereMet())
}
