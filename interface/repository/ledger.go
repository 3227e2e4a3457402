package repository

import (
	"context"
	"database/sql"
	"errors"
	"rewards/domain"
	"rewards/usecase"
	"strconv"

	"github.com/gagliardetto/solana-go"
)

const (
	sqlStateFind = `
	select data
	from program_accounts
	where address = $1
`

	sqlStateUpsert = `
	insert into program_accounts as c (
			address, data, update_time
		)
		values (
			$1, $2, now()
		)
	on conflict (address) do
		update set
			data = $2, update_time = now()
`

	sqlTokenAccountFind = `
	select
		address, mint, owner, amount
	from token_accounts
	where address = $1
`

	sqlTokenAccountUpsert = `
	insert into token_accounts as c (
			address, mint, owner, amount
		)
		values (
			$1, $2, $3, $4::numeric
		)
	on conflict (address) do
		update set
			mint = $2, owner = $3, amount = $4::numeric
`

	sqlMintFind = `
	select
		address, mint_authority, decimals, supply
	from mints
	where address = $1
`

	sqlMintUpsert = `
	insert into mints as c (
			address, mint_authority, decimals, supply
		)
		values (
			$1, $2, $3, $4::numeric
		)
	on conflict (address) do
		update set
			mint_authority = $2, decimals = $3, supply = $4::numeric
`

	sqlNativeFind = `
	select lamports
	from native_accounts
	where address = $1
`

	sqlNativeUpsert = `
	insert into native_accounts as c (
			address, lamports
		)
		values (
			$1, $2::numeric
		)
	on conflict (address) do
		update set
			lamports = $2::numeric
`

	lockSuffix = ` for update`
)

// PostgresLedger keeps the ledger in postgres. Every Update is one
// serializable transaction; rows it reads are locked for update, so
// concurrent invocations touching the same state queue behind each other.
type PostgresLedger struct {
	handler TxHandler
}

func NewPostgresLedger(handler TxHandler) *PostgresLedger {
	return &PostgresLedger{handler: handler}
}

func (ledger *PostgresLedger) Update(ctx context.Context, fn func(tx usecase.LedgerTx) error) error {
	return ledger.handler.Transact(ctx, &TxOptionLedgerWrite, func(tx *sql.Tx) error {
		return fn(&postgresTx{ctx: ctx, tx: tx, lock: true})
	})
}

func (ledger *PostgresLedger) View(ctx context.Context, fn func(tx usecase.LedgerTx) error) error {
	return ledger.handler.Transact(ctx, &TxOptionLedgerRead, func(tx *sql.Tx) error {
		return fn(&postgresTx{ctx: ctx, tx: tx, lock: false})
	})
}

type postgresTx struct {
	ctx  context.Context
	tx   *sql.Tx
	lock bool
}

func (t *postgresTx) query(query string) string {
	if t.lock {
		return query + lockSuffix
	}
	return query
}

func (t *postgresTx) GlobalState(address solana.PublicKey) (*domain.GlobalState, error) {
	var data []byte
	err := t.tx.QueryRowContext(t.ctx, t.query(sqlStateFind), address.String()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	state := &domain.GlobalState{}
	if err := state.UnmarshalAccount(data); err != nil {
		return nil, err
	}
	return state, nil
}

func (t *postgresTx) PutGlobalState(address solana.PublicKey, state *domain.GlobalState) error {
	if err := state.Validate(); err != nil {
		return err
	}
	data, err := state.MarshalAccount()
	if err != nil {
		return err
	}
	_, err = t.tx.ExecContext(t.ctx, sqlStateUpsert, address.String(), data)
	return err
}

func (t *postgresTx) TokenAccount(address solana.PublicKey) (*domain.TokenAccount, error) {
	var addr, mint, owner string
	var amount uint64
	err := t.tx.QueryRowContext(t.ctx, t.query(sqlTokenAccountFind), address.String()).Scan(
		&addr, &mint, &owner, &amount,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrorAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	account := &domain.TokenAccount{Amount: amount}
	if account.Address, err = solana.PublicKeyFromBase58(addr); err != nil {
		return nil, err
	}
	if account.Mint, err = solana.PublicKeyFromBase58(mint); err != nil {
		return nil, err
	}
	if account.Owner, err = solana.PublicKeyFromBase58(owner); err != nil {
		return nil, err
	}
	return account, nil
}

func (t *postgresTx) PutTokenAccount(account *domain.TokenAccount) error {
	_, err := t.tx.ExecContext(t.ctx, sqlTokenAccountUpsert,
		account.Address.String(), account.Mint.String(), account.Owner.String(), formatUint(account.Amount),
	)
	return err
}

func (t *postgresTx) Mint(address solana.PublicKey) (*domain.Mint, error) {
	var addr, authority string
	mint := &domain.Mint{}
	err := t.tx.QueryRowContext(t.ctx, t.query(sqlMintFind), address.String()).Scan(
		&addr, &authority, &mint.Decimals, &mint.Supply,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrorAccountNotFound
	}
	if err != nil {
		return nil, err
	}

	if mint.Address, err = solana.PublicKeyFromBase58(addr); err != nil {
		return nil, err
	}
	if mint.MintAuthority, err = solana.PublicKeyFromBase58(authority); err != nil {
		return nil, err
	}
	return mint, nil
}

func (t *postgresTx) PutMint(mint *domain.Mint) error {
	_, err := t.tx.ExecContext(t.ctx, sqlMintUpsert,
		mint.Address.String(), mint.MintAuthority.String(), mint.Decimals, formatUint(mint.Supply),
	)
	return err
}

func (t *postgresTx) NativeAccount(address solana.PublicKey) (*domain.NativeAccount, error) {
	account := &domain.NativeAccount{Address: address}
	err := t.tx.QueryRowContext(t.ctx, t.query(sqlNativeFind), address.String()).Scan(&account.Lamports)
	if errors.Is(err, sql.ErrNoRows) {
		return account, nil
	}
	if err != nil {
		return nil, err
	}
	return account, nil
}

func (t *postgresTx) PutNativeAccount(account *domain.NativeAccount) error {
	_, err := t.tx.ExecContext(t.ctx, sqlNativeUpsert, account.Address.String(), formatUint(account.Lamports))
	return err
}

// formatUint passes uint64 values as text; database/sql rejects uint64
// arguments with the high bit set.
func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}
