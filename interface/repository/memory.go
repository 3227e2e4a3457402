package repository

import (
	"context"
	"errors"
	"rewards/domain"
	"rewards/usecase"
	"sync"

	"github.com/gagliardetto/solana-go"
)

var ErrorReadOnly = errors.New("write in a read-only transaction")

// MemoryLedger is an in-process host ledger. Updates are serialized by a
// mutex and applied from a write buffer only when the callback succeeds.
type MemoryLedger struct {
	mu       sync.RWMutex
	states   map[solana.PublicKey][]byte
	accounts map[solana.PublicKey]domain.TokenAccount
	mints    map[solana.PublicKey]domain.Mint
	natives  map[solana.PublicKey]uint64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		states:   make(map[solana.PublicKey][]byte),
		accounts: make(map[solana.PublicKey]domain.TokenAccount),
		mints:    make(map[solana.PublicKey]domain.Mint),
		natives:  make(map[solana.PublicKey]uint64),
	}
}

func (ledger *MemoryLedger) Update(ctx context.Context, fn func(tx usecase.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ledger.mu.Lock()
	defer ledger.mu.Unlock()

	tx := newMemoryTx(ledger, false)
	if err := fn(tx); err != nil {
		return err
	}
	tx.commit()
	return nil
}

func (ledger *MemoryLedger) View(ctx context.Context, fn func(tx usecase.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()

	return fn(newMemoryTx(ledger, true))
}

type memoryTx struct {
	ledger   *MemoryLedger
	readOnly bool

	states   map[solana.PublicKey][]byte
	accounts map[solana.PublicKey]domain.TokenAccount
	mints    map[solana.PublicKey]domain.Mint
	natives  map[solana.PublicKey]uint64
}

func newMemoryTx(ledger *MemoryLedger, readOnly bool) *memoryTx {
	return &memoryTx{
		ledger:   ledger,
		readOnly: readOnly,
		states:   make(map[solana.PublicKey][]byte),
		accounts: make(map[solana.PublicKey]domain.TokenAccount),
		mints:    make(map[solana.PublicKey]domain.Mint),
		natives:  make(map[solana.PublicKey]uint64),
	}
}

func (tx *memoryTx) commit() {
	for k, v := range tx.states {
		tx.ledger.states[k] = v
	}
	for k, v := range tx.accounts {
		tx.ledger.accounts[k] = v
	}
	for k, v := range tx.mints {
		tx.ledger.mints[k] = v
	}
	for k, v := range tx.natives {
		tx.ledger.natives[k] = v
	}
}

func (tx *memoryTx) GlobalState(address solana.PublicKey) (*domain.GlobalState, error) {
	data, ok := tx.states[address]
	if !ok {
		data, ok = tx.ledger.states[address]
	}
	if !ok {
		return nil, nil
	}
	state := &domain.GlobalState{}
	if err := state.UnmarshalAccount(data); err != nil {
		return nil, err
	}
	return state, nil
}

func (tx *memoryTx) PutGlobalState(address solana.PublicKey, state *domain.GlobalState) error {
	if tx.readOnly {
		return ErrorReadOnly
	}
	if err := state.Validate(); err != nil {
		return err
	}
	data, err := state.MarshalAccount()
	if err != nil {
		return err
	}
	tx.states[address] = data
	return nil
}

func (tx *memoryTx) TokenAccount(address solana.PublicKey) (*domain.TokenAccount, error) {
	account, ok := tx.accounts[address]
	if !ok {
		account, ok = tx.ledger.accounts[address]
	}
	if !ok {
		return nil, domain.ErrorAccountNotFound
	}
	return &account, nil
}

func (tx *memoryTx) PutTokenAccount(account *domain.TokenAccount) error {
	if tx.readOnly {
		return ErrorReadOnly
	}
	tx.accounts[account.Address] = *account
	return nil
}

func (tx *memoryTx) Mint(address solana.PublicKey) (*domain.Mint, error) {
	mint, ok := tx.mints[address]
	if !ok {
		mint, ok = tx.ledger.mints[address]
	}
	if !ok {
		return nil, domain.ErrorAccountNotFound
	}
	return &mint, nil
}

func (tx *memoryTx) PutMint(mint *domain.Mint) error {
	if tx.readOnly {
		return ErrorReadOnly
	}
	tx.mints[mint.Address] = *mint
	return nil
}

func (tx *memoryTx) NativeAccount(address solana.PublicKey) (*domain.NativeAccount, error) {
	lamports, ok := tx.natives[address]
	if !ok {
		lamports = tx.ledger.natives[address]
	}
	return &domain.NativeAccount{Address: address, Lamports: lamports}, nil
}

func (tx *memoryTx) PutNativeAccount(account *domain.NativeAccount) error {
	if tx.readOnly {
		return ErrorReadOnly
	}
	tx.natives[account.Address] = account.Lamports
	return nil
}
