package repository

import (
	"context"
	"rewards/domain"
	"sort"

	"github.com/behrang/sqlbatch"
	"github.com/gagliardetto/solana-go"
)

const (
	sqlHolderFindAll = `
	select
		address, mint, owner, amount
	from token_accounts
	where mint = $1 and amount > 0
	order by amount desc, address
`
)

// HolderRepository lists the asset holders kept in postgres.
type HolderRepository struct {
	batchHandler BatchHandler
}

func NewHolderRepository(db BatchHandler) *HolderRepository {
	return &HolderRepository{batchHandler: db}
}

func readAllHolders(memo interface{}, scan func(...interface{}) error) (interface{}, error) {
	var addr, mint, owner string
	r := domain.TokenAccount{}
	err := scan(
		&addr, &mint, &owner, &r.Amount,
	)
	if err == nil {
		r.Address, err = solana.PublicKeyFromBase58(addr)
	}
	if err == nil {
		r.Mint, err = solana.PublicKeyFromBase58(mint)
	}
	if err == nil {
		r.Owner, err = solana.PublicKeyFromBase58(owner)
	}

	list := memo.([]domain.TokenAccount)
	list = append(list, r)
	return list, err
}

// Holders returns the accounts of mint with a positive balance, largest first.
func (repo *HolderRepository) Holders(ctx context.Context, mint solana.PublicKey) ([]domain.TokenAccount, error) {
	results, err := repo.batchHandler.Batch(&TxOptionListing, []sqlbatch.Command{
		{
			Query:   sqlHolderFindAll,
			Args:    []interface{}{mint.String()},
			Init:    make([]domain.TokenAccount, 0),
			ReadAll: readAllHolders,
		},
	})
	if err != nil {
		return nil, err
	}
	result, _ := results[0].([]domain.TokenAccount)
	return result, nil
}

// Holders returns the accounts of mint with a positive balance, largest first.
func (ledger *MemoryLedger) Holders(ctx context.Context, mint solana.PublicKey) ([]domain.TokenAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ledger.mu.RLock()
	defer ledger.mu.RUnlock()

	holders := make([]domain.TokenAccount, 0)
	for _, account := range ledger.accounts {
		if account.Mint.Equals(mint) && account.Amount > 0 {
			holders = append(holders, account)
		}
	}
	sort.Slice(holders, func(i, j int) bool {
		if holders[i].Amount != holders[j].Amount {
			return holders[i].Amount > holders[j].Amount
		}
		return holders[i].Address.String() < holders[j].Address.String()
	})
	return holders, nil
}
