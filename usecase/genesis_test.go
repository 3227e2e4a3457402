package usecase_test

import (
	"rewards/domain"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesis(t *testing.T) {
	f := newFixture(t)

	_, err := f.genesis.CreateMint(f.ctx, f.mint, 6)
	assert.ErrorIs(t, err, domain.ErrorAlreadyInitialized)

	owner := solana.NewWallet().PublicKey()
	address := f.account(t, owner, 70)
	_, err = f.genesis.CreateTokenAccount(f.ctx, address, f.mint, owner, 5)
	assert.ErrorIs(t, err, domain.ErrorAlreadyInitialized)
	f.account(t, owner, 30)

	_, err = f.genesis.CreateTokenAccount(f.ctx, solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey(), owner, 1)
	assert.ErrorIs(t, err, domain.ErrorAccountNotFound)

	f.initialize(t, 0, 60)
	assert.Equal(t, uint64(100), f.snapshot(t).Supply)

	_, err = f.genesis.Airdrop(f.ctx, owner, 5)
	require.NoError(t, err)
	account, err := f.genesis.Airdrop(f.ctx, owner, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), account.Lamports)
	assert.Zero(t, f.lamports(t, solana.NewWallet().PublicKey()))
}
