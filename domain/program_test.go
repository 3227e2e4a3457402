package domain

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgram(t *testing.T) {
	id := solana.NewWallet().PublicKey()

	program, err := NewProgram(id)
	require.NoError(t, err)
	assert.Equal(t, id, program.ID)

	for seed, address := range map[string]solana.PublicKey{
		SeedState:         program.State,
		SeedTaxVault:      program.TaxVault,
		SeedRewardVault:   program.RewardVault,
		SeedMintAuthority: program.MintAuthority,
	} {
		expected, _, err := solana.FindProgramAddress([][]byte{[]byte(seed)}, id)
		require.NoError(t, err)
		assert.Equal(t, expected, address, seed)
	}
	assert.NotEqual(t, program.TaxVault, program.RewardVault)

	again, err := NewProgram(id)
	require.NoError(t, err)
	assert.Equal(t, program, again)
}

func TestNewProgramRequiresId(t *testing.T) {
	_, err := NewProgram(solana.PublicKey{})
	assert.Error(t, err)
}

func TestSign(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	ix := TransferWithTaxArgs{
		Source:      solana.NewWallet().PublicKey(),
		Destination: solana.NewWallet().PublicKey(),
		Amount:      42,
	}
	auth, err := Sign(programID, ix, key)
	require.NoError(t, err)
	assert.Equal(t, key.PublicKey(), auth.Signer)

	msg, err := InstructionMessage(programID, ix)
	require.NoError(t, err)
	assert.Equal(t, programID[:], msg[:32])
	assert.True(t, auth.Signature.Verify(auth.Signer, msg))

	tampered := ix
	tampered.Amount = 43
	msg, err = InstructionMessage(programID, tampered)
	require.NoError(t, err)
	assert.False(t, auth.Signature.Verify(auth.Signer, msg))

	msg, err = InstructionMessage(solana.NewWallet().PublicKey(), ix)
	require.NoError(t, err)
	assert.False(t, auth.Signature.Verify(auth.Signer, msg))
}

func TestInstructionMessageDistinguishesInstructions(t *testing.T) {
	programID := solana.NewWallet().PublicKey()
	destination := solana.NewWallet().PublicKey()

	collect, err := InstructionMessage(programID, CollectTaxArgs{Destination: destination})
	require.NoError(t, err)
	distribute, err := InstructionMessage(programID, DistributeRewardsArgs{Holder: destination})
	require.NoError(t, err)

	assert.Equal(t, collect[40:], distribute[40:])
	assert.NotEqual(t, collect[32:40], distribute[32:40])
}
