package cmd

import (
	"errors"
	"fmt"
	"rewards/domain"
	"rewards/domain/config"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

var ErrorNoKeypair = errors.New("a signer keypair is required: set 'keypair' or pass --keypair")

func loadSigner() (solana.PrivateKey, error) {
	path := config.GetKeypairPath()
	if path == "" {
		return nil, ErrorNoKeypair
	}
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keypair %v: %w", path, err)
	}
	return key, nil
}

// signInstruction signs ix with the configured keypair for the configured program.
func signInstruction(ix domain.Instruction) (domain.Authorization, error) {
	key, err := loadSigner()
	if err != nil {
		return domain.Authorization{}, err
	}
	return domain.Sign(program.ID, ix, key)
}

func publicKeyFlag(cmd *cobra.Command, name string) (solana.PublicKey, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return solana.PublicKey{}, err
	}
	key, err := solana.PublicKeyFromBase58(strings.TrimSpace(value))
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid --%v: %w", name, err)
	}
	return key, nil
}

func amountFlag(cmd *cobra.Command, name string) (uint64, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return 0, err
	}
	amount, err := domain.ParseAmount(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid --%v: %w", name, err)
	}
	return amount, nil
}
