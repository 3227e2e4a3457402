package domain

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

const (
	InstructionInitialize                  = "initialize"
	InstructionTransferWithTax             = "transfer_with_tax"
	InstructionSwapSolForAsset             = "swap_sol_for_asset"
	InstructionDistributeRewards           = "distribute_rewards"
	InstructionCollectTax                  = "collect_tax"
	InstructionForceUpdateLastDistribution = "force_update_last_distribution"
)

// Instruction is the typed argument set of one operation.
type Instruction interface {
	InstructionName() string
}

type InitializeArgs struct {
	TaxRateBasisPoints    uint16
	RewardIntervalSeconds int64
	Asset                 solana.PublicKey
	TaxVault              solana.PublicKey
	RewardVault           solana.PublicKey
}

func (InitializeArgs) InstructionName() string { return InstructionInitialize }

type TransferWithTaxArgs struct {
	Source      solana.PublicKey
	Destination solana.PublicKey
	Amount      uint64
}

func (TransferWithTaxArgs) InstructionName() string { return InstructionTransferWithTax }

type SwapArgs struct {
	PaymentAmount    uint64
	MinOutputAmount  uint64
	PaymentRecipient solana.PublicKey
}

func (SwapArgs) InstructionName() string { return InstructionSwapSolForAsset }

type DistributeRewardsArgs struct {
	Holder solana.PublicKey
}

func (DistributeRewardsArgs) InstructionName() string { return InstructionDistributeRewards }

type CollectTaxArgs struct {
	Destination solana.PublicKey
}

func (CollectTaxArgs) InstructionName() string { return InstructionCollectTax }

type ForceUpdateLastDistributionArgs struct {
	NewTimestamp int64
}

func (ForceUpdateLastDistributionArgs) InstructionName() string {
	return InstructionForceUpdateLastDistribution
}

// InstructionMessage is the byte string a signer signs for ix:
// program id, the 8-byte instruction sighash and the borsh-encoded args.
func InstructionMessage(programID solana.PublicKey, ix Instruction) ([]byte, error) {
	sighash := sha256.Sum256([]byte("global:" + ix.InstructionName()))

	buf := new(bytes.Buffer)
	buf.Write(programID[:])
	buf.Write(sighash[:8])
	if err := bin.NewBorshEncoder(buf).Encode(ix); err != nil {
		return nil, fmt.Errorf("encoding %v args: %w", ix.InstructionName(), err)
	}
	return buf.Bytes(), nil
}

// Authorization is a signer identity with its signature over one instruction.
type Authorization struct {
	Signer    solana.PublicKey
	Signature solana.Signature
}

// Sign authorizes ix with key.
func Sign(programID solana.PublicKey, ix Instruction, key solana.PrivateKey) (Authorization, error) {
	msg, err := InstructionMessage(programID, ix)
	if err != nil {
		return Authorization{}, err
	}
	sig, err := key.Sign(msg)
	if err != nil {
		return Authorization{}, fmt.Errorf("signing %v: %w", ix.InstructionName(), err)
	}
	return Authorization{Signer: key.PublicKey(), Signature: sig}, nil
}
