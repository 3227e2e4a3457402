package domain

import (
	"bytes"
	"crypto/sha256"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// MinRewardIntervalSeconds is the shortest interval a deployment accepts.
const MinRewardIntervalSeconds = 60

// GlobalStateLen is the encoded size of GlobalState without its discriminator.
const GlobalStateLen = 32 + 32 + 32 + 32 + 2 + 8 + 8

var GlobalStateDiscriminator = accountDiscriminator("GlobalState")

// GlobalState is the single configuration and control record of a
// deployment. It lives at the program's state address.
type GlobalState struct {
	Authority                 solana.PublicKey `json:"authority"`
	Asset                     solana.PublicKey `json:"asset"`
	TaxVault                  solana.PublicKey `json:"tax_vault"`
	RewardVault               solana.PublicKey `json:"reward_vault"`
	TaxRateBasisPoints        uint16           `json:"tax_rate_bps"`
	RewardIntervalSeconds     int64            `json:"reward_interval_seconds"`
	LastDistributionTimestamp int64            `json:"last_distribution_timestamp"`
}

// Validate checks the invariants a stored record must satisfy.
func (s *GlobalState) Validate() error {
	if s.TaxRateBasisPoints > MaxBasisPoints {
		return ErrorInvalidTaxRate
	}
	if s.RewardIntervalSeconds < MinRewardIntervalSeconds {
		return ErrorInvalidRewardInterval
	}
	return nil
}

// DistributionDue reports whether a distribution may run at now.
func (s *GlobalState) DistributionDue(now int64) bool {
	return now >= s.NextDistribution()
}

// NextDistribution is the earliest unix time a distribution may run. It
// saturates at math.MaxInt64 instead of wrapping.
func (s *GlobalState) NextDistribution() int64 {
	return SaturatingAdd(s.LastDistributionTimestamp, s.RewardIntervalSeconds)
}

// SecondsUntilDistribution is zero once a distribution is due at now.
func (s *GlobalState) SecondsUntilDistribution(now int64) int64 {
	next := s.NextDistribution()
	if now >= next {
		return 0
	}
	return SaturatingSub(next, now)
}

// IsVault reports whether address is one of the two program vaults.
func (s *GlobalState) IsVault(address solana.PublicKey) bool {
	return address.Equals(s.TaxVault) || address.Equals(s.RewardVault)
}

// IsAuthority is the capability check for admin operations.
func (s *GlobalState) IsAuthority(signer solana.PublicKey) bool {
	return !signer.IsZero() && signer.Equals(s.Authority)
}

// MarshalAccount encodes the record as account data: an 8-byte
// discriminator followed by the borsh-encoded fields.
func (s *GlobalState) MarshalAccount() ([]byte, error) {
	buf := new(bytes.Buffer)
	buf.Write(GlobalStateDiscriminator[:])
	if err := bin.NewBorshEncoder(buf).Encode(s); err != nil {
		return nil, fmt.Errorf("encoding global state: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *GlobalState) UnmarshalAccount(data []byte) error {
	if len(data) != len(GlobalStateDiscriminator)+GlobalStateLen {
		return ErrorInvalidAccountData
	}
	if !bytes.Equal(data[:8], GlobalStateDiscriminator[:]) {
		return ErrorInvalidAccountData
	}
	if err := bin.NewBorshDecoder(data[8:]).Decode(s); err != nil {
		return fmt.Errorf("%w: %v", ErrorInvalidAccountData, err)
	}
	return nil
}

func accountDiscriminator(name string) [8]byte {
	var out [8]byte
	sum := sha256.Sum256([]byte("account:" + name))
	copy(out[:], sum[:8])
	return out
}
