package domain

import "time"

// StatisticResult is a read-only snapshot of a deployment.
type StatisticResult struct {
	State              GlobalState `json:"state"`
	TaxVaultBalance    uint64      `json:"tax_vault_balance"`
	RewardVaultBalance uint64      `json:"reward_vault_balance"`
	Supply             uint64      `json:"supply"`
	Decimals           uint8       `json:"decimals"`
	Now                time.Time   `json:"now"`
}

// SecondsUntilDistribution is zero once a distribution is due.
func (r *StatisticResult) SecondsUntilDistribution() int64 {
	return r.State.SecondsUntilDistribution(r.Now.Unix())
}
