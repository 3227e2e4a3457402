package usecase_test

import (
	"context"
	"rewards/domain"
	"rewards/infrastructure/logger"
	"rewards/interface/repository"
	"rewards/usecase"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
)

const tokens = 1_000_000_000

var genesisTime = time.Unix(1_700_000_000, 0)

type fakeOracle struct {
	output uint64
	err    error
	calls  int
}

func (o *fakeOracle) Quote(ctx context.Context, inputMint, outputMint solana.PublicKey, amount uint64) (uint64, error) {
	o.calls++
	return o.output, o.err
}

type fixture struct {
	ctx        context.Context
	clock      *clockwork.FakeClock
	ledger     *repository.MemoryLedger
	deployment *usecase.Deployment
	oracle     *fakeOracle

	authority solana.PrivateKey
	mint      solana.PublicKey

	genesis       *usecase.GenesisInteractor
	states        *usecase.StateInteractor
	transfers     *usecase.TransferInteractor
	swaps         *usecase.SwapInteractor
	distributions *usecase.DistributionInteractor
	taxes         *usecase.TaxInteractor
	statistics    *usecase.StatisticInteractor
}

// newFixture sets up a deployment with an asset mint but no global state.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	program, err := domain.NewProgram(solana.NewWallet().PublicKey())
	require.NoError(t, err)

	f := &fixture{
		ctx:    context.Background(),
		clock:  clockwork.NewFakeClockAt(genesisTime),
		ledger: repository.NewMemoryLedger(),
		oracle: &fakeOracle{},
	}
	f.deployment = &usecase.Deployment{
		Program: program,
		Ledger:  f.ledger,
		Clock:   f.clock,
		Logger:  logger.Discard(),
	}
	require.NoError(t, f.deployment.Validate())

	f.authority, err = solana.NewRandomPrivateKey()
	require.NoError(t, err)

	f.genesis = usecase.NewGenesisInteractor(f.deployment)
	f.states = usecase.NewStateInteractor(f.deployment)
	f.transfers = usecase.NewTransferInteractor(f.deployment)
	f.swaps = usecase.NewSwapInteractor(f.deployment, f.oracle)
	f.distributions = usecase.NewDistributionInteractor(f.deployment)
	f.taxes = usecase.NewTaxInteractor(f.deployment)
	f.statistics = usecase.NewStatisticInteractor(f.deployment)

	mint, err := f.genesis.CreateMint(f.ctx, solana.NewWallet().PublicKey(), 9)
	require.NoError(t, err)
	f.mint = mint.Address
	return f
}

func (f *fixture) program() *domain.Program {
	return f.deployment.Program
}

func (f *fixture) initArgs(rate uint16, interval int64) domain.InitializeArgs {
	return domain.InitializeArgs{
		TaxRateBasisPoints:    rate,
		RewardIntervalSeconds: interval,
		Asset:                 f.mint,
		TaxVault:              f.program().TaxVault,
		RewardVault:           f.program().RewardVault,
	}
}

// initialize creates the global state signed by the fixture's authority.
func (f *fixture) initialize(t *testing.T, rate uint16, interval int64) *domain.GlobalState {
	t.Helper()
	args := f.initArgs(rate, interval)
	state, err := f.states.Initialize(f.ctx, args, f.sign(t, args, f.authority))
	require.NoError(t, err)
	return state
}

func (f *fixture) sign(t *testing.T, ix domain.Instruction, key solana.PrivateKey) domain.Authorization {
	t.Helper()
	auth, err := domain.Sign(f.program().ID, ix, key)
	require.NoError(t, err)
	return auth
}

func (f *fixture) newKey(t *testing.T) solana.PrivateKey {
	t.Helper()
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)
	return key
}

// account opens an asset account for owner holding amount.
func (f *fixture) account(t *testing.T, owner solana.PublicKey, amount uint64) solana.PublicKey {
	t.Helper()
	account, err := f.genesis.CreateTokenAccount(f.ctx, solana.NewWallet().PublicKey(), f.mint, owner, amount)
	require.NoError(t, err)
	return account.Address
}

func (f *fixture) balance(t *testing.T, address solana.PublicKey) uint64 {
	t.Helper()
	account, err := f.genesis.TokenAccount(f.ctx, address)
	require.NoError(t, err)
	return account.Amount
}

func (f *fixture) lamports(t *testing.T, address solana.PublicKey) uint64 {
	t.Helper()
	lamports, err := f.genesis.NativeBalance(f.ctx, address)
	require.NoError(t, err)
	return lamports
}

func (f *fixture) state(t *testing.T) *domain.GlobalState {
	t.Helper()
	state, err := f.states.State(f.ctx)
	require.NoError(t, err)
	return state
}

func (f *fixture) snapshot(t *testing.T) *domain.StatisticResult {
	t.Helper()
	stat, err := f.statistics.Statistic(f.ctx)
	require.NoError(t, err)
	return stat
}

// forceBalance overwrites a token account balance without touching supply.
func forceBalance(address solana.PublicKey, amount uint64) func(tx usecase.LedgerTx) error {
	return func(tx usecase.LedgerTx) error {
		account, err := tx.TokenAccount(address)
		if err != nil {
			return err
		}
		account.Amount = amount
		return tx.PutTokenAccount(account)
	}
}
