package usecase

import (
	"errors"
	"log/slog"
	"rewards/domain"
	"rewards/interface/exporter"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// Deployment is what every interactor needs to reach one program's state:
// its derived addresses, the host ledger, the clock and a logger.
type Deployment struct {
	Program *domain.Program
	Ledger  Ledger
	Clock   clockwork.Clock
	Logger  *slog.Logger
}

func (d *Deployment) Validate() error {
	if d.Program == nil {
		return errors.New("program is required")
	}
	if d.Ledger == nil {
		return errors.New("ledger is required")
	}
	if d.Logger == nil {
		return errors.New("logger is required")
	}
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	return nil
}

func (d *Deployment) now() int64 {
	return d.Clock.Now().Unix()
}

// invocation tags the log lines and metrics of one operation call.
type invocation struct {
	op      string
	id      string
	log     *slog.Logger
	clock   clockwork.Clock
	started time.Time
}

func (d *Deployment) begin(op string) *invocation {
	id := uuid.NewString()
	return &invocation{
		op:      op,
		id:      id,
		log:     d.Logger.With("op", op, "invocation", id),
		clock:   d.Clock,
		started: d.Clock.Now(),
	}
}

// end records the outcome and hands err back unchanged.
func (inv *invocation) end(err error) error {
	elapsed := inv.clock.Since(inv.started)
	switch {
	case err == nil:
		exporter.ObserveOperation(inv.op, exporter.StatusOk, elapsed)
	case domain.IsRejection(err):
		exporter.ObserveOperation(inv.op, exporter.StatusRejected, elapsed)
		inv.log.Warn("🟡 rejected", "reason", err)
	default:
		exporter.ObserveOperation(inv.op, exporter.StatusError, elapsed)
		exporter.IncErrorCount()
		inv.log.Error("🔴 failed", "error", err)
	}
	return err
}

// authorize verifies auth's signature over ix. It does not decide whether
// the signer may perform ix; callers compare the signer to a stored identity.
func authorize(program *domain.Program, ix domain.Instruction, auth domain.Authorization) error {
	if auth.Signer.IsZero() {
		return domain.ErrorUnauthorized
	}
	msg, err := domain.InstructionMessage(program.ID, ix)
	if err != nil {
		return err
	}
	if !auth.Signature.Verify(auth.Signer, msg) {
		return domain.ErrorUnauthorized
	}
	return nil
}

func requireState(tx LedgerTx, program *domain.Program) (*domain.GlobalState, error) {
	state, err := tx.GlobalState(program.State)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, domain.ErrorNotInitialized
	}
	return state, nil
}

func requireOwner(account *domain.TokenAccount, owner solana.PublicKey) error {
	if !account.Owner.Equals(owner) {
		return domain.ErrorInvalidOwner
	}
	return nil
}
