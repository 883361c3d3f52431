package ledger

import (
	"errors"

	"github.com/sheikh-saqib/payments-engine/internal/models"
	"go.uber.org/zap"
)

// Stats counts what happened to the records of a run.
type Stats struct {
	Records int
	Applied int
	Dropped int
}

// Ledger replays transaction records against client accounts.
// It owns the account map and the transaction log and is not safe for
// concurrent use; records must be applied in arrival order.
type Ledger struct {
	accounts map[models.ClientID]*Account
	order    []models.ClientID // first-deposit order, used by Snapshot
	log      *TransactionLog
	logger   *zap.Logger
	stats    Stats
}

// NewLedger creates an empty ledger. A nil logger discards output.
func NewLedger(logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{
		accounts: make(map[models.ClientID]*Account),
		log:      NewTransactionLog(),
		logger:   logger,
	}
}

// Ingest applies every record in order and returns the resulting log.
func (l *Ledger) Ingest(records []models.TransactionRecord) *TransactionLog {
	for _, r := range records {
		l.Apply(r)
	}

	l.logger.Info("transactions replayed",
		zap.Int("records", l.stats.Records),
		zap.Int("applied", l.stats.Applied),
		zap.Int("dropped", l.stats.Dropped),
		zap.Int("accounts", len(l.accounts)),
	)
	return l.log
}

// Apply processes a single record and reports whether it changed any
// account. A declined record is still appended to the log so later
// records can reference it.
func (l *Ledger) Apply(r models.TransactionRecord) bool {
	err := l.dispatch(r)
	pos := l.log.Append(r)
	l.stats.Records++

	if err != nil {
		l.stats.Dropped++
		var rejection Rejection
		if !errors.As(err, &rejection) {
			rejection = Rejection(err.Error())
		}
		l.logger.Debug("transaction dropped",
			zap.Int("position", pos),
			zap.Stringer("type", r.Kind),
			zap.Uint16("client", uint16(r.Client)),
			zap.Uint32("tx", uint32(r.Tx)),
			zap.String("reason", string(rejection)),
		)
		return false
	}

	l.stats.Applied++
	return true
}

func (l *Ledger) dispatch(r models.TransactionRecord) error {
	acct, ok := l.accounts[r.Client]
	if !ok && r.Kind == models.KindDeposit {
		acct = newAccount(r.Client)
		l.accounts[r.Client] = acct
		l.order = append(l.order, r.Client)
		ok = true
	}
	if !ok {
		return ErrUnknownClient
	}

	switch r.Kind {
	case models.KindDeposit:
		return acct.Deposit(r.Amount)
	case models.KindWithdrawal:
		return acct.Withdraw(r.Amount)
	case models.KindDispute:
		ref, err := l.referenced(r)
		if err != nil {
			return err
		}
		return acct.Dispute(ref.Amount, ref.Tx)
	case models.KindResolve:
		ref, err := l.referenced(r)
		if err != nil {
			return err
		}
		return acct.Resolve(ref.Amount, ref.Tx)
	case models.KindChargeback:
		ref, err := l.referenced(r)
		if err != nil {
			return err
		}
		return acct.Chargeback(ref.Amount, ref.Tx)
	default:
		return ErrUnknownKind
	}
}

// referenced resolves the deposit a dispute-family record points at. Only
// deposits made by the same client can be disputed.
func (l *Ledger) referenced(r models.TransactionRecord) (models.TransactionRecord, error) {
	ref, ok := l.log.FindReferenced(l.log.Len(), r.Tx)
	if !ok {
		return models.TransactionRecord{}, ErrReferenceNotFound
	}
	if ref.Kind != models.KindDeposit {
		return models.TransactionRecord{}, ErrReferenceNotDeposit
	}
	if ref.Client != r.Client {
		return models.TransactionRecord{}, ErrClientMismatch
	}
	return ref, nil
}

// Snapshot returns the state of every known account in the order the
// accounts were created.
func (l *Ledger) Snapshot() []models.AccountSnapshot {
	out := make([]models.AccountSnapshot, 0, len(l.order))
	for _, client := range l.order {
		out = append(out, l.accounts[client].Snapshot())
	}
	return out
}

// Account returns the snapshot of a single client.
func (l *Ledger) Account(client models.ClientID) (models.AccountSnapshot, bool) {
	acct, ok := l.accounts[client]
	if !ok {
		return models.AccountSnapshot{}, false
	}
	return acct.Snapshot(), true
}

// IsDisputed reports whether tx is under an open dispute for client.
func (l *Ledger) IsDisputed(client models.ClientID, tx models.TxID) bool {
	acct, ok := l.accounts[client]
	return ok && acct.IsDisputed(tx)
}

// Log exposes the records ingested so far.
func (l *Ledger) Log() *TransactionLog { return l.log }

func (l *Ledger) Stats() Stats { return l.stats }
