package ledger

import (
	"github.com/sheikh-saqib/payments-engine/internal/models"
)

// Rejection is the reason a record was declined. Rejections never leave the
// ledger package as failures; they only feed the debug log and run counters.
type Rejection string

func (r Rejection) Error() string { return string(r) }

const (
	ErrAccountLocked       Rejection = "account_locked"
	ErrInsufficientFunds   Rejection = "insufficient_funds"
	ErrNotDisputed         Rejection = "not_disputed"
	ErrUnknownClient       Rejection = "unknown_client"
	ErrReferenceNotFound   Rejection = "reference_not_found"
	ErrReferenceNotDeposit Rejection = "reference_not_deposit"
	ErrClientMismatch      Rejection = "client_mismatch"
	ErrUnknownKind         Rejection = "unknown_kind"
)

// Account holds the balances of one client.
//
// total == available + held after every applied operation. A rejected
// operation leaves every field untouched. Once locked, the account never
// changes again.
type Account struct {
	client    models.ClientID
	available models.Amount
	held      models.Amount
	total     models.Amount
	locked    bool
	disputed  map[models.TxID]struct{}
}

func newAccount(client models.ClientID) *Account {
	return &Account{
		client:   client,
		disputed: make(map[models.TxID]struct{}),
	}
}

// Deposit credits amount to available and total.
func (a *Account) Deposit(amount models.Amount) error {
	if a.locked {
		return ErrAccountLocked
	}
	a.available = a.available.Add(amount)
	a.total = a.total.Add(amount)
	return nil
}

// Withdraw debits amount from available and total when available covers it.
func (a *Account) Withdraw(amount models.Amount) error {
	if a.locked {
		return ErrAccountLocked
	}
	if !a.available.GreaterThanOrEqual(amount) {
		return ErrInsufficientFunds
	}
	a.available = a.available.Sub(amount)
	a.total = a.total.Sub(amount)
	return nil
}

// Dispute moves amount from available to held and marks tx as disputed.
// Total is unchanged.
func (a *Account) Dispute(amount models.Amount, tx models.TxID) error {
	if a.locked {
		return ErrAccountLocked
	}
	if !a.available.GreaterThanOrEqual(amount) {
		return ErrInsufficientFunds
	}
	a.available = a.available.Sub(amount)
	a.held = a.held.Add(amount)
	a.disputed[tx] = struct{}{}
	return nil
}

// Resolve releases a disputed amount back to available.
func (a *Account) Resolve(amount models.Amount, tx models.TxID) error {
	if a.locked {
		return ErrAccountLocked
	}
	if !a.IsDisputed(tx) {
		return ErrNotDisputed
	}
	a.held = a.held.Sub(amount)
	a.available = a.available.Add(amount)
	delete(a.disputed, tx)
	return nil
}

// Chargeback writes a disputed amount off held and total and locks the
// account. Available was already reduced when the dispute opened.
func (a *Account) Chargeback(amount models.Amount, tx models.TxID) error {
	if a.locked {
		return ErrAccountLocked
	}
	if !a.IsDisputed(tx) {
		return ErrNotDisputed
	}
	a.held = a.held.Sub(amount)
	a.total = a.total.Sub(amount)
	a.locked = true
	return nil
}

// IsDisputed reports whether tx has an open dispute on this account.
func (a *Account) IsDisputed(tx models.TxID) bool {
	_, ok := a.disputed[tx]
	return ok
}

func (a *Account) Locked() bool { return a.locked }

// Snapshot returns a copy of the balances.
func (a *Account) Snapshot() models.AccountSnapshot {
	return models.AccountSnapshot{
		Client:    a.client,
		Available: a.available,
		Held:      a.held,
		Total:     a.total,
		Locked:    a.locked,
	}
}
