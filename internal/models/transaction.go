package models

import "fmt"

// ClientID identifies an account holder.
type ClientID uint16

// TxID identifies a transaction record in the input stream.
type TxID uint32

// Kind is the closed set of transaction types the engine understands.
type Kind uint8

const (
	KindDeposit Kind = iota + 1
	KindWithdrawal
	KindDispute
	KindResolve
	KindChargeback
)

func (k Kind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindWithdrawal:
		return "withdrawal"
	case KindDispute:
		return "dispute"
	case KindResolve:
		return "resolve"
	case KindChargeback:
		return "chargeback"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// CarriesAmount reports whether records of this kind hold their own amount.
// Dispute-family records borrow the amount of the record they reference.
func (k Kind) CarriesAmount() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// ParseKind maps an input type tag to a Kind. Both "withdrawal" and
// "withdraw" are accepted.
func ParseKind(tag string) (Kind, bool) {
	switch tag {
	case "deposit":
		return KindDeposit, true
	case "withdrawal", "withdraw":
		return KindWithdrawal, true
	case "dispute":
		return KindDispute, true
	case "resolve":
		return KindResolve, true
	case "chargeback":
		return KindChargeback, true
	}
	return 0, false
}

// TransactionRecord is one decoded input row. Amount is the zero value for
// dispute-family kinds.
type TransactionRecord struct {
	Kind   Kind
	Client ClientID
	Tx     TxID
	Amount Amount
}
