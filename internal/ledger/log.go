package ledger

import "github.com/sheikh-saqib/payments-engine/internal/models"

// TransactionLog is the append-only record of every input row in arrival
// order. Position i is the i-th record ingested.
type TransactionLog struct {
	records []models.TransactionRecord
	first   map[models.TxID]int // earliest position of each tx id
}

func NewTransactionLog() *TransactionLog {
	return &TransactionLog{first: make(map[models.TxID]int)}
}

// Append stores r and returns its position.
func (l *TransactionLog) Append(r models.TransactionRecord) int {
	pos := len(l.records)
	l.records = append(l.records, r)
	if _, seen := l.first[r.Tx]; !seen {
		l.first[r.Tx] = pos
	}
	return pos
}

func (l *TransactionLog) Len() int { return len(l.records) }

// At returns the record at position i. It panics if i is out of range.
func (l *TransactionLog) At(i int) models.TransactionRecord {
	return l.records[i]
}

// FindReferenced returns the earliest record with tx id tx at a position
// strictly below current. Duplicate ids resolve to the first occurrence.
func (l *TransactionLog) FindReferenced(current int, tx models.TxID) (models.TransactionRecord, bool) {
	pos, ok := l.first[tx]
	if !ok || pos >= current {
		return models.TransactionRecord{}, false
	}
	return l.records[pos], true
}

// Records returns a copy of the log contents.
func (l *TransactionLog) Records() []models.TransactionRecord {
	out := make([]models.TransactionRecord, len(l.records))
	copy(out, l.records)
	return out
}
