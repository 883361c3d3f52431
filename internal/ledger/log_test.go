package ledger

import (
	"testing"

	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionLogFindReferenced(t *testing.T) {
	log := NewTransactionLog()
	log.Append(deposit(1, 10, "1.0"))
	log.Append(withdrawal(1, 11, "0.5"))
	log.Append(deposit(2, 10, "9.0"))
	log.Append(dispute(1, 10))

	tests := []struct {
		name    string
		current int
		tx      models.TxID
		wantOK  bool
		want    models.TransactionRecord
	}{
		{name: "earliest match wins", current: 4, tx: 10, wantOK: true, want: deposit(1, 10, "1.0")},
		{name: "withdrawal is found", current: 4, tx: 11, wantOK: true, want: withdrawal(1, 11, "0.5")},
		{name: "current position is excluded", current: 1, tx: 11},
		{name: "nothing before zero", current: 0, tx: 10},
		{name: "unknown id", current: 4, tx: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := log.FindReferenced(tt.current, tt.tx)
			require.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTransactionLogAppendOrder(t *testing.T) {
	log := NewTransactionLog()
	assert.Equal(t, 0, log.Append(deposit(1, 1, "1")))
	assert.Equal(t, 1, log.Append(dispute(1, 1)))
	assert.Equal(t, 2, log.Len())
	assert.Equal(t, models.KindDispute, log.At(1).Kind)

	records := log.Records()
	records[0].Client = 42
	assert.Equal(t, models.ClientID(1), log.At(0).Client)
}
