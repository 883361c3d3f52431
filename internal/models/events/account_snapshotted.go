package events

import (
	"time"

	"github.com/sheikh-saqib/payments-engine/internal/models"
)

// AccountSnapshotted is published once per account after a run completes.
type AccountSnapshotted struct {
	RunID      string          `json:"run_id"`
	Client     models.ClientID `json:"client"`
	Available  models.Amount   `json:"available"`
	Held       models.Amount   `json:"held"`
	Total      models.Amount   `json:"total"`
	Locked     bool            `json:"locked"`
	OccurredAt time.Time       `json:"occurred_at"`
}

// FromSnapshot builds the event for one snapshot row.
func FromSnapshot(runID string, s models.AccountSnapshot, at time.Time) AccountSnapshotted {
	return AccountSnapshotted{
		RunID:      runID,
		Client:     s.Client,
		Available:  s.Available,
		Held:       s.Held,
		Total:      s.Total,
		Locked:     s.Locked,
		OccurredAt: at,
	}
}
