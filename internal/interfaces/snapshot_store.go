package interfaces

import (
	"context"

	"github.com/sheikh-saqib/payments-engine/internal/models"
)

// SnapshotStore persists the final account snapshot of a run.
type SnapshotStore interface {
	SaveSnapshot(ctx context.Context, runID string, snapshot []models.AccountSnapshot) error
	GetSnapshot(ctx context.Context, runID string) ([]models.AccountSnapshot, error)
}
