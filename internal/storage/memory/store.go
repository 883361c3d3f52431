package memory

import (
	"context"
	"errors"
	"sync"

	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/models"
)

// ErrRunNotFound is returned by GetSnapshot for a run id that was never saved.
var ErrRunNotFound = errors.New("snapshot run not found")

// MemorySnapshotStore keeps snapshots in a map keyed by run id.
// It is safe for concurrent use.
type MemorySnapshotStore struct {
	mu   sync.Mutex
	runs map[string][]models.AccountSnapshot
}

func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{
		runs: make(map[string][]models.AccountSnapshot),
	}
}

// SaveSnapshot stores a copy of snapshot under runID, replacing any earlier
// snapshot with the same id.
func (m *MemorySnapshotStore) SaveSnapshot(ctx context.Context, runID string, snapshot []models.AccountSnapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]models.AccountSnapshot, len(snapshot))
	copy(copied, snapshot)
	m.runs[runID] = copied
	return nil
}

// GetSnapshot returns a copy so callers can't modify stored state.
func (m *MemorySnapshotStore) GetSnapshot(ctx context.Context, runID string) ([]models.AccountSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.runs[runID]
	if !ok {
		return nil, ErrRunNotFound
	}
	copied := make([]models.AccountSnapshot, len(stored))
	copy(copied, stored)
	return copied, nil
}

// Compile-time check: ensure MemorySnapshotStore implements SnapshotStore.
var _ interfaces.SnapshotStore = (*MemorySnapshotStore)(nil)
