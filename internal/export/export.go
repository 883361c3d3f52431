// Package export ships a finished run's snapshot to the optional
// downstream sinks: a snapshot store and an event stream.
package export

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/models"
	"github.com/sheikh-saqib/payments-engine/internal/models/events"
	"go.uber.org/zap"
)

// DefaultTopic is the topic AccountSnapshotted events go to when none is set.
const DefaultTopic = "account_snapshotted"

// Exporter fans a snapshot out to Store and Publisher. Either may be nil.
type Exporter struct {
	Store     interfaces.SnapshotStore
	Publisher interfaces.EventPublisher
	Topic     string
	Logger    *zap.Logger

	newRunID func() string
	now      func() time.Time
}

// Enabled reports whether any sink is configured.
func (e *Exporter) Enabled() bool {
	return e.Store != nil || e.Publisher != nil
}

// Export stores the snapshot and then publishes one event per account, all
// stamped with a fresh run id which it returns. The first sink failure
// stops the export.
func (e *Exporter) Export(ctx context.Context, snapshot []models.AccountSnapshot) (string, error) {
	runID := e.runID()
	logger := e.logger().With(zap.String("run_id", runID))

	if e.Store != nil {
		if err := e.Store.SaveSnapshot(ctx, runID, snapshot); err != nil {
			return runID, errors.Wrap(err, "save snapshot")
		}
		logger.Info("snapshot stored", zap.Int("accounts", len(snapshot)))
	}

	if e.Publisher != nil {
		topic := e.Topic
		if topic == "" {
			topic = DefaultTopic
		}
		at := e.clock()
		for _, s := range snapshot {
			event := events.FromSnapshot(runID, s, at)
			key := strconv.FormatUint(uint64(s.Client), 10)
			if err := e.Publisher.Publish(ctx, topic, key, event); err != nil {
				return runID, errors.Wrapf(err, "publish client %d", s.Client)
			}
		}
		logger.Info("snapshot published", zap.String("topic", topic), zap.Int("events", len(snapshot)))
	}

	return runID, nil
}

func (e *Exporter) runID() string {
	if e.newRunID != nil {
		return e.newRunID()
	}
	return uuid.NewString()
}

func (e *Exporter) clock() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now().UTC()
}

func (e *Exporter) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}
