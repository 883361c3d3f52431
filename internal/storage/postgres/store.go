package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	interfaces "github.com/sheikh-saqib/payments-engine/internal/interfaces"
	"github.com/sheikh-saqib/payments-engine/internal/models"

	_ "github.com/lib/pq" // registers the "postgres" driver
)

const schema = `CREATE TABLE IF NOT EXISTS account_snapshots (
	run_id     UUID           NOT NULL,
	client     INTEGER        NOT NULL,
	position   INTEGER        NOT NULL,
	available  NUMERIC(20,4)  NOT NULL,
	held       NUMERIC(20,4)  NOT NULL,
	total      NUMERIC(20,4)  NOT NULL,
	locked     BOOLEAN        NOT NULL,
	created_at TIMESTAMPTZ    NOT NULL,
	PRIMARY KEY (run_id, client)
)`

type PostgresSnapshotStore struct {
	db  *sql.DB
	now func() time.Time
}

// Open connects to dsn and makes sure the snapshot table exists.
func Open(ctx context.Context, dsn string) (*PostgresSnapshotStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	store := NewPostgresSnapshotStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func NewPostgresSnapshotStore(db *sql.DB) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{
		db:  db,
		now: time.Now,
	}
}

func (p *PostgresSnapshotStore) EnsureSchema(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, schema)
	return errors.Wrap(err, "create account_snapshots")
}

// SaveSnapshot inserts every row of one run inside a single transaction.
func (p *PostgresSnapshotStore) SaveSnapshot(ctx context.Context, runID string, snapshot []models.AccountSnapshot) (err error) {
	const query = `INSERT INTO account_snapshots (run_id, client, position, available, held, total, locked, created_at)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	dbTx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin snapshot tx")
	}

	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	stmt, err := dbTx.PrepareContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "prepare snapshot insert")
	}
	defer stmt.Close()

	createdAt := p.now().UTC()
	for i, s := range snapshot {
		_, err = stmt.ExecContext(ctx, runID, int(s.Client), i, s.Available.String(), s.Held.String(), s.Total.String(), s.Locked, createdAt)
		if err != nil {
			return errors.Wrapf(err, "insert client %d", s.Client)
		}
	}

	err = dbTx.Commit()
	return errors.Wrap(err, "commit snapshot tx")
}

func (p *PostgresSnapshotStore) GetSnapshot(ctx context.Context, runID string) ([]models.AccountSnapshot, error) {
	const query = `SELECT client, available, held, total, locked FROM account_snapshots
	WHERE run_id = $1 ORDER BY position`

	rows, err := p.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, errors.Wrap(err, "query snapshot")
	}
	defer rows.Close()

	var snapshot []models.AccountSnapshot
	for rows.Next() {
		var (
			client                 int
			available, held, total string
			s                      models.AccountSnapshot
		)
		if err := rows.Scan(&client, &available, &held, &total, &s.Locked); err != nil {
			return nil, errors.Wrap(err, "scan snapshot row")
		}
		s.Client = models.ClientID(client)
		if s.Available, err = models.NewAmountFromString(available); err != nil {
			return nil, errors.Wrap(err, "available")
		}
		if s.Held, err = models.NewAmountFromString(held); err != nil {
			return nil, errors.Wrap(err, "held")
		}
		if s.Total, err = models.NewAmountFromString(total); err != nil {
			return nil, errors.Wrap(err, "total")
		}
		snapshot = append(snapshot, s)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate snapshot rows")
	}
	return snapshot, nil
}

func (p *PostgresSnapshotStore) Close() error {
	return p.db.Close()
}

var _ interfaces.SnapshotStore = (*PostgresSnapshotStore)(nil)
