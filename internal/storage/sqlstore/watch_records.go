// Package sqlstore keeps watch records in a SQL database (postgres or sqlite3).
package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"feed_player/internal/domain"
)

// rows per INSERT statement, keeps sqlite below its bind variable limit
const insertChunk = 100

type WatchRecordStore struct {
	db *sqlx.DB
	tx *TxRunner
}

func NewWatchRecordStore(db *sqlx.DB) *WatchRecordStore {
	return &WatchRecordStore{db: db, tx: NewTxRunner(db)}
}

// Open connects to the database and applies migrations.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driver, err)
	}
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}
	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func (s *WatchRecordStore) Load(ctx context.Context) ([]domain.WatchRecord, error) {
	var records []domain.WatchRecord
	query := `SELECT id, watched, finished FROM watch_records ORDER BY position, id`

	if err := s.db.SelectContext(ctx, &records, query); err != nil {
		return nil, fmt.Errorf("select watch records: %w", err)
	}
	if records == nil {
		records = []domain.WatchRecord{}
	}
	return records, nil
}

// Save replaces the stored set with records.
func (s *WatchRecordStore) Save(ctx context.Context, records []domain.WatchRecord) error {
	now := time.Now().UTC()

	return s.tx.InTx(ctx, func(txCtx context.Context) error {
		exec := execer(txCtx, s.db)

		if _, err := exec.ExecContext(txCtx, "DELETE FROM watch_records"); err != nil {
			return fmt.Errorf("delete watch records: %w", err)
		}

		for start := 0; start < len(records); start += insertChunk {
			end := min(start+insertChunk, len(records))
			query, args := buildInsert(records[start:end], start, now)
			if _, err := exec.ExecContext(txCtx, exec.Rebind(query), args...); err != nil {
				return fmt.Errorf("insert watch records: %w", err)
			}
		}
		return nil
	})
}

func buildInsert(records []domain.WatchRecord, offset int, now time.Time) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString("INSERT INTO watch_records (id, watched, finished, position, updated_at) VALUES ")
	valueArgs := make([]interface{}, 0, len(records)*5)

	for i, r := range records {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(?, ?, ?, ?, ?)")
		valueArgs = append(valueArgs, r.ID, r.Watched, r.Finished, offset+i, now)
	}
	sb.WriteString(` ON CONFLICT (id) DO UPDATE SET
		watched = EXCLUDED.watched,
		finished = EXCLUDED.finished,
		updated_at = EXCLUDED.updated_at`)

	return sb.String(), valueArgs
}
