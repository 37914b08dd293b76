package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/suite"

	"feed_player/internal/domain"
)

type SQLiteStoreSuite struct {
	suite.Suite
	ctx   context.Context
	db    *sqlx.DB
	store *WatchRecordStore
}

func (s *SQLiteStoreSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := Open(s.ctx, "sqlite3", filepath.Join(s.T().TempDir(), "feed_player.db"))
	s.Require().NoError(err)
	s.db = db
	s.store = NewWatchRecordStore(db)
}

func (s *SQLiteStoreSuite) TearDownTest() {
	if s.db != nil {
		s.db.Close()
	}
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, new(SQLiteStoreSuite))
}

func (s *SQLiteStoreSuite) TestLoad_Empty() {
	records, err := s.store.Load(s.ctx)
	s.NoError(err)
	s.NotNil(records)
	s.Empty(records)
}

func (s *SQLiteStoreSuite) TestSave_KeepsOrder() {
	records := []domain.WatchRecord{
		{ID: "ccccccccccc", Watched: true},
		{ID: "aaaaaaaaaaa", Watched: true, Finished: true},
		{ID: "bbbbbbbbbbb"},
	}
	s.Require().NoError(s.store.Save(s.ctx, records))

	loaded, err := s.store.Load(s.ctx)
	s.NoError(err)
	s.Equal(records, loaded)
}

func (s *SQLiteStoreSuite) TestSave_ReplacesPreviousSet() {
	s.Require().NoError(s.store.Save(s.ctx, []domain.WatchRecord{
		{ID: "aaaaaaaaaaa", Watched: true},
		{ID: "bbbbbbbbbbb", Watched: true},
	}))
	s.Require().NoError(s.store.Save(s.ctx, []domain.WatchRecord{
		{ID: "bbbbbbbbbbb", Watched: true, Finished: true},
	}))

	loaded, err := s.store.Load(s.ctx)
	s.NoError(err)
	s.Equal([]domain.WatchRecord{{ID: "bbbbbbbbbbb", Watched: true, Finished: true}}, loaded)
}

func (s *SQLiteStoreSuite) TestSave_EmptyClears() {
	s.Require().NoError(s.store.Save(s.ctx, []domain.WatchRecord{{ID: "aaaaaaaaaaa", Watched: true}}))
	s.Require().NoError(s.store.Save(s.ctx, []domain.WatchRecord{}))

	var count int
	s.NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM watch_records"))
	s.Equal(0, count)
}

func (s *SQLiteStoreSuite) TestSave_ManyRecordsAcrossChunks() {
	records := make([]domain.WatchRecord, 0, 250)
	for i := range 250 {
		records = append(records, domain.WatchRecord{ID: fmt.Sprintf("vid%08d", i), Watched: i%2 == 0})
	}
	s.Require().NoError(s.store.Save(s.ctx, records))

	loaded, err := s.store.Load(s.ctx)
	s.NoError(err)
	s.Equal(records, loaded)
}

func (s *SQLiteStoreSuite) TestInTx_RollsBackOnError() {
	s.Require().NoError(s.store.Save(s.ctx, []domain.WatchRecord{{ID: "aaaaaaaaaaa", Watched: true}}))

	runner := NewTxRunner(s.db)
	err := runner.InTx(s.ctx, func(txCtx context.Context) error {
		if _, err := execer(txCtx, s.db).ExecContext(txCtx, "DELETE FROM watch_records"); err != nil {
			return err
		}
		return errors.New("abort")
	})
	s.EqualError(err, "abort")

	loaded, err := s.store.Load(s.ctx)
	s.NoError(err)
	s.Len(loaded, 1)
}

func (s *SQLiteStoreSuite) TestInTx_NestedSaveJoinsOuter() {
	s.Require().NoError(s.store.Save(s.ctx, []domain.WatchRecord{{ID: "aaaaaaaaaaa", Watched: true}}))

	runner := NewTxRunner(s.db)
	err := runner.InTx(s.ctx, func(txCtx context.Context) error {
		s.NotNil(txFrom(txCtx))
		if err := s.store.Save(txCtx, []domain.WatchRecord{{ID: "bbbbbbbbbbb"}}); err != nil {
			return err
		}
		return errors.New("abort")
	})
	s.EqualError(err, "abort")

	loaded, err := s.store.Load(s.ctx)
	s.NoError(err)
	s.Equal([]domain.WatchRecord{{ID: "aaaaaaaaaaa", Watched: true}}, loaded)
}

func (s *SQLiteStoreSuite) TestInTx_RollsBackOnPanic() {
	s.Require().NoError(s.store.Save(s.ctx, []domain.WatchRecord{{ID: "aaaaaaaaaaa", Watched: true}}))

	runner := NewTxRunner(s.db)
	s.PanicsWithValue("boom", func() {
		_ = runner.InTx(s.ctx, func(txCtx context.Context) error {
			_, _ = execer(txCtx, s.db).ExecContext(txCtx, "DELETE FROM watch_records")
			panic("boom")
		})
	})

	loaded, err := s.store.Load(s.ctx)
	s.NoError(err)
	s.Len(loaded, 1)
}

func (s *SQLiteStoreSuite) TestExecer_WithoutTransaction() {
	s.Nil(txFrom(s.ctx))
	s.Equal(s.db, execer(s.ctx, s.db))
}

func (s *SQLiteStoreSuite) TestMigrate_Idempotent() {
	s.NoError(Migrate(s.ctx, s.db))
}
