package indexdb

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	_ "modernc.org/sqlite"

	"antsim.dev/internal/sim/simulator"
	"antsim.dev/internal/sim/tuning"
)

// SQLiteIndex is a queryable secondary index of the tick log. Writes are queued to a single
// writer goroutine and dropped when the queue is full; the JSONL tick log stays authoritative.
type SQLiteIndex struct {
	db *sql.DB

	ch   chan simulator.TickLogEntry
	wg   sync.WaitGroup
	once sync.Once

	closed atomic.Bool

	dropTickTotal atomic.Uint64
	writtenTotal  atomic.Uint64
}

type Stats struct {
	QueueDepth    int    `json:"queue_depth"`
	QueueCapacity int    `json:"queue_capacity"`
	DropTickTotal uint64 `json:"drop_tick_total"`
	WrittenTotal  uint64 `json:"written_total"`
}

func OpenSQLite(path string) (*SQLiteIndex, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteIndex{
		db: db,
		ch: make(chan simulator.TickLogEntry, 65536),
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
	return s, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS tuning (
			digest TEXT PRIMARY KEY,
			json TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS ticks (
			tick INTEGER PRIMARY KEY,
			digest TEXT NOT NULL,
			ants INTEGER NOT NULL,
			food_cells INTEGER NOT NULL,
			raw_json TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteIndex) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		close(s.ch)
		s.wg.Wait()
		err = s.db.Close()
	})
	return err
}

func (s *SQLiteIndex) WriteTick(entry simulator.TickLogEntry) error {
	if s == nil || s.closed.Load() {
		return nil
	}
	select {
	case s.ch <- entry:
	default:
		s.dropTickTotal.Add(1)
	}
	return nil
}

func (s *SQLiteIndex) Stats() Stats {
	if s == nil {
		return Stats{}
	}
	return Stats{
		QueueDepth:    len(s.ch),
		QueueCapacity: cap(s.ch),
		DropTickTotal: s.dropTickTotal.Load(),
		WrittenTotal:  s.writtenTotal.Load(),
	}
}

// UpsertTuning records the tuning a run was started with and returns its digest.
func (s *SQLiteIndex) UpsertTuning(tune tuning.Tuning) (string, error) {
	if s == nil {
		return "", nil
	}
	b, err := json.Marshal(tune)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	digest := hex.EncodeToString(sum[:])
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return "", err
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('tuning_digest',?)`, digest); err != nil {
		return "", err
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO tuning(digest,json,updated_at) VALUES(?,?,?)`, digest, string(b), now); err != nil {
		return "", err
	}
	if err := tx.Commit(); err != nil {
		return "", err
	}
	return digest, nil
}

// TickDigest returns the indexed digest for tick, or sql.ErrNoRows.
func (s *SQLiteIndex) TickDigest(ctx context.Context, tick uint64) (string, error) {
	var d string
	err := s.db.QueryRowContext(ctx, `SELECT digest FROM ticks WHERE tick = ?`, int64(tick)).Scan(&d)
	return d, err
}

func (s *SQLiteIndex) loop() {
	ctx := context.Background()

	insertTick, _ := s.db.Prepare(`INSERT OR REPLACE INTO ticks(tick,digest,ants,food_cells,raw_json) VALUES(?,?,?,?,?)`)
	defer func() {
		if insertTick != nil {
			_ = insertTick.Close()
		}
	}()

	var (
		tx            *sql.Tx
		opCount       int
		lastCommit    = time.Now()
		commitEvery   = 2000
		commitMaxWait = 2 * time.Second
	)

	begin := func() {
		if tx != nil {
			return
		}
		txx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			time.Sleep(50 * time.Millisecond)
			return
		}
		tx = txx
		opCount = 0
		lastCommit = time.Now()
	}
	commit := func() {
		if tx == nil {
			return
		}
		if err := tx.Commit(); err == nil {
			s.writtenTotal.Add(uint64(opCount))
		}
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}
	rollback := func() {
		if tx == nil {
			return
		}
		_ = tx.Rollback()
		tx = nil
		opCount = 0
		lastCommit = time.Now()
	}

	for e := range s.ch {
		begin()
		if tx == nil || insertTick == nil {
			continue
		}
		raw, _ := json.Marshal(e)
		if _, err := tx.Stmt(insertTick).Exec(int64(e.Tick), e.Digest, e.Ants, e.FoodCells, string(raw)); err != nil {
			rollback()
			continue
		}
		opCount++
		// Commit when the queue drains so readers see recent ticks.
		if opCount >= commitEvery || time.Since(lastCommit) >= commitMaxWait || len(s.ch) == 0 {
			commit()
		}
	}
	commit()
}
