package journal

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/imalkevich/candle-to-screenshot/internal/model"
)

// SQLiteJournal persists label events and closed trades to SQLite.
type SQLiteJournal struct {
	db      *sql.DB
	dataset string
	mu      sync.Mutex
}

// NewSQLiteJournal opens (or creates) the database and runs migrations.
// Rows are tagged with the dataset name so one database can hold several
// labeling sessions.
func NewSQLiteJournal(dbPath, dataset string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	j := &SQLiteJournal{db: db, dataset: dataset}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite journal opened: %s", dbPath)
	return j, nil
}

func (j *SQLiteJournal) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS label_events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			dataset    TEXT NOT NULL,
			screenshot TEXT NOT NULL,
			category   TEXT NOT NULL,
			bar_index  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_label_ts ON label_events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_label_dataset ON label_events(dataset)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			dataset     TEXT NOT NULL,
			side        TEXT NOT NULL,
			entry_index INTEGER NOT NULL,
			entry_price REAL NOT NULL,
			exit_index  INTEGER NOT NULL,
			exit_price  REAL NOT NULL,
			result      REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ts ON trades(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := j.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (j *SQLiteJournal) RecordLabel(evt *model.LabelEvent) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	at := evt.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := j.db.Exec(`INSERT INTO label_events
		(timestamp, dataset, screenshot, category, bar_index)
		VALUES (?,?,?,?,?)`,
		at.Unix(), j.dataset, evt.Screenshot, string(evt.Category), evt.BarIndex,
	)
	return err
}

func (j *SQLiteJournal) RecordTrade(trade *model.Trade) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	_, err := j.db.Exec(`INSERT INTO trades
		(timestamp, dataset, side, entry_index, entry_price, exit_index, exit_price, result)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), j.dataset, string(trade.Side),
		trade.EntryIndex, trade.EntryPrice,
		trade.ExitIndex, trade.ExitPrice, trade.Result(),
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	log.Println("[INFO] closing sqlite journal")
	return j.db.Close()
}
