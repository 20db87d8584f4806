package journal

import (
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/pcadapter/internal/condition"
	"codeberg.org/mutker/pcadapter/internal/errors"
	"codeberg.org/mutker/pcadapter/internal/logger"
	_ "github.com/mattn/go-sqlite3"
)

type repository struct {
	db            *sql.DB
	logger        logger.Logger
	cfg           Config
	mu            sync.Mutex
	buffer        []*Transition
	flushTicker   *time.Ticker
	shutdownChan  chan struct{}
	flushDoneChan chan struct{}
	closeOnce     sync.Once
}

func NewRepository(cfg Config, log logger.Logger) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Error string
		}{
			Phase: "open_database",
			Error: err.Error(),
		})
	}

	if err := ValidateAndUpdateSchema(db, cfg.backupDir(), log); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	log.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Int("batch_size", cfg.BatchSize).
		Int("batch_timeout", cfg.BatchTimeout).
		Msg("Journal repository initialized")

	repo := &repository{
		db:            db,
		logger:        log,
		cfg:           cfg,
		buffer:        make([]*Transition, 0, max(cfg.BatchSize, 1)),
		shutdownChan:  make(chan struct{}),
		flushDoneChan: make(chan struct{}),
	}

	// Periodic flushing only matters when records are batched
	if cfg.BatchSize > 1 && cfg.BatchTimeout > 0 {
		repo.flushTicker = time.NewTicker(time.Duration(cfg.BatchTimeout) * time.Second)
		go repo.flusher()
	} else {
		close(repo.flushDoneChan)
	}

	return repo, nil
}

func (r *repository) Record(t *Transition) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.buffer = append(r.buffer, t)

	if len(r.buffer) >= r.cfg.BatchSize {
		return r.flush()
	}

	return nil
}

// Transitions returns up to limit transitions, newest first. Buffered
// records are flushed first.
func (r *repository) Transitions(ctx context.Context, limit int) ([]Transition, error) {
	errFactory := errors.New()

	r.mu.Lock()
	err := r.flush()
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, selectTransitionsSQL, limit)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageQuery, err)
	}
	defer rows.Close()

	var out []Transition
	for rows.Next() {
		var (
			t               Transition
			millis          int64
			previous, level int
			codes, messages string
		)

		if err := rows.Scan(&millis, &t.DeviceUUID, &t.Condition, &previous, &level, &codes, &messages); err != nil {
			return nil, errFactory.Wrap(ErrStorageQuery, err)
		}

		t.Timestamp = time.UnixMilli(millis).UTC()
		t.Previous = condition.Level(previous)
		t.Level = condition.Level(level)
		if err := json.Unmarshal([]byte(codes), &t.NativeCodes); err != nil {
			return nil, errFactory.Wrap(ErrStorageQuery, err)
		}
		if err := json.Unmarshal([]byte(messages), &t.Messages); err != nil {
			return nil, errFactory.Wrap(ErrStorageQuery, err)
		}

		out = append(out, t)
	}

	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrStorageQuery, err)
	}

	return out, nil
}

func (r *repository) Close() error {
	var err error

	r.closeOnce.Do(func() {
		close(r.shutdownChan)
		if r.flushTicker != nil {
			r.flushTicker.Stop()
		}

		// Wait for the flusher to finish its final flush
		<-r.flushDoneChan

		r.mu.Lock()
		if flushErr := r.flush(); flushErr != nil {
			r.logger.Error().Err(flushErr).Msg("Failed to flush journal on close")
		}
		r.mu.Unlock()

		// Checkpoint WAL and cleanup on close
		if _, execErr := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); execErr != nil {
			err = errors.New().WithData(ErrStorageClose, struct {
				Phase string
				Error string
			}{
				Phase: "checkpoint_wal",
				Error: execErr.Error(),
			})
			r.db.Close()
			return
		}

		if closeErr := r.db.Close(); closeErr != nil {
			err = errors.New().WithData(ErrStorageClose, struct {
				Phase string
				Error string
			}{
				Phase: "close_database",
				Error: closeErr.Error(),
			})
			return
		}

		r.logger.Info().Msg("Journal repository closed gracefully")
	})

	return err
}

func (r *repository) flusher() {
	defer close(r.flushDoneChan)

	for {
		select {
		case <-r.flushTicker.C:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				r.logger.Error().Err(err).Msg("Periodic journal flush failed")
			}
			r.mu.Unlock()
		case <-r.shutdownChan:
			return
		}
	}
}

// flush writes the buffer in one transaction. Callers hold r.mu.
func (r *repository) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}

	errFactory := errors.New()

	rows := make([][]any, 0, len(r.buffer))
	for _, t := range r.buffer {
		codes, err := json.Marshal(nonNil(t.NativeCodes))
		if err != nil {
			return errFactory.Wrap(ErrInvalidTransition, err)
		}
		messages, err := json.Marshal(nonNil(t.Messages))
		if err != nil {
			return errFactory.Wrap(ErrInvalidTransition, err)
		}

		rows = append(rows, []any{
			t.Timestamp.UnixMilli(),
			t.DeviceUUID,
			t.Condition,
			int64(t.Previous),
			int64(t.Level),
			string(codes),
			string(messages),
		})
	}

	tx, err := r.db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	stmt, err := tx.Prepare(insertTransitionSQL)
	if err != nil {
		if err := tx.Rollback(); err != nil {
			r.logger.Error().Err(err).Msg("Failed to roll back transaction")
		}
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer stmt.Close()

	for _, values := range rows {
		if _, err := stmt.Exec(values...); err != nil {
			if err := tx.Rollback(); err != nil {
				r.logger.Error().Err(err).Msg("Failed to roll back transaction")
			}
			return errFactory.Wrap(ErrTransactionFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	r.logger.Debug().Int("records", len(r.buffer)).Msg("Flushed transitions to database")
	r.buffer = r.buffer[:0]

	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
