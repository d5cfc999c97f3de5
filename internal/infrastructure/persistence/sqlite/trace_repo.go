package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bnema/navstack/internal/application/port"
	"github.com/bnema/navstack/internal/domain/entity"
	"github.com/bnema/navstack/internal/logging"
)

// ErrRunClosed is returned when recording into a run that was closed.
var ErrRunClosed = errors.New("trace run closed")

// Run summarizes one recorded run.
type Run struct {
	ID        string
	Label     string
	Stamp     entity.SessionStamp
	StartedAt time.Time
	EndedAt   *time.Time
	Events    int
}

// TraceStore persists navigation traces, one run per scenario replay or
// simulator session.
type TraceStore struct {
	provider port.DatabaseProvider
	now      func() time.Time
}

var _ port.TraceReader = (*TraceStore)(nil)

func NewTraceStore(provider port.DatabaseProvider) *TraceStore {
	return &TraceStore{provider: provider, now: time.Now}
}

// StoreInfo describes the trace database as a whole.
type StoreInfo struct {
	SchemaVersion int64
	Runs          int
	Events        int
}

// Info reports the schema version and row counts of the store.
func (s *TraceStore) Info(ctx context.Context) (StoreInfo, error) {
	db, err := s.provider.DB(ctx)
	if err != nil {
		return StoreInfo{}, err
	}

	var info StoreInfo
	if info.SchemaVersion, err = GetMigrationStatus(ctx, db); err != nil {
		return StoreInfo{}, fmt.Errorf("failed to read schema version: %w", err)
	}
	err = db.QueryRowContext(ctx,
		`SELECT (SELECT COUNT(*) FROM trace_runs), (SELECT COUNT(*) FROM trace_events)`,
	).Scan(&info.Runs, &info.Events)
	if err != nil {
		return StoreInfo{}, fmt.Errorf("failed to count traces: %w", err)
	}
	return info, nil
}

// BeginRun creates a run and returns a recorder appending to it.
func (s *TraceStore) BeginRun(ctx context.Context, label string, stamp entity.SessionStamp) (*RunRecorder, error) {
	db, err := s.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	_, err = db.ExecContext(ctx,
		`INSERT INTO trace_runs (id, label, stamp, started_at) VALUES (?, ?, ?, ?)`,
		id, label, int64(stamp), s.now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace run: %w", err)
	}

	logging.FromContext(ctx).Debug().Str("run_id", id).Str("label", label).Msg("trace run started")
	return &RunRecorder{db: db, id: id, now: s.now}, nil
}

// List returns the events of a run ordered by sequence number.
func (s *TraceStore) List(ctx context.Context, runID string) ([]entity.TraceEvent, error) {
	db, err := s.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx,
		`SELECT seq, kind, idx, delta, stamp, note, at FROM trace_events WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list trace events: %w", err)
	}
	defer rows.Close()

	var events []entity.TraceEvent
	for rows.Next() {
		var (
			ev    entity.TraceEvent
			kind  string
			stamp int64
		)
		if err := rows.Scan(&ev.Seq, &kind, &ev.Index, &ev.Delta, &stamp, &ev.Note, &ev.At); err != nil {
			return nil, fmt.Errorf("failed to scan trace event: %w", err)
		}
		ev.Kind = entity.TraceKind(kind)
		ev.Stamp = entity.SessionStamp(stamp)
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Runs returns the most recent runs first.
func (s *TraceStore) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	db, err := s.provider.DB(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT r.id, r.label, r.stamp, r.started_at, r.ended_at, COUNT(e.seq)
		FROM trace_runs r
		LEFT JOIN trace_events e ON e.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list trace runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run   Run
			stamp int64
			ended sql.NullTime
		)
		if err := rows.Scan(&run.ID, &run.Label, &stamp, &run.StartedAt, &ended, &run.Events); err != nil {
			return nil, fmt.Errorf("failed to scan trace run: %w", err)
		}
		run.Stamp = entity.SessionStamp(stamp)
		if ended.Valid {
			t := ended.Time
			run.EndedAt = &t
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Delete removes a run and its events.
func (s *TraceStore) Delete(ctx context.Context, runID string) error {
	db, err := s.provider.DB(ctx)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `DELETE FROM trace_runs WHERE id = ?`, runID); err != nil {
		return fmt.Errorf("failed to delete trace run: %w", err)
	}
	return nil
}

// Prune keeps the newest keep runs and deletes the rest. It returns how
// many runs were removed. keep <= 0 removes nothing.
func (s *TraceStore) Prune(ctx context.Context, keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	db, err := s.provider.DB(ctx)
	if err != nil {
		return 0, err
	}

	res, err := db.ExecContext(ctx, `
		DELETE FROM trace_runs WHERE id NOT IN (
			SELECT id FROM trace_runs ORDER BY started_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune trace runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned trace runs: %w", err)
	}
	if n > 0 {
		logging.FromContext(ctx).Debug().Int64("removed", n).Int("kept", keep).Msg("pruned trace runs")
	}
	return int(n), nil
}

// RunRecorder appends events to one run. It is safe for concurrent use.
type RunRecorder struct {
	mu     sync.Mutex
	db     *sql.DB
	id     string
	now    func() time.Time
	closed bool
}

var _ port.TraceRecorder = (*RunRecorder)(nil)

// ID returns the run id.
func (r *RunRecorder) ID() string {
	return r.id
}

func (r *RunRecorder) Record(ctx context.Context, ev entity.TraceEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRunClosed
	}

	at := ev.At
	if at.IsZero() {
		at = r.now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO trace_events (run_id, seq, kind, idx, delta, stamp, note, at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.id, ev.Seq, string(ev.Kind), ev.Index, ev.Delta, int64(ev.Stamp), ev.Note, at.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record trace event %d: %w", ev.Seq, err)
	}
	return nil
}

// Close marks the run as ended. The database connection stays open.
func (r *RunRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.closed = true

	if _, err := r.db.Exec(`UPDATE trace_runs SET ended_at = ? WHERE id = ?`, r.now().UTC(), r.id); err != nil {
		return fmt.Errorf("failed to close trace run: %w", err)
	}
	return nil
}
