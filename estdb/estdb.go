package estdb

import (
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"lanescan-go/estimator"
)

// schema.sql defines the session and estimate tables.
//
//go:embed schema.sql
var schemaSQL string

// EstDB records every published estimate for later analysis and replay
// comparison.
type EstDB struct {
	*sql.DB
	sessionID string
}

// Open creates or opens the estimate database at path and starts a new
// recording session for the given variant.
func Open(path, variant string) (*EstDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init estimate schema: %w", err)
	}

	sessionID := uuid.NewString()
	_, err = db.Exec(`INSERT INTO sessions (id, variant, started_at) VALUES (?, ?, ?)`,
		sessionID, variant, time.Now().UnixMilli())
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create session: %w", err)
	}

	return &EstDB{DB: db, sessionID: sessionID}, nil
}

// SessionID returns the identifier of the current recording session.
func (d *EstDB) SessionID() string {
	return d.sessionID
}

// RecordPose stores one MPC pose estimate.
func (d *EstDB) RecordPose(tsMs int64, seq uint32, est estimator.PoseEstimate) error {
	_, err := d.Exec(`INSERT INTO pose_estimates (session_id, ts_ms, seq, y, psi, v, interval_s)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.sessionID, tsMs, seq, est.Y, est.Psi, est.V, est.Interval)
	if err != nil {
		return fmt.Errorf("insert pose estimate: %w", err)
	}
	return nil
}

// RecordHeadingError stores one PID steering-error estimate.
func (d *EstDB) RecordHeadingError(tsMs int64, seq uint32, est estimator.HeadingErrorEstimate) error {
	_, err := d.Exec(`INSERT INTO heading_estimates (session_id, ts_ms, seq, error, velocity)
		VALUES (?, ?, ?, ?, ?)`,
		d.sessionID, tsMs, seq, est.Error, est.Velocity)
	if err != nil {
		return fmt.Errorf("insert heading estimate: %w", err)
	}
	return nil
}
