package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tubescribe/internal/output"
)

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database and applies migrations.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Path reports the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun records the start of a channel download and returns the run id.
func (s *Store) BeginRun(ctx context.Context, channelID, channelURL, channelName string) (string, error) {
	runID := uuid.NewString()
	startedAt := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (id, channel_id, channel_url, channel_name, started_at)
         VALUES (?, ?, ?, ?, ?)`,
		runID,
		channelID,
		channelURL,
		channelName,
		startedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return runID, nil
}

// FinishRun stamps a run with its final counters.
func (s *Store) FinishRun(ctx context.Context, runID string, total, succeeded, failed int) error {
	finishedAt := time.Now().UTC().Format(time.RFC3339)

	res, err := s.db.ExecContext(
		ctx,
		`UPDATE runs SET finished_at = ?, total = ?, succeeded = ?, failed = ? WHERE id = ?`,
		finishedAt,
		total,
		succeeded,
		failed,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: unknown run %s", runID)
	}
	return nil
}

// RecordTranscript marks a video's transcript as persisted. A rerun for the
// same video replaces the earlier row so the ledger reflects the file on disk.
func (s *Store) RecordTranscript(ctx context.Context, runID, channelID string, rec output.VideoRecord) error {
	completedAt := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO transcripts (
            channel_id, video_id, title, upload_date, source, filename, run_id, completed_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		channelID,
		rec.VideoID,
		rec.Title,
		rec.UploadDate,
		rec.TranscriptSource,
		rec.TranscriptFile,
		runID,
		completedAt,
	)
	if err != nil {
		return fmt.Errorf("record transcript: %w", err)
	}
	return nil
}

// CompletedVideos returns the transcripts already persisted for a channel,
// keyed by video id.
func (s *Store) CompletedVideos(ctx context.Context, channelID string) (map[string]output.VideoRecord, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT video_id, title, upload_date, source, filename
         FROM transcripts WHERE channel_id = ?`,
		channelID,
	)
	if err != nil {
		return nil, fmt.Errorf("query transcripts: %w", err)
	}
	defer rows.Close()

	completed := make(map[string]output.VideoRecord)
	for rows.Next() {
		var rec output.VideoRecord
		if err := rows.Scan(&rec.VideoID, &rec.Title, &rec.UploadDate, &rec.TranscriptSource, &rec.TranscriptFile); err != nil {
			return nil, fmt.Errorf("scan transcript: %w", err)
		}
		completed[rec.VideoID] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transcripts: %w", err)
	}
	return completed, nil
}
