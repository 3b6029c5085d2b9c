package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nikhilbhutani/ttshub/internal/backend"
)

// displayTextLimit caps the text field at the read boundary; the stored
// record always retains the full text.
const displayTextLimit = 100

// Settings is the serialized snapshot of the request knobs.
type Settings struct {
	Rate     int     `json:"rate"`
	Volume   float64 `json:"volume"`
	Language string  `json:"language"`
}

// Record is one persisted synthesis outcome. Records are append-only;
// nothing in this package updates or deletes them.
type Record struct {
	ID              int64      `json:"id"`
	Text            string     `json:"text"`
	Backend         backend.ID `json:"backend_id"`
	VoiceName       string     `json:"voice_name,omitempty"`
	ArtifactPath    string     `json:"artifact_path,omitempty"`
	DurationSeconds float64    `json:"duration_seconds,omitempty"`
	Settings        Settings   `json:"settings"`
	CreatedAt       time.Time  `json:"created_at"`
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Append persists one record, letting the database assign id and
// created_at.
func (s *Store) Append(ctx context.Context, rec Record) error {
	settings, err := json.Marshal(rec.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	_, err = s.db.Exec(ctx,
		`INSERT INTO synthesis_records (text, backend_id, voice_name, artifact_path, duration_seconds, settings)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.Text, rec.Backend, nullable(rec.VoiceName), nullable(rec.ArtifactPath), rec.DurationSeconds, settings,
	)
	if err != nil {
		return fmt.Errorf("insert synthesis record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. Text is returned in
// full; apply DisplayText at the presentation boundary.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, text, backend_id, COALESCE(voice_name, ''), COALESCE(artifact_path, ''), COALESCE(duration_seconds, 0), settings, created_at
		 FROM synthesis_records
		 ORDER BY created_at DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query synthesis records: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		var rec Record
		var settings []byte
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.Backend, &rec.VoiceName, &rec.ArtifactPath, &rec.DurationSeconds, &settings, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan synthesis record: %w", err)
		}
		if len(settings) > 0 {
			if err := json.Unmarshal(settings, &rec.Settings); err != nil {
				return nil, fmt.Errorf("unmarshal settings: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// DisplayText truncates long text for listings: the first 100 characters
// plus an ellipsis. Truncation counts runes so multibyte text is not
// split mid-character.
func DisplayText(text string) string {
	runes := []rune(text)
	if len(runes) <= displayTextLimit {
		return text
	}
	return string(runes[:displayTextLimit]) + "…"
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
