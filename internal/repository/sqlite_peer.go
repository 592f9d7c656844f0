package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/studyflow/internal/domain"
)

// SQLitePeerOutcomeRepo implements PeerOutcomeRepo using a SQLite database.
type SQLitePeerOutcomeRepo struct {
	db *sql.DB
}

// NewSQLitePeerOutcomeRepo creates a new SQLitePeerOutcomeRepo.
func NewSQLitePeerOutcomeRepo(db *sql.DB) *SQLitePeerOutcomeRepo {
	return &SQLitePeerOutcomeRepo{db: db}
}

func (r *SQLitePeerOutcomeRepo) Upsert(ctx context.Context, o *domain.PeerOutcome) error {
	stress := string(o.Stress)
	if stress == "" {
		stress = string(domain.StressMedium)
	}
	query := `INSERT INTO peer_outcomes (peer_id, subject_id, current_score, confidence, hours_per_day, improved, difficulty, days_remaining, stress_level)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(peer_id, subject_id) DO UPDATE
		SET current_score = excluded.current_score,
		    confidence = excluded.confidence,
		    hours_per_day = excluded.hours_per_day,
		    improved = excluded.improved,
		    difficulty = excluded.difficulty,
		    days_remaining = excluded.days_remaining,
		    stress_level = excluded.stress_level`
	_, err := r.db.ExecContext(ctx, query,
		o.PeerID,
		o.SubjectID,
		o.Score,
		o.Confidence,
		o.HoursPerDay,
		boolToInt(o.Improved),
		o.Difficulty,
		o.DaysToExam,
		stress,
	)
	if err != nil {
		return fmt.Errorf("upserting peer outcome: %w", err)
	}
	return nil
}

// LoadCorpus reads every outcome into an in-memory corpus. Ordering is
// fixed so repeated loads over the same rows produce the same corpus.
func (r *SQLitePeerOutcomeRepo) LoadCorpus(ctx context.Context) (*domain.PeerCorpus, error) {
	query := `SELECT peer_id, subject_id, current_score, confidence, hours_per_day, improved, difficulty, days_remaining, stress_level
		FROM peer_outcomes ORDER BY peer_id, subject_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("loading peer corpus: %w", err)
	}
	defer rows.Close()

	corpus := &domain.PeerCorpus{}
	for rows.Next() {
		var o domain.PeerOutcome
		var improved int
		var stress string
		if err := rows.Scan(&o.PeerID, &o.SubjectID, &o.Score, &o.Confidence, &o.HoursPerDay, &improved, &o.Difficulty, &o.DaysToExam, &stress); err != nil {
			return nil, fmt.Errorf("scanning peer outcome: %w", err)
		}
		o.Improved = intToBool(improved)
		o.Stress = domain.StressLevel(stress)
		corpus.Outcomes = append(corpus.Outcomes, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating peer outcomes: %w", err)
	}
	return corpus, nil
}

func (r *SQLitePeerOutcomeRepo) DeleteByPeer(ctx context.Context, peerID string) error {
	query := `DELETE FROM peer_outcomes WHERE peer_id = ?`
	if _, err := r.db.ExecContext(ctx, query, peerID); err != nil {
		return fmt.Errorf("deleting peer outcomes: %w", err)
	}
	return nil
}

func (r *SQLitePeerOutcomeRepo) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM peer_outcomes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting peer outcomes: %w", err)
	}
	return count, nil
}
