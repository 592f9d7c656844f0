package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/studyflow/internal/domain"
)

// SQLiteSubjectRepo implements SubjectRepo using a SQLite database.
type SQLiteSubjectRepo struct {
	db *sql.DB
}

// NewSQLiteSubjectRepo creates a new SQLiteSubjectRepo.
func NewSQLiteSubjectRepo(db *sql.DB) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: db}
}

const subjectColumns = `id, student_id, name, current_score, confidence, difficulty, credit_weight, enrichment, days_remaining, score_history, created_at, updated_at`

func (r *SQLiteSubjectRepo) Create(ctx context.Context, rec *domain.SubjectRecord) error {
	history, err := encodeHistory(rec.ScoreHistory)
	if err != nil {
		return err
	}
	query := `INSERT INTO subjects (` + subjectColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		rec.SubjectID,
		rec.StudentID,
		rec.Name,
		rec.Score,
		rec.Confidence,
		rec.Difficulty,
		rec.CreditWeight,
		boolToInt(rec.Enrichment),
		rec.DaysToExam,
		history,
		rec.CreatedAt.Format(time.RFC3339),
		rec.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, id string) (*domain.SubjectRecord, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	rec, err := scanSubject(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("subject %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

func (r *SQLiteSubjectRepo) ListByStudent(ctx context.Context, studentID string) ([]*domain.SubjectRecord, error) {
	query := `SELECT ` + subjectColumns + ` FROM subjects WHERE student_id = ? ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var records []*domain.SubjectRecord
	for rows.Next() {
		rec, err := scanSubject(rows.Scan)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return records, nil
}

func (r *SQLiteSubjectRepo) Update(ctx context.Context, rec *domain.SubjectRecord) error {
	history, err := encodeHistory(rec.ScoreHistory)
	if err != nil {
		return err
	}
	query := `UPDATE subjects SET name = ?, current_score = ?, confidence = ?, difficulty = ?, credit_weight = ?,
		enrichment = ?, days_remaining = ?, score_history = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rec.Name,
		rec.Score,
		rec.Confidence,
		rec.Difficulty,
		rec.CreditWeight,
		boolToInt(rec.Enrichment),
		rec.DaysToExam,
		history,
		rec.UpdatedAt.Format(time.RFC3339),
		rec.SubjectID,
	)
	if err != nil {
		return fmt.Errorf("updating subject: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("subject %s: %w", rec.SubjectID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteSubjectRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM subjects WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	return nil
}

func scanSubject(scan func(dest ...any) error) (*domain.SubjectRecord, error) {
	var rec domain.SubjectRecord
	var enrichment int
	var historyStr, createdAtStr, updatedAtStr string

	err := scan(
		&rec.SubjectID, &rec.StudentID, &rec.Name,
		&rec.Score, &rec.Confidence, &rec.Difficulty, &rec.CreditWeight,
		&enrichment, &rec.DaysToExam, &historyStr,
		&createdAtStr, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}

	rec.Enrichment = intToBool(enrichment)

	rec.ScoreHistory, err = decodeHistory(historyStr)
	if err != nil {
		return nil, err
	}

	var parseErr error
	rec.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	rec.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &rec, nil
}
