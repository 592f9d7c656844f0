package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/studyflow/internal/domain"
)

// SQLiteStudentRepo implements StudentRepo using a SQLite database.
type SQLiteStudentRepo struct {
	db *sql.DB
}

// NewSQLiteStudentRepo creates a new SQLiteStudentRepo.
func NewSQLiteStudentRepo(db *sql.DB) *SQLiteStudentRepo {
	return &SQLiteStudentRepo{db: db}
}

func (r *SQLiteStudentRepo) Create(ctx context.Context, s *domain.StudentProfile) error {
	query := `INSERT INTO students (id, name, learner_type, stress_level, daily_capacity_hours, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		string(s.LearnerType),
		string(s.Stress),
		s.DailyCapacity,
		s.CreatedAt.Format(time.RFC3339),
		s.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting student: %w", err)
	}
	return nil
}

func (r *SQLiteStudentRepo) GetByID(ctx context.Context, id string) (*domain.StudentProfile, error) {
	query := `SELECT id, name, learner_type, stress_level, daily_capacity_hours, created_at, updated_at
		FROM students WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	s, err := scanStudent(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("student %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteStudentRepo) List(ctx context.Context) ([]*domain.StudentProfile, error) {
	query := `SELECT id, name, learner_type, stress_level, daily_capacity_hours, created_at, updated_at
		FROM students ORDER BY created_at, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing students: %w", err)
	}
	defer rows.Close()

	var students []*domain.StudentProfile
	for rows.Next() {
		s, err := scanStudent(rows.Scan)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating students: %w", err)
	}
	return students, nil
}

func (r *SQLiteStudentRepo) Update(ctx context.Context, s *domain.StudentProfile) error {
	query := `UPDATE students SET name = ?, learner_type = ?, stress_level = ?, daily_capacity_hours = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		s.Name,
		string(s.LearnerType),
		string(s.Stress),
		s.DailyCapacity,
		s.UpdatedAt.Format(time.RFC3339),
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("updating student: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("student %s: %w", s.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLiteStudentRepo) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM students WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("deleting student: %w", err)
	}
	return nil
}

func scanStudent(scan func(dest ...any) error) (*domain.StudentProfile, error) {
	var s domain.StudentProfile
	var learnerStr, stressStr, createdAtStr, updatedAtStr string

	err := scan(&s.ID, &s.Name, &learnerStr, &stressStr, &s.DailyCapacity, &createdAtStr, &updatedAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning student: %w", err)
	}

	s.LearnerType = domain.LearnerType(learnerStr)
	s.Stress = domain.StressLevel(stressStr)

	var parseErr error
	s.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	s.UpdatedAt, parseErr = time.Parse(time.RFC3339, updatedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", parseErr)
	}

	return &s, nil
}
