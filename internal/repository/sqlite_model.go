package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/studyflow/internal/domain"
)

// trainedAtLayout is fixed-width so lexicographic ordering of the
// stored column matches chronological ordering even for trainings
// within the same second.
const trainedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteModelRepo implements ModelRepo using a SQLite database. Saved
// artifacts are never overwritten; each training run stores a new
// version row.
type SQLiteModelRepo struct {
	db *sql.DB
}

// NewSQLiteModelRepo creates a new SQLiteModelRepo.
func NewSQLiteModelRepo(db *sql.DB) *SQLiteModelRepo {
	return &SQLiteModelRepo{db: db}
}

func (r *SQLiteModelRepo) Save(ctx context.Context, m *domain.ModelArtifact) error {
	query := `INSERT INTO models (version, trained_at, row_count, tree_count, payload)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.Version,
		m.TrainedAt.UTC().Format(trainedAtLayout),
		m.RowCount,
		m.TreeCount,
		m.Payload,
	)
	if err != nil {
		return fmt.Errorf("inserting model artifact: %w", err)
	}
	return nil
}

func (r *SQLiteModelRepo) Latest(ctx context.Context) (*domain.ModelArtifact, error) {
	query := `SELECT version, trained_at, row_count, tree_count, payload
		FROM models ORDER BY trained_at DESC, version DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query)

	m, err := scanModel(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("latest model: %w", ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (r *SQLiteModelRepo) GetByVersion(ctx context.Context, version string) (*domain.ModelArtifact, error) {
	query := `SELECT version, trained_at, row_count, tree_count, payload
		FROM models WHERE version = ?`
	row := r.db.QueryRowContext(ctx, query, version)

	m, err := scanModel(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("model %s: %w", version, ErrNotFound)
		}
		return nil, err
	}
	return m, nil
}

func (r *SQLiteModelRepo) List(ctx context.Context) ([]*domain.ModelArtifact, error) {
	query := `SELECT version, trained_at, row_count, tree_count, payload
		FROM models ORDER BY trained_at DESC, version DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing models: %w", err)
	}
	defer rows.Close()

	var models []*domain.ModelArtifact
	for rows.Next() {
		m, err := scanModel(rows.Scan)
		if err != nil {
			return nil, err
		}
		models = append(models, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating models: %w", err)
	}
	return models, nil
}

func scanModel(scan func(dest ...any) error) (*domain.ModelArtifact, error) {
	var m domain.ModelArtifact
	var trainedAtStr string

	err := scan(&m.Version, &trainedAtStr, &m.RowCount, &m.TreeCount, &m.Payload)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning model artifact: %w", err)
	}

	var parseErr error
	m.TrainedAt, parseErr = time.Parse(time.RFC3339, trainedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing trained_at: %w", parseErr)
	}

	return &m, nil
}
