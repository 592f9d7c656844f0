package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyflow/internal/testutil"
)

func TestSubjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	students := NewSQLiteStudentRepo(db)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	student := testutil.NewTestStudent("Dana")
	require.NoError(t, students.Create(ctx, student))

	subject := testutil.NewTestSubject(student.ID, "Physics",
		testutil.WithScore(55),
		testutil.WithConfidence(0.4),
		testutil.WithDifficulty(4),
		testutil.WithCreditWeight(3),
		testutil.WithDaysToExam(3),
		testutil.WithEnrichment(),
		testutil.WithScoreHistory(40, 48, 55))
	require.NoError(t, repo.Create(ctx, subject))

	fetched, err := repo.GetByID(ctx, subject.SubjectID)
	require.NoError(t, err)
	assert.Equal(t, "Physics", fetched.Name)
	assert.Equal(t, 55.0, fetched.Score)
	assert.Equal(t, 0.4, fetched.Confidence)
	assert.Equal(t, 4.0, fetched.Difficulty)
	assert.Equal(t, 3, fetched.DaysToExam)
	assert.True(t, fetched.Enrichment)
	assert.Equal(t, []float64{40, 48, 55}, fetched.ScoreHistory)
}

func TestSubjectRepo_EmptyHistoryRoundTrips(t *testing.T) {
	db := testutil.NewTestDB(t)
	students := NewSQLiteStudentRepo(db)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	student := testutil.NewTestStudent("Dana")
	require.NoError(t, students.Create(ctx, student))

	subject := testutil.NewTestSubject(student.ID, "Art")
	require.NoError(t, repo.Create(ctx, subject))

	fetched, err := repo.GetByID(ctx, subject.SubjectID)
	require.NoError(t, err)
	assert.Empty(t, fetched.ScoreHistory)
}

func TestSubjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSubjectRepo_ListByStudent(t *testing.T) {
	db := testutil.NewTestDB(t)
	students := NewSQLiteStudentRepo(db)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	dana := testutil.NewTestStudent("Dana")
	kim := testutil.NewTestStudent("Kim")
	require.NoError(t, students.Create(ctx, dana))
	require.NoError(t, students.Create(ctx, kim))

	require.NoError(t, repo.Create(ctx, testutil.NewTestSubject(dana.ID, "Math")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSubject(dana.ID, "Physics")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSubject(kim.ID, "History")))

	records, err := repo.ListByStudent(ctx, dana.ID)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, dana.ID, r.StudentID)
	}
}

func TestSubjectRepo_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	students := NewSQLiteStudentRepo(db)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	student := testutil.NewTestStudent("Dana")
	require.NoError(t, students.Create(ctx, student))

	subject := testutil.NewTestSubject(student.ID, "Math", testutil.WithScore(60))
	require.NoError(t, repo.Create(ctx, subject))

	subject.Score = 72
	subject.ScoreHistory = append(subject.ScoreHistory, 72)
	require.NoError(t, repo.Update(ctx, subject))

	fetched, err := repo.GetByID(ctx, subject.SubjectID)
	require.NoError(t, err)
	assert.Equal(t, 72.0, fetched.Score)
	assert.Equal(t, []float64{72}, fetched.ScoreHistory)
}

func TestSubjectRepo_Update_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	ghost := testutil.NewTestSubject("s1", "Ghost")
	err := repo.Update(ctx, ghost)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSubjectRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	students := NewSQLiteStudentRepo(db)
	repo := NewSQLiteSubjectRepo(db)
	ctx := context.Background()

	student := testutil.NewTestStudent("Dana")
	require.NoError(t, students.Create(ctx, student))
	subject := testutil.NewTestSubject(student.ID, "Math")
	require.NoError(t, repo.Create(ctx, subject))

	require.NoError(t, repo.Delete(ctx, subject.SubjectID))

	_, err := repo.GetByID(ctx, subject.SubjectID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
