package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyflow/internal/config"
	"github.com/alexanderramin/studyflow/internal/domain"
	"github.com/alexanderramin/studyflow/internal/repository"
	"github.com/alexanderramin/studyflow/internal/testutil"
)

// harness bundles the fully wired service layer over an in-memory
// database for end-to-end style tests.
type harness struct {
	students repository.StudentRepo
	subjects repository.SubjectRepo
	peers    repository.PeerOutcomeRepo
	models   repository.ModelRepo
	cfg      *config.Config

	plan   PlanService
	train  TrainService
	roster RosterService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.NewTestDB(t)
	cfg := config.Default()

	students := repository.NewSQLiteStudentRepo(db)
	subjects := repository.NewSQLiteSubjectRepo(db)
	peers := repository.NewSQLitePeerOutcomeRepo(db)
	models := repository.NewSQLiteModelRepo(db)

	return &harness{
		students: students,
		subjects: subjects,
		peers:    peers,
		models:   models,
		cfg:      cfg,
		plan:     NewPlanService(students, subjects, peers, models, cfg),
		train:    NewTrainService(peers, models, cfg),
		roster:   NewRosterService(students, subjects, peers),
	}
}

// seedCorpus records n improved peer outcomes for the given canonical
// subject, with varied scores and hours so the model has signal.
func (h *harness) seedCorpus(t *testing.T, subject string, n int) {
	t.Helper()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		score := 40 + float64(i%50)
		hours := 0.5 + 2.5*(1-score/100)
		o := testutil.NewTestOutcome(
			fmt.Sprintf("peer-%s-%03d", subject, i), subject,
			score, 0.3+float64(i%5)*0.1, hours, true,
		)
		o.DaysToExam = 3 + i%10
		require.NoError(t, h.peers.Upsert(ctx, o))
	}
}

func (h *harness) seedStudent(t *testing.T, subjectNames ...string) *domain.StudentProfile {
	t.Helper()
	ctx := context.Background()
	student := testutil.NewTestStudent("Dana")
	require.NoError(t, h.students.Create(ctx, student))
	for i, name := range subjectNames {
		subject := testutil.NewTestSubject(student.ID, name,
			testutil.WithScore(50+float64(i)*20),
			testutil.WithDaysToExam(3+i*7),
		)
		require.NoError(t, h.subjects.Create(ctx, subject))
	}
	return student
}
