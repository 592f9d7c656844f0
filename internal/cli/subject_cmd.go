package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyflow/internal/cli/formatter"
	"github.com/alexanderramin/studyflow/internal/domain"
)

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subject",
		Short: "Manage enrolled subjects",
	}

	cmd.AddCommand(
		newSubjectAddCmd(app),
		newSubjectListCmd(app),
		newSubjectUpdateCmd(app),
		newSubjectRemoveCmd(app),
	)

	return cmd
}

func newSubjectAddCmd(app *App) *cobra.Command {
	var student, name string
	var score, confidence, difficulty, credits float64
	var days int
	var enrichment bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Enroll a student in a subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			studentID, err := resolveStudentID(ctx, app, student)
			if err != nil {
				return err
			}

			now := time.Now().UTC()
			record := &domain.SubjectRecord{
				SubjectID:    uuid.New().String(),
				StudentID:    studentID,
				Name:         name,
				Score:        score,
				Confidence:   confidence,
				Difficulty:   difficulty,
				CreditWeight: credits,
				Enrichment:   enrichment,
				DaysToExam:   days,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := app.Roster.AddSubject(ctx, record); err != nil {
				return err
			}

			fmt.Printf("Enrolled in %s [%s]\n", record.Name, formatter.TruncID(record.SubjectID))
			return nil
		},
	}

	cmd.Flags().StringVar(&student, "student", "", "Student ID or name")
	cmd.Flags().StringVar(&name, "name", "", "Subject name")
	cmd.Flags().Float64Var(&score, "score", 0, "Current score (0-100)")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.5, "Self-reported confidence (0-1)")
	cmd.Flags().Float64Var(&difficulty, "difficulty", 3, "Subject difficulty (0-5)")
	cmd.Flags().Float64Var(&credits, "credits", 1, "Credit weight")
	cmd.Flags().IntVar(&days, "days", 14, "Days until the exam")
	cmd.Flags().BoolVar(&enrichment, "enrichment", false, "Mark as an enrichment subject")
	_ = cmd.MarkFlagRequired("student")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("score")

	return cmd
}

func newSubjectListCmd(app *App) *cobra.Command {
	var student string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a student's enrolled subjects",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			studentID, err := resolveStudentID(ctx, app, student)
			if err != nil {
				return err
			}
			subjects, err := app.Roster.ListSubjects(ctx, studentID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatSubjectList(subjects))
			return nil
		},
	}

	cmd.Flags().StringVar(&student, "student", "", "Student ID or name")
	_ = cmd.MarkFlagRequired("student")

	return cmd
}

func newSubjectUpdateCmd(app *App) *cobra.Command {
	var score, confidence, difficulty, credits float64
	var days int
	var enrichment bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an enrolled subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			record, err := findSubject(ctx, app, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("score") {
				// Updating the score appends the previous one to the
				// history so velocity has a trail to read.
				record.ScoreHistory = append(record.ScoreHistory, record.Score)
				record.Score = score
			}
			if cmd.Flags().Changed("confidence") {
				record.Confidence = confidence
			}
			if cmd.Flags().Changed("difficulty") {
				record.Difficulty = difficulty
			}
			if cmd.Flags().Changed("credits") {
				record.CreditWeight = credits
			}
			if cmd.Flags().Changed("days") {
				record.DaysToExam = days
			}
			if cmd.Flags().Changed("enrichment") {
				record.Enrichment = enrichment
			}

			if err := app.Roster.UpdateSubject(ctx, record); err != nil {
				return err
			}

			fmt.Printf("Updated %s [%s]\n", record.Name, formatter.TruncID(record.SubjectID))
			return nil
		},
	}

	cmd.Flags().Float64Var(&score, "score", 0, "Current score (0-100)")
	cmd.Flags().Float64Var(&confidence, "confidence", 0, "Self-reported confidence (0-1)")
	cmd.Flags().Float64Var(&difficulty, "difficulty", 0, "Subject difficulty (0-5)")
	cmd.Flags().Float64Var(&credits, "credits", 0, "Credit weight")
	cmd.Flags().IntVar(&days, "days", 0, "Days until the exam")
	cmd.Flags().BoolVar(&enrichment, "enrichment", false, "Mark as an enrichment subject")

	return cmd
}

func newSubjectRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove an enrolled subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			record, err := findSubject(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Roster.DeleteSubject(ctx, record.SubjectID); err != nil {
				return err
			}
			fmt.Printf("Removed %s [%s]\n", record.Name, formatter.TruncID(record.SubjectID))
			return nil
		},
	}
}

// findSubject resolves a subject by exact ID or unique ID prefix across
// all students.
func findSubject(ctx context.Context, app *App, input string) (*domain.SubjectRecord, error) {
	if input == "" {
		return nil, fmt.Errorf("subject ID is required")
	}

	students, err := app.Roster.ListStudents(ctx)
	if err != nil {
		return nil, err
	}

	var matches []*domain.SubjectRecord
	for _, s := range students {
		subjects, err := app.Roster.ListSubjects(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		for _, r := range subjects {
			if r.SubjectID == input {
				return r, nil
			}
			if len(input) >= 4 && strings.HasPrefix(r.SubjectID, input) {
				matches = append(matches, r)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("subject not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("subject ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
