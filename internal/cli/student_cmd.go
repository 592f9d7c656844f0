package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyflow/internal/cli/formatter"
	"github.com/alexanderramin/studyflow/internal/domain"
)

func newStudentCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "student",
		Short: "Manage student profiles",
	}

	cmd.AddCommand(
		newStudentAddCmd(app),
		newStudentListCmd(app),
		newStudentShowCmd(app),
		newStudentUpdateCmd(app),
		newStudentRemoveCmd(app),
	)

	return cmd
}

func newStudentAddCmd(app *App) *cobra.Command {
	var name, learner, stress string
	var capacity float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new student profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				if app.IsInteractive == nil || !app.IsInteractive() {
					return fmt.Errorf("--name is required in non-interactive mode")
				}
				if err := runStudentForm(&name, &learner, &stress, &capacity); err != nil {
					return err
				}
			}

			now := time.Now().UTC()
			student := &domain.StudentProfile{
				ID:            uuid.New().String(),
				Name:          name,
				LearnerType:   domain.LearnerType(learner),
				Stress:        domain.StressLevel(stress),
				DailyCapacity: capacity,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := app.Roster.CreateStudent(context.Background(), student); err != nil {
				return err
			}

			fmt.Printf("Created student %s [%s]\n", student.Name, formatter.TruncID(student.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Student name")
	cmd.Flags().Var(newEnumValue(string(domain.LearnerBalanced), &learner, domain.ValidLearnerTypes), "learner", "Learner type (fast_learner|needs_support|inconsistent|balanced)")
	cmd.Flags().Var(newEnumValue(string(domain.StressMedium), &stress, domain.ValidStressLevels), "stress", "Stress level (low|medium|high)")
	cmd.Flags().Float64Var(&capacity, "capacity", 2.0, "Daily study capacity in hours")

	return cmd
}

// runStudentForm collects profile fields interactively.
func runStudentForm(name, learner, stress *string, capacity *float64) error {
	capacityStr := strconv.FormatFloat(*capacity, 'f', -1, 64)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(name).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Learner type").
				Options(
					huh.NewOption("Balanced", string(domain.LearnerBalanced)),
					huh.NewOption("Fast learner", string(domain.LearnerFast)),
					huh.NewOption("Needs support", string(domain.LearnerNeedsSupport)),
					huh.NewOption("Inconsistent", string(domain.LearnerInconsistent)),
				).
				Value(learner),
			huh.NewSelect[string]().
				Title("Stress level").
				Options(
					huh.NewOption("Low", string(domain.StressLow)),
					huh.NewOption("Medium", string(domain.StressMedium)),
					huh.NewOption("High", string(domain.StressHigh)),
				).
				Value(stress),
			huh.NewInput().
				Title("Daily capacity (hours)").
				Value(&capacityStr).
				Validate(func(s string) error {
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v <= 0 {
						return fmt.Errorf("capacity must be a positive number")
					}
					return nil
				}),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}
	parsed, err := strconv.ParseFloat(capacityStr, 64)
	if err != nil {
		return fmt.Errorf("invalid capacity %q: %w", capacityStr, err)
	}
	*capacity = parsed
	return nil
}

func newStudentListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List students",
		RunE: func(cmd *cobra.Command, args []string) error {
			students, err := app.Roster.ListStudents(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatStudentList(students))
			return nil
		},
	}
}

func newStudentShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a student profile with enrolled subjects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			studentID, err := resolveStudentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			student, err := app.Roster.GetStudent(ctx, studentID)
			if err != nil {
				return err
			}
			subjects, err := app.Roster.ListSubjects(ctx, studentID)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatStudentDetail(student, subjects))
			return nil
		},
	}
}

func newStudentUpdateCmd(app *App) *cobra.Command {
	var name, learner, stress string
	var capacity float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a student profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			studentID, err := resolveStudentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			student, err := app.Roster.GetStudent(ctx, studentID)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("name") {
				student.Name = name
			}
			if cmd.Flags().Changed("learner") {
				student.LearnerType = domain.LearnerType(learner)
			}
			if cmd.Flags().Changed("stress") {
				student.Stress = domain.StressLevel(stress)
			}
			if cmd.Flags().Changed("capacity") {
				student.DailyCapacity = capacity
			}

			if err := app.Roster.UpdateStudent(ctx, student); err != nil {
				return err
			}

			fmt.Printf("Updated student %s [%s]\n", student.Name, formatter.TruncID(student.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Student name")
	cmd.Flags().Var(newEnumValue("", &learner, domain.ValidLearnerTypes), "learner", "Learner type (fast_learner|needs_support|inconsistent|balanced)")
	cmd.Flags().Var(newEnumValue("", &stress, domain.ValidStressLevels), "stress", "Stress level (low|medium|high)")
	cmd.Flags().Float64Var(&capacity, "capacity", 0, "Daily study capacity in hours")

	return cmd
}

func newStudentRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a student and all enrolled subjects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			studentID, err := resolveStudentID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Roster.DeleteStudent(ctx, studentID); err != nil {
				return err
			}
			fmt.Printf("Removed student %s\n", formatter.TruncID(studentID))
			return nil
		},
	}
}
