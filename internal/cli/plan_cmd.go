package cli

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyflow/internal/cli/formatter"
	"github.com/alexanderramin/studyflow/internal/contract"
)

func newPlanCmd(app *App) *cobra.Command {
	var student, modelVersion string
	var capacity float64
	var horizon int
	var noExplain, asJSON bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a ranked study schedule for a student",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			studentID, err := resolveStudentID(ctx, app, student)
			if err != nil {
				return err
			}

			req := contract.NewPlanRequest(studentID)
			if cmd.Flags().Changed("capacity") {
				req.CapacityHours = capacity
			}
			if cmd.Flags().Changed("horizon") {
				req.HorizonDays = horizon
			}
			req.ModelVersion = modelVersion
			req.Explain = !noExplain

			resp, err := app.Plan.Generate(ctx, req)
			if err != nil {
				return err
			}

			if asJSON {
				data, err := json.MarshalIndent(resp, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding plan: %w", err)
				}
				fmt.Println(string(data))
				return nil
			}

			fmt.Println(formatter.FormatPlan(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&student, "student", "", "Student ID or name")
	cmd.Flags().Float64Var(&capacity, "capacity", 0, "Override daily capacity in hours")
	cmd.Flags().IntVar(&horizon, "horizon", 1, "Planning horizon in days")
	cmd.Flags().StringVar(&modelVersion, "model", "", "Pin a trained model version (default: latest)")
	cmd.Flags().BoolVar(&noExplain, "no-explain", false, "Omit per-subject recommendation reasons")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the raw plan as JSON")
	_ = cmd.MarkFlagRequired("student")

	return cmd
}
