package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyflow/internal/domain"
)

func newOutcomeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outcome",
		Short: "Manage the historical peer corpus",
	}

	cmd.AddCommand(
		newOutcomeAddCmd(app),
	)

	return cmd
}

func newOutcomeAddCmd(app *App) *cobra.Command {
	var peer, subject, stress string
	var score, confidence, hours, difficulty float64
	var days int
	var improved bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a historical peer outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			outcome := &domain.PeerOutcome{
				PeerID:      peer,
				SubjectID:   subject,
				Score:       score,
				Confidence:  confidence,
				HoursPerDay: hours,
				Improved:    improved,
				Difficulty:  difficulty,
				DaysToExam:  days,
				Stress:      domain.StressLevel(stress),
			}
			if err := app.Roster.RecordOutcome(context.Background(), outcome); err != nil {
				return err
			}

			fmt.Printf("Recorded outcome for peer %s in %s\n", peer, outcome.SubjectID)
			return nil
		},
	}

	cmd.Flags().StringVar(&peer, "peer", "", "Peer identifier")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject name")
	cmd.Flags().Float64Var(&score, "score", 0, "Peer's score at the time (0-100)")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.5, "Peer's confidence (0-1)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Realized daily study hours")
	cmd.Flags().BoolVar(&improved, "improved", false, "Whether the peer improved")
	cmd.Flags().Float64Var(&difficulty, "difficulty", 3, "Subject difficulty (0-5)")
	cmd.Flags().IntVar(&days, "days", 7, "Days to the exam at the time")
	cmd.Flags().Var(newEnumValue(string(domain.StressMedium), &stress, domain.ValidStressLevels), "stress", "Peer's stress level (low|medium|high)")
	_ = cmd.MarkFlagRequired("peer")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("score")
	_ = cmd.MarkFlagRequired("hours")

	return cmd
}
