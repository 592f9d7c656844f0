package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyflow/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plan   service.PlanService
	Train  service.TrainService
	Roster service.RosterService

	// IsInteractive reports whether stdin is an interactive terminal,
	// gating prompt-based flows.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "studyflow" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "studyflow",
		Short: "Hybrid study schedule recommender",
	}

	root.AddCommand(
		newStudentCmd(app),
		newSubjectCmd(app),
		newOutcomeCmd(app),
		newTrainCmd(app),
		newModelCmd(app),
		newPlanCmd(app),
		newImportCmd(app),
	)

	return root
}
