package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import students, subjects, and peer outcomes from a JSON roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Roster.ImportRoster(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d students, %d subjects, %d peer outcomes\n",
				result.StudentCount, result.SubjectCount, result.OutcomeCount)
			return nil
		},
	}
}
