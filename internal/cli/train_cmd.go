package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyflow/internal/cli/formatter"
	"github.com/alexanderramin/studyflow/internal/contract"
)

func newTrainCmd(app *App) *cobra.Command {
	var trees, maxDepth, minRows int
	var seed int64

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the hour-prediction model on the peer corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := contract.NewTrainRequest()
			if cmd.Flags().Changed("trees") {
				req.Trees = trees
			}
			if cmd.Flags().Changed("max-depth") {
				req.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("min-rows") {
				req.MinRows = minRows
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = seed
			}

			resp, err := app.Train.Train(context.Background(), req)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatTrainResult(resp))
			return nil
		},
	}

	cmd.Flags().IntVar(&trees, "trees", 0, "Number of trees in the ensemble")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum tree depth")
	cmd.Flags().IntVar(&minRows, "min-rows", 0, "Minimum viable training set size")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Sampling seed for reproducible training")

	return cmd
}

func newModelCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "model",
		Short: "Inspect trained models",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored model versions, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			models, err := app.Train.ListModels(context.Background())
			if err != nil {
				return err
			}
			if len(models) == 0 {
				fmt.Println("No trained models. Run: studyflow train")
				return nil
			}

			headers := []string{"VERSION", "TRAINED", "ROWS", "TREES"}
			rows := make([][]string, 0, len(models))
			for _, m := range models {
				rows = append(rows, []string{
					m.Version,
					m.TrainedAt.Format("2006-01-02 15:04"),
					fmt.Sprintf("%d", m.RowCount),
					fmt.Sprintf("%d", m.TreeCount),
				})
			}
			fmt.Print(formatter.RenderTable(headers, rows))
			return nil
		},
	})

	return cmd
}
