package main

import (
	"fmt"
	"log"
	"time"

	"careerpath/internal/dataset"
	"careerpath/internal/training"

	"github.com/spf13/cobra"
)

func newTrainCmd() *cobra.Command {
	var dataPath, artifactDir string
	var seed uint64
	var trees, maxDepth, workers int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the model and write the artifacts",
		Long: `Train the career classifier on a CSV or XLSX survey export.

Writes model.gob, label_encoder.json, persona.json, report.md and run.json
to the artifacts directory and prints the evaluation report.

Example: careerpath train --data survey.xlsx --artifacts artifacts --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataPath == "" {
				dataPath = cfg.Data.DatasetFile
			}
			tc := trainingConfig(cfg)
			if cmd.Flags().Changed("seed") {
				tc = tc.WithSeed(seed)
			}
			if cmd.Flags().Changed("trees") {
				tc.Forest.Trees = trees
			}
			if cmd.Flags().Changed("max-depth") {
				tc.Forest.MaxDepth = maxDepth
			}
			if cmd.Flags().Changed("workers") {
				tc.Forest.Workers = workers
			}
			return runTrain(cmd, dataPath, artifactDir, tc, quiet)
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Dataset file (default $CAREER_DATASET)")
	cmd.Flags().StringVar(&artifactDir, "artifacts", "", "Artifacts directory (default $CAREER_ARTIFACT_DIR)")
	cmd.Flags().Uint64Var(&seed, "seed", 42, "Random seed for every stage")
	cmd.Flags().IntVar(&trees, "trees", 600, "Number of trees")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 20, "Maximum tree depth")
	cmd.Flags().IntVar(&workers, "workers", 0, "Parallel tree fits (0 = one per CPU)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the summary line")

	return cmd
}

func runTrain(cmd *cobra.Command, dataPath, artifactDir string, tc training.Config, quiet bool) error {
	start := time.Now()
	ds, err := dataset.Load(dataPath)
	if err != nil {
		return err
	}

	store := artifactStore(artifactDir)
	res, err := training.NewTrainer(tc).TrainAndSave(cmd.Context(), ds, store)
	if err != nil {
		return err
	}
	log.Printf("[train] Wrote artifacts to %s in %s", store.Dir, time.Since(start).Round(time.Millisecond))

	out := cmd.OutOrStdout()
	if !quiet {
		fmt.Fprintln(out, training.Report(res.Run, res.Evaluation, res.Forest))
	}
	fmt.Fprintln(out, styles.Success.Render(fmt.Sprintf("run %s: accuracy %.4f, macro F1 %.4f on %d test rows",
		res.Run.ID, res.Evaluation.Accuracy, res.Evaluation.MacroF1, res.Run.TestRows)))
	return nil
}
