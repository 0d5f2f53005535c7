package main

import (
	"fmt"
	"os"

	"careerpath/internal"
	"careerpath/internal/artifact"
	"careerpath/internal/config"
	"careerpath/internal/training"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// cfg is loaded once before any subcommand runs
var cfg *config.Config

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Error.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "careerpath",
		Short: "Train and query the career recommendation model",
		Long: `careerpath trains a random forest on the career survey and recommends
a career for new answers.

Configuration is read from the environment (and .env when present):
- CAREER_DATASET, CAREER_ARTIFACT_DIR, CAREER_PERSONA_MODE
- CAREER_SEED, CAREER_TREES, CAREER_MAX_DEPTH, CAREER_WORKERS
- LOG_LEVEL`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			internal.DefaultLogger.SetLevel(loaded.Log.Level)
			cfg = loaded
			return nil
		},
	}

	rootCmd.AddCommand(
		newTrainCmd(),
		newPredictCmd(),
		newAskCmd(),
		newDescribeCmd(),
		newSynthCmd(),
	)
	return rootCmd
}

// trainingConfig maps the environment onto a training run
func trainingConfig(c *config.Config) training.Config {
	tc := training.DefaultConfig().WithSeed(c.Model.Seed)
	tc.Forest.Trees = c.Model.Trees
	tc.Forest.MaxDepth = c.Model.MaxDepth
	tc.Forest.Workers = c.Model.Workers
	return tc
}

func artifactStore(dir string) *artifact.Store {
	if dir == "" {
		dir = cfg.Artifacts.Dir
	}
	return artifact.NewStore(dir)
}
