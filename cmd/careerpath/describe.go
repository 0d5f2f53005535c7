package main

import (
	"careerpath/internal/dataset"
	"careerpath/internal/labels"
	"careerpath/internal/profiling"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newDescribeCmd() *cobra.Command {
	var dataPath string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Profile a dataset before training",
		Long: `Summarise every survey column and the career distribution, before and
after relabeling, with a chi-square test of class balance.

Example: careerpath describe --data survey.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dataPath == "" {
				dataPath = cfg.Data.DatasetFile
			}
			ds, err := dataset.Load(dataPath)
			if err != nil {
				return err
			}
			profile, err := profiling.ProfileDataset(ds, labels.MergeTable)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(profile)
			}
			return profile.WriteText(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&dataPath, "data", "", "Dataset file (default $CAREER_DATASET)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the profile as JSON")
	return cmd
}
