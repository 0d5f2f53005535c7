package main

import (
	"fmt"
	"strconv"
	"strings"

	"careerpath/domain/survey"
	"careerpath/internal/persona"
	"careerpath/internal/predict"

	"github.com/charmbracelet/huh"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// flagName turns a field key into its flag, e.g. work_environment -> work-environment
func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

func loadService(artifactDir, mode string) (*predict.Service, error) {
	pm := cfg.Model.PersonaMode
	if mode != "" {
		parsed, err := persona.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		pm = parsed
	}
	return predict.Load(artifactStore(artifactDir), predict.Options{PersonaMode: pm})
}

func newPredictCmd() *cobra.Command {
	var artifactDir, mode string
	var asJSON bool
	values := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Recommend a career for answers given as flags",
		Long: `Recommend a career for one set of answers.

Unset questions take the first option or the lowest allowed number.

Example: careerpath predict --subject Science --tech-savviness Advanced --academic-performance 88`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set := map[string]string{}
			for key, v := range values {
				if cmd.Flags().Changed(flagName(key)) {
					set[key] = *v
				}
			}
			answers, err := survey.ParseAnswers(set)
			if err != nil {
				return err
			}
			return runPredict(cmd, artifactDir, mode, answers, asJSON)
		},
	}

	defaults := survey.DefaultAnswers().Values()
	for _, f := range survey.Fields {
		usage := f.Question
		if f.Encoding != nil {
			usage += " (" + strings.Join(f.Encoding.Labels(), ", ") + ")"
		}
		values[f.Key] = cmd.Flags().String(flagName(f.Key), defaults[f.Key], usage)
	}
	cmd.Flags().StringVar(&artifactDir, "artifacts", "", "Artifacts directory (default $CAREER_ARTIFACT_DIR)")
	cmd.Flags().StringVar(&mode, "persona-mode", "", "fitted or placeholder (default $CAREER_PERSONA_MODE)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the prediction as JSON")

	return cmd
}

func newAskCmd() *cobra.Command {
	var artifactDir, mode string

	cmd := &cobra.Command{
		Use:   "ask",
		Short: "Answer the questionnaire in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService(artifactDir, mode)
			if err != nil {
				return err
			}
			answers, err := askAnswers()
			if err != nil {
				return err
			}
			pred, err := svc.Predict(cmd.Context(), answers)
			if err != nil {
				return err
			}
			printPrediction(cmd.OutOrStdout(), pred)
			return nil
		},
	}

	cmd.Flags().StringVar(&artifactDir, "artifacts", "", "Artifacts directory (default $CAREER_ARTIFACT_DIR)")
	cmd.Flags().StringVar(&mode, "persona-mode", "", "fitted or placeholder (default $CAREER_PERSONA_MODE)")
	return cmd
}

func runPredict(cmd *cobra.Command, artifactDir, mode string, answers survey.Answers, asJSON bool) error {
	svc, err := loadService(artifactDir, mode)
	if err != nil {
		return err
	}
	pred, err := svc.Predict(cmd.Context(), answers)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(pred)
	}
	printPrediction(cmd.OutOrStdout(), pred)
	return nil
}

// askAnswers runs one huh group per question
func askAnswers() (survey.Answers, error) {
	values := survey.DefaultAnswers().Values()
	results := make([]*string, len(survey.Fields))
	var groups []*huh.Group
	for i, f := range survey.Fields {
		v := values[f.Key]
		results[i] = &v
		if f.Encoding != nil {
			groups = append(groups, huh.NewGroup(
				huh.NewSelect[string]().
					Title(f.Question).
					Options(huh.NewOptions(f.Encoding.Labels()...)...).
					Value(results[i]),
			))
			continue
		}
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title(f.Question).
				Description(fmt.Sprintf("%s to %s", strconv.FormatFloat(f.Min, 'f', -1, 64), strconv.FormatFloat(f.Max, 'f', -1, 64))).
				Value(results[i]).
				Validate(numberValidator(f)),
		))
	}

	if err := huh.NewForm(groups...).Run(); err != nil {
		return survey.Answers{}, err
	}

	set := make(map[string]string, len(survey.Fields))
	for i, f := range survey.Fields {
		set[f.Key] = *results[i]
	}
	answers, err := survey.ParseAnswers(set)
	if err != nil {
		return survey.Answers{}, err
	}
	return answers, answers.Validate()
}

func numberValidator(f survey.Field) func(string) error {
	return func(s string) error {
		n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("enter a number")
		}
		if n < f.Min || n > f.Max {
			return fmt.Errorf("must be between %s and %s", strconv.FormatFloat(f.Min, 'f', -1, 64), strconv.FormatFloat(f.Max, 'f', -1, 64))
		}
		if f.Integer() && n != float64(int64(n)) {
			return fmt.Errorf("enter a whole number")
		}
		return nil
	}
}
