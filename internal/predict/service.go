// Package predict is the serving facade: it holds the loaded artifacts and
// turns one set of survey answers into a career label.
package predict

import (
	"context"
	"fmt"
	"log"
	"time"

	"careerpath/domain/core"
	"careerpath/domain/survey"
	"careerpath/internal"
	"careerpath/internal/artifact"
	"careerpath/internal/decision"
	"careerpath/internal/errors"
	"careerpath/internal/features"
	"careerpath/internal/forest"
	"careerpath/internal/labels"
	"careerpath/internal/metrics"
	"careerpath/internal/persona"
)

// Options configure a Service
type Options struct {
	PersonaMode persona.Mode     // defaults to persona.ModeFitted
	Rule        *decision.Rule   // defaults to decision.DefaultRule
	Metrics     *metrics.Metrics // defaults to metrics.Default()
}

// ClassProbability is one class of the forest output
type ClassProbability struct {
	Career      string  `json:"career"`
	Probability float64 `json:"probability"`
}

// Prediction is the answer to one request
type Prediction struct {
	RequestID     core.RequestID     `json:"request_id"`
	Career        string             `json:"career"`
	Overridden    bool               `json:"overridden"` // the runner-up replaced a low-confidence top class
	Persona       int                `json:"persona"`
	Probabilities []ClassProbability `json:"probabilities"` // highest first
}

// Service is immutable after construction and safe for concurrent use
type Service struct {
	forest   *forest.Forest
	encoder  *labels.Encoder
	assigner persona.Assigner
	rule     decision.Rule
	metrics  *metrics.Metrics
	run      *artifact.Run
}

// Load reads the artifacts from store and builds a Service
func Load(store *artifact.Store, opts Options) (*Service, error) {
	start := time.Now()

	model, err := store.LoadForest()
	if err != nil {
		return nil, err
	}
	encoder, err := store.LoadEncoder()
	if err != nil {
		return nil, err
	}

	var assigner persona.Assigner
	switch opts.PersonaMode {
	case persona.ModePlaceholder:
		assigner = persona.Placeholder{Value: persona.PlaceholderPersona}
	case persona.ModeFitted, "":
		pm, err := store.LoadPersona()
		if err != nil {
			return nil, err
		}
		// every centroid has the width of the first one, LoadPersona checks that
		if len(pm.Centroids[0]) != features.NumPersonaInputs {
			return nil, errors.ArtifactCorrupt(store.Path(artifact.PersonaFile),
				fmt.Errorf("centroids have %d dimensions, want %d", len(pm.Centroids[0]), features.NumPersonaInputs))
		}
		assigner = persona.Fitted{Model: pm}
	default:
		return nil, errors.ConfigInvalid(fmt.Sprintf("unknown persona mode %q", opts.PersonaMode))
	}

	if model.NumFeatures != features.NumFeatures {
		return nil, errors.ArtifactCorrupt(store.Path(artifact.ModelFile),
			fmt.Errorf("forest expects %d features, the feature engineer produces %d", model.NumFeatures, features.NumFeatures))
	}
	if model.NumClasses != encoder.NumClasses() {
		return nil, errors.ArtifactCorrupt(store.Path(artifact.EncoderFile),
			fmt.Errorf("encoder has %d classes but the forest predicts %d", encoder.NumClasses(), model.NumClasses))
	}

	svc := New(model, encoder, assigner, opts)

	// run.json is informational; older artifact directories may not have it
	if run, err := store.LoadRun(); err == nil {
		svc.run = run
	} else if !errors.HasCode(err, errors.CodeArtifactMissing) {
		log.Printf("[Predict] Ignoring unreadable run metadata: %v", err)
	}

	log.Printf("[Predict] Loaded %d trees, %d classes, persona mode %s from %s in %.2fms",
		len(model.Trees), encoder.NumClasses(), assigner.Mode(), store.Dir, float64(time.Since(start).Nanoseconds())/1e6)
	return svc, nil
}

// New assembles a Service from already loaded parts
func New(model *forest.Forest, encoder *labels.Encoder, assigner persona.Assigner, opts Options) *Service {
	rule := decision.DefaultRule
	if opts.Rule != nil {
		rule = *opts.Rule
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.Default()
	}
	return &Service{
		forest:   model,
		encoder:  encoder,
		assigner: assigner,
		rule:     rule,
		metrics:  m,
	}
}

// Predict validates the answers and returns the corrected career label
func (s *Service) Predict(ctx context.Context, answers survey.Answers) (Prediction, error) {
	start := time.Now()
	requestID := core.NewRequestID()

	pred, err := s.predict(ctx, answers)
	if err != nil {
		s.metrics.ObserveError(errors.GetCode(err))
		internal.DefaultLogger.Warn("[Predict] %s rejected: %v", requestID.Short(), err)
		return Prediction{}, err
	}
	pred.RequestID = requestID

	top := pred.Probabilities[0].Probability
	s.metrics.ObservePrediction(pred.Career, pred.Overridden, top, time.Since(start))
	log.Printf("[Predict] %s -> %s (p=%.3f, persona=%d, overridden=%t) in %.2fms",
		requestID.Short(), pred.Career, top, pred.Persona, pred.Overridden, float64(time.Since(start).Nanoseconds())/1e6)
	return pred, nil
}

func (s *Service) predict(ctx context.Context, answers survey.Answers) (Prediction, error) {
	if err := ctx.Err(); err != nil {
		return Prediction{}, errors.Wrap(err, "prediction cancelled")
	}

	rec, err := answers.Record()
	if err != nil {
		return Prediction{}, err
	}

	p := s.assigner.Assign(rec)
	vector := features.Engineer(rec, p)
	probs, err := s.forest.PredictProba(vector[:])
	if err != nil {
		return Prediction{}, err
	}

	choice := s.rule.Correct(probs)
	career, err := s.encoder.Inverse(choice.Class)
	if err != nil {
		return Prediction{}, errors.WithCode(errors.CodeArtifactCorrupt, err)
	}

	ranked := make([]ClassProbability, 0, len(probs))
	for _, c := range decision.Rank(probs) {
		ranked = append(ranked, ClassProbability{Career: s.encoder.Classes[c], Probability: probs[c]})
	}

	return Prediction{
		Career:        career,
		Overridden:    choice.Overridden,
		Persona:       p,
		Probabilities: ranked,
	}, nil
}

// Classes returns the careers the model can predict, in class index order
func (s *Service) Classes() []string {
	out := make([]string, len(s.encoder.Classes))
	copy(out, s.encoder.Classes)
	return out
}

// PersonaMode reports how personas are assigned
func (s *Service) PersonaMode() persona.Mode {
	return s.assigner.Mode()
}

// Run returns the training run metadata, nil when the artifacts have none
func (s *Service) Run() *artifact.Run {
	return s.run
}
