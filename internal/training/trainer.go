// Package training runs the offline pipeline: relabel, encode, cluster
// personas, split, oversample, fit the forest and evaluate it on the held-out rows.
package training

import (
	"context"
	"log"
	"time"

	"careerpath/domain/core"
	"careerpath/internal/artifact"
	"careerpath/internal/dataset"
	"careerpath/internal/decision"
	"careerpath/internal/errors"
	"careerpath/internal/features"
	"careerpath/internal/forest"
	"careerpath/internal/labels"
	"careerpath/internal/persona"
	"careerpath/internal/sampling"
)

// Config holds every knob of a training run
type Config struct {
	TestFraction float64
	Persona      persona.Config
	SMOTE        sampling.SMOTEConfig
	Forest       forest.Config
	Rule         decision.Rule
	MergeTable   map[string]string
	Seed         uint64 // split seed
}

// DefaultConfig is the production training run: 20% test split, seed 42 everywhere
func DefaultConfig() Config {
	return Config{
		TestFraction: 0.2,
		Persona:      persona.DefaultConfig(),
		SMOTE:        sampling.DefaultSMOTEConfig(),
		Forest:       forest.DefaultConfig(),
		Rule:         decision.DefaultRule,
		MergeTable:   labels.MergeTable,
		Seed:         42,
	}
}

// WithSeed returns a copy with every random stage seeded from seed
func (c Config) WithSeed(seed uint64) Config {
	c.Seed = seed
	c.Persona.Seed = seed
	c.SMOTE.Seed = seed
	c.Forest.Seed = seed
	return c
}

// Trainer runs the training pipeline
type Trainer struct {
	config Config
}

// NewTrainer creates a trainer
func NewTrainer(config Config) *Trainer {
	return &Trainer{config: config}
}

// Result is the outcome of one run
type Result struct {
	Forest     *forest.Forest
	Encoder    *labels.Encoder
	Persona    *persona.Model
	Evaluation *Evaluation
	Run        *artifact.Run
}

// Bundle packages the result for the artifact store
func (r *Result) Bundle() *artifact.Bundle {
	return &artifact.Bundle{
		Forest:  r.Forest,
		Encoder: r.Encoder,
		Persona: r.Persona,
		Report:  Report(r.Run, r.Evaluation, r.Forest),
		Run:     r.Run,
	}
}

// Run trains a model on the dataset
func (t *Trainer) Run(ctx context.Context, ds *dataset.Dataset) (*Result, error) {
	start := time.Now()
	cfg := t.config
	runID := core.NewRunID()
	log.Printf("[Trainer] Run %s: %d rows from %s", runID, ds.Len(), ds.Source)

	if ds.Len() == 0 {
		return nil, errors.DatasetInvalid("dataset has no rows")
	}

	merged := labels.Merge(ds.Targets, cfg.MergeTable)
	encoder, err := labels.Fit(merged)
	if err != nil {
		return nil, err
	}
	y, err := encoder.Transform(merged)
	if err != nil {
		return nil, err
	}
	log.Printf("[Trainer] %d classes after merging: %v", encoder.NumClasses(), encoder.Classes)

	vectors := make([]features.Vector, ds.Len())
	points := make([][]float64, ds.Len())
	for i, rec := range ds.Records {
		vectors[i] = features.Engineer(rec, 0)
		points[i] = features.PersonaInputs(rec)
	}

	personas, err := persona.Fit(points, cfg.Persona)
	if err != nil {
		return nil, errors.Wrap(err, "persona clustering failed")
	}
	X := make([][]float64, ds.Len())
	for i := range vectors {
		X[i] = features.WithPersona(vectors[i], personas.Labels[i]).Slice()
	}

	split, err := sampling.StratifiedSplit(y, cfg.TestFraction, cfg.Seed)
	if err != nil {
		return nil, err
	}
	trainX, trainY := sampling.Take(X, y, split.Train)
	testX, testY := sampling.Take(X, y, split.Test)
	log.Printf("[Trainer] Split %d train / %d test rows", len(trainY), len(testY))

	balancedX, balancedY, err := sampling.SMOTE(trainX, trainY, cfg.SMOTE)
	if err != nil {
		return nil, errors.Wrap(err, "oversampling failed")
	}

	model, err := forest.Fit(ctx, balancedX, balancedY, encoder.NumClasses(), cfg.Forest)
	if err != nil {
		return nil, err
	}

	probs := make([][]float64, len(testX))
	for i, x := range testX {
		if probs[i], err = model.PredictProba(x); err != nil {
			return nil, err
		}
	}
	eval, err := Evaluate(encoder.Classes, testY, probs, cfg.Rule)
	if err != nil {
		return nil, err
	}
	log.Printf("[Trainer] Test accuracy %.4f (macro F1 %.4f, %d overrides)", eval.Accuracy, eval.MacroF1, eval.Overrides)

	names := make([]string, features.NumFeatures)
	copy(names, features.Names[:])
	run := &artifact.Run{
		ID:        runID,
		CreatedAt: time.Now().UTC(),
		Duration:  time.Since(start).Round(time.Millisecond).String(),
		Dataset:   ds.Source,
		Rows:      ds.Len(),
		TrainRows: len(trainY),
		Resampled: len(balancedY),
		TestRows:  len(testY),
		Classes:   encoder.Classes,
		Features:  names,
		Forest:    model.Config,
		Persona:   cfg.Persona,
		Accuracy:  eval.Accuracy,
		MacroF1:   eval.MacroF1,
	}
	if ds.Source != "" {
		if h, err := core.HashFile(ds.Source); err == nil {
			run.DatasetHash = h
		}
	}

	log.Printf("[Trainer] Run %s finished in %s", runID, run.Duration)
	return &Result{
		Forest:     model,
		Encoder:    encoder,
		Persona:    personas,
		Evaluation: eval,
		Run:        run,
	}, nil
}

// TrainAndSave runs the pipeline and writes the artifacts
func (t *Trainer) TrainAndSave(ctx context.Context, ds *dataset.Dataset, store *artifact.Store) (*Result, error) {
	res, err := t.Run(ctx, ds)
	if err != nil {
		return nil, err
	}
	if err := store.Save(res.Bundle()); err != nil {
		return nil, errors.Wrapf(err, "failed to save artifacts to %s", store.Dir)
	}
	return res, nil
}
