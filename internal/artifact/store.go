// Package artifact reads and writes the trained model files. A training run
// writes every file once; serving only reads them.
package artifact

import (
	"encoding/gob"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"careerpath/domain/core"
	"careerpath/internal/errors"
	"careerpath/internal/forest"
	"careerpath/internal/labels"
	"careerpath/internal/persona"

	"github.com/goccy/go-json"
)

// File names inside the artifact directory
const (
	ModelFile   = "model.gob"
	EncoderFile = "label_encoder.json"
	PersonaFile = "persona.json"
	ReportFile  = "report.md"
	RunFile     = "run.json"
)

// Run is the metadata of one training run
type Run struct {
	ID          core.RunID     `json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	Duration    string         `json:"duration"`
	Dataset     string         `json:"dataset"`
	DatasetHash core.Hash      `json:"dataset_hash,omitempty"`
	Rows        int            `json:"rows"`
	TrainRows   int            `json:"train_rows"`
	Resampled   int            `json:"train_rows_after_smote"`
	TestRows    int            `json:"test_rows"`
	Classes     []string       `json:"classes"`
	Features    []string       `json:"features"`
	Forest      forest.Config  `json:"forest"`
	Persona     persona.Config `json:"persona"`
	Accuracy    float64        `json:"accuracy"`
	MacroF1     float64        `json:"macro_f1"`
}

// Bundle is everything a training run produces
type Bundle struct {
	Forest  *forest.Forest
	Encoder *labels.Encoder
	Persona *persona.Model
	Report  string
	Run     *Run
}

// Store is a directory of artifacts
type Store struct {
	Dir string
}

// NewStore returns a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Path returns the full path of an artifact file
func (s *Store) Path(name string) string {
	return filepath.Join(s.Dir, name)
}

// Save writes every artifact of a bundle
func (s *Store) Save(b *Bundle) error {
	start := time.Now()
	if b.Forest == nil || b.Encoder == nil || b.Persona == nil {
		return errors.InvalidInput("bundle needs a forest, an encoder and a persona model")
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create artifact directory %s", s.Dir)
	}

	if err := s.writeFile(ModelFile, func(w io.Writer) error {
		return gob.NewEncoder(w).Encode(b.Forest)
	}); err != nil {
		return err
	}
	if err := s.writeJSON(EncoderFile, b.Encoder); err != nil {
		return err
	}
	if err := s.writeJSON(PersonaFile, b.Persona); err != nil {
		return err
	}
	if b.Report != "" {
		if err := s.writeFile(ReportFile, func(w io.Writer) error {
			_, err := io.WriteString(w, b.Report)
			return err
		}); err != nil {
			return err
		}
	}
	if b.Run != nil {
		if err := s.writeJSON(RunFile, b.Run); err != nil {
			return err
		}
	}

	log.Printf("[Artifacts] Saved bundle to %s in %.2fms", s.Dir, float64(time.Since(start).Nanoseconds())/1e6)
	return nil
}

// LoadForest decodes the forest blob
func (s *Store) LoadForest() (*forest.Forest, error) {
	var f forest.Forest
	if err := s.readFile(ModelFile, func(r io.Reader) error {
		return gob.NewDecoder(r).Decode(&f)
	}); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, errors.ArtifactCorrupt(s.Path(ModelFile), err)
	}
	return &f, nil
}

// LoadEncoder decodes the label encoder
func (s *Store) LoadEncoder() (*labels.Encoder, error) {
	var e labels.Encoder
	if err := s.readJSON(EncoderFile, &e); err != nil {
		return nil, err
	}
	if len(e.Classes) == 0 {
		return nil, errors.ArtifactCorrupt(s.Path(EncoderFile), fmt.Errorf("encoder has no classes"))
	}
	return labels.NewEncoder(e.Classes), nil
}

// LoadPersona decodes the persona centroids
func (s *Store) LoadPersona() (*persona.Model, error) {
	var m persona.Model
	if err := s.readJSON(PersonaFile, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, errors.ArtifactCorrupt(s.Path(PersonaFile), err)
	}
	return &m, nil
}

// LoadReport returns the evaluation report markdown
func (s *Store) LoadReport() (string, error) {
	var report []byte
	if err := s.readFile(ReportFile, func(r io.Reader) error {
		var err error
		report, err = io.ReadAll(r)
		return err
	}); err != nil {
		return "", err
	}
	return string(report), nil
}

// LoadRun decodes the run metadata
func (s *Store) LoadRun() (*Run, error) {
	var run Run
	if err := s.readJSON(RunFile, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// writeFile writes through a temp file so readers never see a partial artifact
func (s *Store) writeFile(name string, write func(io.Writer) error) error {
	path := s.Path(name)
	tmp, err := os.CreateTemp(s.Dir, name+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return errors.Wrapf(err, "failed to encode %s", path)
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return errors.Wrapf(err, "failed to move %s into place", path)
	}
	return nil
}

func (s *Store) writeJSON(name string, v interface{}) error {
	return s.writeFile(name, func(w io.Writer) error {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	})
}

func (s *Store) readFile(name string, read func(io.Reader) error) error {
	path := s.Path(name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.ArtifactMissing(path, err)
		}
		return errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	if err := read(f); err != nil {
		return errors.ArtifactCorrupt(path, err)
	}
	return nil
}

func (s *Store) readJSON(name string, v interface{}) error {
	return s.readFile(name, func(r io.Reader) error {
		return json.NewDecoder(r).Decode(v)
	})
}
