package testkit

import (
	"math"
	"math/rand"

	"careerpath/adapters/excel"
	"careerpath/domain/survey"
	"careerpath/internal/dataset"
)

// SurveyGeneratorConfig configures the synthetic survey generator
type SurveyGeneratorConfig struct {
	Rows           int      `json:"rows"`
	Seed           int64    `json:"seed"`
	Careers        []string `json:"careers"`
	Noise          float64  `json:"noise"`           // probability a categorical answer ignores the career profile
	TextCategories bool     `json:"text_categories"` // write option text instead of codes
	IncludeIgnored bool     `json:"include_ignored"` // add the Favorite Color and Birth Month columns
}

// DefaultSurveyConfig returns defaults for survey data generation
func DefaultSurveyConfig() SurveyGeneratorConfig {
	return SurveyGeneratorConfig{
		Rows:           600,
		Seed:           42,
		Careers:        DefaultCareers(),
		Noise:          0.2,
		IncludeIgnored: true,
	}
}

// DefaultCareers lists every career with a built-in profile
func DefaultCareers() []string {
	return []string{"Artist", "Corporate Employee", "Entrepreneur", "Government Officer", "Scientist", "Teacher"}
}

// careerProfile is the typical respondent for one career
type careerProfile struct {
	workEnvironment string
	subject         string
	motivation      string
	music           string
	tech            string
	extracurricular float64 // probability of "Yes"
	risk            float64
	leadership      float64
	finance         float64
	cgpa            float64
}

var profiles = map[string]careerProfile{
	"Artist":             {"Remote", "Arts", "Passion", "Rock", "Basic", 0.8, 6, 4, 5, 62},
	"Corporate Employee": {"Office", "Commerce", "Stability", "Pop", "Intermediate", 0.4, 3, 5, 6, 72},
	"Entrepreneur":       {"Hybrid", "Commerce", "Money", "Pop", "Comfortable", 0.7, 9, 8, 4, 70},
	"Government Officer": {"Office", "Arts", "Stability", "Classical", "Basic", 0.3, 2, 6, 3, 75},
	"Scientist":          {"Hybrid", "Science", "Passion", "Classical", "Advanced", 0.5, 4, 3, 7, 88},
	"Teacher":            {"Office", "Science", "Passion", "Pop", "Intermediate", 0.6, 3, 7, 5, 78},
}

var (
	colors = []string{"Red", "Blue", "Green", "Black", "Yellow"}
	months = []string{"January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"}
)

// SurveyDataGenerator generates survey rows whose answers lean towards the respondent's career
type SurveyDataGenerator struct {
	config SurveyGeneratorConfig
	rng    *rand.Rand
}

// NewSurveyDataGenerator creates a new survey data generator
func NewSurveyDataGenerator(config SurveyGeneratorConfig) *SurveyDataGenerator {
	if len(config.Careers) == 0 {
		config.Careers = DefaultCareers()
	}
	return &SurveyDataGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate produces the configured number of rows, careers assigned round-robin
func (g *SurveyDataGenerator) Generate() *dataset.Dataset {
	ds := &dataset.Dataset{
		Source:  "synthetic",
		Records: make([]survey.Record, g.config.Rows),
		Targets: make([]string, g.config.Rows),
	}
	for i := 0; i < g.config.Rows; i++ {
		career := g.config.Careers[i%len(g.config.Careers)]
		ds.Records[i] = g.respondent(career)
		ds.Targets[i] = career
	}
	return ds
}

// GenerateExcel produces rows in the survey export layout
func (g *SurveyDataGenerator) GenerateExcel() *excel.ExcelData {
	ds := g.Generate()
	data := dataset.ToExcel(ds)

	if g.config.TextCategories {
		for i, rec := range ds.Records {
			for _, col := range dataset.Columns {
				if col.Encoding == nil {
					continue
				}
				if label, ok := col.Encoding.Label(col.Value(rec)); ok {
					data.Rows[i][col.Name] = label
				}
			}
		}
	}

	if g.config.IncludeIgnored {
		data.Headers = append(data.Headers, dataset.Ignored...)
		for _, row := range data.Rows {
			row["Favorite Color"] = colors[g.rng.Intn(len(colors))]
			row["Birth Month"] = months[g.rng.Intn(len(months))]
		}
	}
	return data
}

// Answers returns one respondent of the given career as form answers
func (g *SurveyDataGenerator) Answers(career string) survey.Answers {
	rec := g.respondent(career)
	label := func(e survey.Encoding, code float64) string {
		l, _ := e.Label(code)
		return l
	}
	return survey.Answers{
		WorkEnvironment:     label(survey.WorkEnvironment, rec.WorkEnvironment),
		RiskTaking:          int(rec.RiskTaking),
		Age:                 int(rec.Age),
		FinancialStability:  int(rec.FinancialStability),
		Subject:             label(survey.Subject, rec.Subject),
		Siblings:            int(rec.Siblings),
		Extracurricular:     label(survey.Extracurricular, rec.Extracurricular),
		MusicGenre:          label(survey.MusicGenre, rec.MusicGenre),
		Leadership:          int(rec.Leadership),
		TechSavviness:       label(survey.TechSavviness, rec.TechSavviness),
		Motivation:          label(survey.Motivation, rec.Motivation),
		AcademicPerformance: rec.AcademicPerformance,
		WaterIntake:         rec.WaterIntake,
	}
}

func (g *SurveyDataGenerator) respondent(career string) survey.Record {
	p, ok := profiles[career]
	if !ok {
		// unknown careers get a neutral profile
		p = careerProfile{"Hybrid", "Science", "Money", "Pop", "Intermediate", 0.5, 5, 5, 5, 70}
	}

	extracurricular := 0.0
	if g.rng.Float64() < p.extracurricular {
		extracurricular = 1
	}

	return survey.Record{
		WorkEnvironment:     g.choice(survey.WorkEnvironment, p.workEnvironment),
		RiskTaking:          g.integer(p.risk, 1.5, 1, 10),
		Age:                 g.integer(18, 3, 10, 25),
		FinancialStability:  g.integer(p.finance, 2, 1, 10),
		Subject:             g.choice(survey.Subject, p.subject),
		Siblings:            g.integer(1.5, 1.2, 0, 10),
		Extracurricular:     extracurricular,
		MusicGenre:          g.choice(survey.MusicGenre, p.music),
		Leadership:          g.integer(p.leadership, 1.5, 0, 10),
		TechSavviness:       g.choice(survey.TechSavviness, p.tech),
		Motivation:          g.choice(survey.Motivation, p.motivation),
		AcademicPerformance: g.integer(p.cgpa, 7, 0, 100),
		// half-litre steps like the form
		WaterIntake: math.Round(clamp(g.rng.NormFloat64()*1.2+3, 0, 10)*2) / 2,
	}
}

func (g *SurveyDataGenerator) choice(e survey.Encoding, preferred string) float64 {
	label := preferred
	if g.rng.Float64() < g.config.Noise {
		label = e.Options[g.rng.Intn(len(e.Options))].Label
	}
	code, _ := e.Code(label)
	return code
}

func (g *SurveyDataGenerator) integer(mean, sd, lo, hi float64) float64 {
	return math.Round(clamp(g.rng.NormFloat64()*sd+mean, lo, hi))
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
