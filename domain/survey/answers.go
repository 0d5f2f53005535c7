package survey

import (
	"fmt"

	"careerpath/internal/errors"
)

// Answers is one submission of the career form, categorical answers as text
type Answers struct {
	WorkEnvironment     string  `json:"work_environment" form:"work_environment" validate:"choice=work_environment"`
	RiskTaking          int     `json:"risk_taking" form:"risk_taking" validate:"min=1,max=10"`
	Age                 int     `json:"age" form:"age" validate:"min=10,max=25"`
	FinancialStability  int     `json:"financial_stability" form:"financial_stability" validate:"min=1,max=10"`
	Subject             string  `json:"subject" form:"subject" validate:"choice=subject"`
	Siblings            int     `json:"siblings" form:"siblings" validate:"min=0,max=10"`
	Extracurricular     string  `json:"extracurricular" form:"extracurricular" validate:"choice=extracurricular"`
	MusicGenre          string  `json:"music_genre" form:"music_genre" validate:"choice=music_genre"`
	Leadership          int     `json:"leadership" form:"leadership" validate:"min=0,max=10"`
	TechSavviness       string  `json:"tech_savviness" form:"tech_savviness" validate:"choice=tech_savviness"`
	Motivation          string  `json:"motivation" form:"motivation" validate:"choice=motivation"`
	AcademicPerformance float64 `json:"academic_performance" form:"academic_performance" validate:"min=0,max=100"`
	WaterIntake         float64 `json:"water_intake" form:"water_intake" validate:"min=0,max=10"`
}

// DefaultAnswers mirrors the initial state of the form: first option, lowest number
func DefaultAnswers() Answers {
	return Answers{
		WorkEnvironment:    WorkEnvironment.Default(),
		RiskTaking:         1,
		Age:                10,
		FinancialStability: 1,
		Subject:            Subject.Default(),
		Extracurricular:    Extracurricular.Default(),
		MusicGenre:         MusicGenre.Default(),
		TechSavviness:      TechSavviness.Default(),
		Motivation:         Motivation.Default(),
	}
}

// Validate reports every answer outside its allowed options or range
func (a Answers) Validate() error {
	return validateStruct(a)
}

// Record validates the answers and encodes them into a Record
func (a Answers) Record() (Record, error) {
	if err := a.Validate(); err != nil {
		return Record{}, err
	}

	rec := Record{
		RiskTaking:          float64(a.RiskTaking),
		Age:                 float64(a.Age),
		FinancialStability:  float64(a.FinancialStability),
		Siblings:            float64(a.Siblings),
		Leadership:          float64(a.Leadership),
		AcademicPerformance: a.AcademicPerformance,
		WaterIntake:         a.WaterIntake,
	}

	var err error
	if rec.WorkEnvironment, err = encode(WorkEnvironment, a.WorkEnvironment); err != nil {
		return Record{}, err
	}
	if rec.Subject, err = encode(Subject, a.Subject); err != nil {
		return Record{}, err
	}
	if rec.Extracurricular, err = encode(Extracurricular, a.Extracurricular); err != nil {
		return Record{}, err
	}
	if rec.MusicGenre, err = encode(MusicGenre, a.MusicGenre); err != nil {
		return Record{}, err
	}
	if rec.TechSavviness, err = encode(TechSavviness, a.TechSavviness); err != nil {
		return Record{}, err
	}
	if rec.Motivation, err = encode(Motivation, a.Motivation); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func encode(e Encoding, label string) (float64, error) {
	code, ok := e.Code(label)
	if !ok {
		return 0, errors.ValidationFailed([]string{e.Key}, []string{fmt.Sprintf("%s: unknown option %q", e.Key, label)})
	}
	return code, nil
}
