// Package features turns a survey record into the fixed-width vector the
// classifier is trained on. Training and serving both go through Engineer,
// so the column order below is the model's input contract.
package features

import "careerpath/domain/survey"

// NumFeatures is the width of every feature vector
const NumFeatures = 21

// Column indices into a Vector
const (
	WorkEnvironment = iota
	RiskTaking
	Age
	FinancialStability
	Subject
	Siblings
	Extracurricular
	MusicGenre
	Leadership
	TechSavviness
	Motivation
	RiskXLeadership
	LowFinanceHighRisk
	CGPABucketMedium
	CGPABucketHigh
	WaterCategoryMedium
	WaterCategoryHigh
	AcademicRiskProfile
	LeadershipToSiblingsRatio
	TechFinanceCombo
	PersonaCluster
)

// Names are the column names in vector order
var Names = [NumFeatures]string{
	"Preferred Work Environment",
	"Risk-Taking Ability",
	"Age",
	"Financial Stability - self/family (1 is low income and 10 is high income)",
	"Preferred Subjects in Highschool/College",
	"Number of Siblings",
	"Participation in Extracurricular Activities",
	"Preferred Music Genre",
	"Leadership Experience",
	"Tech-Savviness",
	"Motivation for Career Choice",
	"risk_x_leadership",
	"low_finance_high_risk",
	"cgpa_bucket_Medium",
	"cgpa_bucket_High",
	"water_category_Medium",
	"water_category_High",
	"academic_risk_profile",
	"leadership_to_siblings_ratio",
	"tech_finance_combo",
	"persona_cluster",
}

// Vector is one engineered feature row
type Vector [NumFeatures]float64

// Slice returns a copy of the vector as a slice
func (v Vector) Slice() []float64 {
	out := make([]float64, NumFeatures)
	copy(out, v[:])
	return out
}

// Engineer derives the feature vector of a record. persona fills the last column.
// Inputs are assumed to be in range; see survey.Record.Validate.
func Engineer(rec survey.Record, persona int) Vector {
	var v Vector

	v[WorkEnvironment] = rec.WorkEnvironment
	v[RiskTaking] = rec.RiskTaking
	v[Age] = rec.Age
	v[FinancialStability] = rec.FinancialStability
	v[Subject] = rec.Subject
	v[Siblings] = rec.Siblings
	v[Extracurricular] = rec.Extracurricular
	v[MusicGenre] = rec.MusicGenre
	v[Leadership] = rec.Leadership
	v[TechSavviness] = rec.TechSavviness
	v[Motivation] = rec.Motivation

	v[RiskXLeadership] = rec.RiskTaking * rec.Leadership
	v[LowFinanceHighRisk] = indicator(rec.RiskTaking > 8 && rec.FinancialStability < 5)
	v[CGPABucketMedium] = indicator(rec.AcademicPerformance > 60 && rec.AcademicPerformance <= 80)
	v[CGPABucketHigh] = indicator(rec.AcademicPerformance > 80)
	v[WaterCategoryMedium] = indicator(rec.WaterIntake > 2 && rec.WaterIntake <= 4)
	v[WaterCategoryHigh] = indicator(rec.WaterIntake > 4)
	v[AcademicRiskProfile] = rec.AcademicPerformance * rec.RiskTaking
	// siblings >= 0, so the denominator is at least 1
	v[LeadershipToSiblingsRatio] = rec.Leadership / (rec.Siblings + 1)
	v[TechFinanceCombo] = rec.TechSavviness * rec.FinancialStability
	v[PersonaCluster] = float64(persona)

	return v
}

// WithPersona returns v with the persona column replaced
func WithPersona(v Vector, persona int) Vector {
	v[PersonaCluster] = float64(persona)
	return v
}

// NumPersonaInputs is the number of attributes the persona clusterer sees
const NumPersonaInputs = 5

// PersonaInputs returns the behavioural attributes used for persona clustering:
// risk, financial stability, leadership, academic performance, tech-savviness.
func PersonaInputs(rec survey.Record) []float64 {
	return []float64{
		rec.RiskTaking,
		rec.FinancialStability,
		rec.Leadership,
		rec.AcademicPerformance,
		rec.TechSavviness,
	}
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
