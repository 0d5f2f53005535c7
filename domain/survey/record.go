package survey

// Record is a respondent's answers with every categorical answer already encoded.
// It is what the feature engineer consumes at both training and inference time.
type Record struct {
	WorkEnvironment     float64 `json:"work_environment" validate:"gte=1,lte=3"`
	RiskTaking          float64 `json:"risk_taking" validate:"gte=1,lte=10"`
	Age                 float64 `json:"age" validate:"gte=10,lte=25"`
	FinancialStability  float64 `json:"financial_stability" validate:"gte=1,lte=10"`
	Subject             float64 `json:"subject" validate:"gte=1,lte=3"`
	Siblings            float64 `json:"siblings" validate:"gte=0,lte=10"`
	Extracurricular     float64 `json:"extracurricular" validate:"gte=0,lte=1"`
	MusicGenre          float64 `json:"music_genre" validate:"gte=1,lte=3"`
	Leadership          float64 `json:"leadership" validate:"gte=0,lte=10"`
	TechSavviness       float64 `json:"tech_savviness" validate:"gte=1,lte=10"`
	Motivation          float64 `json:"motivation" validate:"gte=1,lte=3"`
	AcademicPerformance float64 `json:"academic_performance" validate:"gte=0,lte=100"`
	WaterIntake         float64 `json:"water_intake" validate:"gte=0,lte=10"`
}

// Validate checks every field against its documented range
func (r Record) Validate() error {
	return validateStruct(r)
}
