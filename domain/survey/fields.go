package survey

// FieldKind distinguishes select questions from bounded number questions
type FieldKind string

const (
	KindChoice FieldKind = "choice"
	KindNumber FieldKind = "number"
)

// Field describes one question of the form in display order
type Field struct {
	Key      string
	Question string
	Kind     FieldKind
	Encoding *Encoding // choice questions only
	Min      float64
	Max      float64
	Step     float64
}

// Integer reports whether a number question only accepts whole numbers
func (f Field) Integer() bool {
	return f.Kind == KindNumber && f.Step == 1
}

// Fields lists the form questions in the order they are asked
var Fields = []Field{
	{Key: "work_environment", Question: "Preferred Work Environment", Kind: KindChoice, Encoding: &WorkEnvironment},
	{Key: "risk_taking", Question: "Risk-Taking Ability (1 to 10)", Kind: KindNumber, Min: 1, Max: 10, Step: 1},
	{Key: "age", Question: "Age", Kind: KindNumber, Min: 10, Max: 25, Step: 1},
	{Key: "financial_stability", Question: "Financial Stability (1 - low, 10 - high)", Kind: KindNumber, Min: 1, Max: 10, Step: 1},
	{Key: "subject", Question: "Preferred Subjects", Kind: KindChoice, Encoding: &Subject},
	{Key: "siblings", Question: "Number of Siblings", Kind: KindNumber, Min: 0, Max: 10, Step: 1},
	{Key: "extracurricular", Question: "Participation in Extracurricular Activities", Kind: KindChoice, Encoding: &Extracurricular},
	{Key: "music_genre", Question: "Preferred Music Genre", Kind: KindChoice, Encoding: &MusicGenre},
	{Key: "leadership", Question: "Leadership Experience (0 to 10)", Kind: KindNumber, Min: 0, Max: 10, Step: 1},
	{Key: "tech_savviness", Question: "Tech-Savviness", Kind: KindChoice, Encoding: &TechSavviness},
	{Key: "motivation", Question: "Motivation for Career Choice", Kind: KindChoice, Encoding: &Motivation},
	{Key: "academic_performance", Question: "Academic Performance (0–100)", Kind: KindNumber, Min: 0, Max: 100, Step: 1},
	{Key: "water_intake", Question: "Daily Water Intake (in Litres)", Kind: KindNumber, Min: 0, Max: 10, Step: 0.5},
}
