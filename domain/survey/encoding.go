package survey

// Option is one selectable answer of a categorical question and its numeric code
type Option struct {
	Label string  `json:"label"`
	Code  float64 `json:"code"`
}

// Encoding maps the answers of one categorical question to the codes the model was trained on.
// The option order is the order shown to the user; the first option is the default.
type Encoding struct {
	Key     string   `json:"key"`
	Options []Option `json:"options"`
}

// Category encodings shared by training and inference.
var (
	WorkEnvironment = Encoding{Key: "work_environment", Options: []Option{
		{"Office", 1}, {"Remote", 2}, {"Hybrid", 3},
	}}
	Subject = Encoding{Key: "subject", Options: []Option{
		{"Science", 1}, {"Commerce", 2}, {"Arts", 3},
	}}
	Extracurricular = Encoding{Key: "extracurricular", Options: []Option{
		{"No", 0}, {"Yes", 1},
	}}
	MusicGenre = Encoding{Key: "music_genre", Options: []Option{
		{"Pop", 1}, {"Classical", 2}, {"Rock", 3},
	}}
	// TechSavviness is deliberately non-linear.
	TechSavviness = Encoding{Key: "tech_savviness", Options: []Option{
		{"Not Comfortable", 1}, {"Basic", 3}, {"Intermediate", 5}, {"Comfortable", 7}, {"Advanced", 10},
	}}
	Motivation = Encoding{Key: "motivation", Options: []Option{
		{"Passion", 1}, {"Money", 2}, {"Stability", 3},
	}}
)

// Encodings lists every categorical encoding by key
var Encodings = map[string]Encoding{
	WorkEnvironment.Key: WorkEnvironment,
	Subject.Key:         Subject,
	Extracurricular.Key: Extracurricular,
	MusicGenre.Key:      MusicGenre,
	TechSavviness.Key:   TechSavviness,
	Motivation.Key:      Motivation,
}

// Code returns the numeric code of a label
func (e Encoding) Code(label string) (float64, bool) {
	for _, opt := range e.Options {
		if opt.Label == label {
			return opt.Code, true
		}
	}
	return 0, false
}

// Label returns the label for a numeric code
func (e Encoding) Label(code float64) (string, bool) {
	for _, opt := range e.Options {
		if opt.Code == code {
			return opt.Label, true
		}
	}
	return "", false
}

// Labels returns the option labels in display order
func (e Encoding) Labels() []string {
	labels := make([]string, len(e.Options))
	for i, opt := range e.Options {
		labels[i] = opt.Label
	}
	return labels
}

// Default returns the first option label
func (e Encoding) Default() string {
	return e.Options[0].Label
}
