package survey

import (
	"testing"

	"careerpath/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleAnswers() Answers {
	return Answers{
		WorkEnvironment:     "Hybrid",
		RiskTaking:          9,
		Age:                 19,
		FinancialStability:  4,
		Subject:             "Commerce",
		Siblings:            2,
		Extracurricular:     "Yes",
		MusicGenre:          "Rock",
		Leadership:          6,
		TechSavviness:       "Comfortable",
		Motivation:          "Money",
		AcademicPerformance: 72,
		WaterIntake:         2.5,
	}
}

func TestAnswersRecordEncodesCategories(t *testing.T) {
	rec, err := sampleAnswers().Record()
	require.NoError(t, err)

	assert.Equal(t, 3.0, rec.WorkEnvironment)
	assert.Equal(t, 2.0, rec.Subject)
	assert.Equal(t, 1.0, rec.Extracurricular)
	assert.Equal(t, 3.0, rec.MusicGenre)
	assert.Equal(t, 7.0, rec.TechSavviness)
	assert.Equal(t, 2.0, rec.Motivation)
	assert.Equal(t, 9.0, rec.RiskTaking)
	assert.Equal(t, 72.0, rec.AcademicPerformance)
	assert.Equal(t, 2.5, rec.WaterIntake)
	assert.NoError(t, rec.Validate())
}

func TestTechSavvinessScaleIsNonLinear(t *testing.T) {
	want := map[string]float64{
		"Not Comfortable": 1,
		"Basic":           3,
		"Intermediate":    5,
		"Comfortable":     7,
		"Advanced":        10,
	}
	for label, code := range want {
		got, ok := TechSavviness.Code(label)
		require.True(t, ok, label)
		assert.Equal(t, code, got, label)
	}
}

func TestDefaultAnswersAreValid(t *testing.T) {
	assert.NoError(t, DefaultAnswers().Validate())
}

func TestValidateReportsEveryField(t *testing.T) {
	a := sampleAnswers()
	a.RiskTaking = 11
	a.Age = 9
	a.TechSavviness = "Expert"

	err := a.Validate()
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	assert.ElementsMatch(t, []string{"risk_taking", "age", "tech_savviness"}, errors.GetFields(err))
	assert.Contains(t, err.Error(), "risk_taking must be <= 10")
	assert.Contains(t, err.Error(), "Not Comfortable, Basic")

	_, err = a.Record()
	assert.Error(t, err)
}

func TestValidateNumericBounds(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Answers)
		valid bool
	}{
		{"water upper bound", func(a *Answers) { a.WaterIntake = 10 }, true},
		{"water over", func(a *Answers) { a.WaterIntake = 10.5 }, false},
		{"negative siblings", func(a *Answers) { a.Siblings = -1 }, false},
		{"zero leadership", func(a *Answers) { a.Leadership = 0 }, true},
		{"cgpa 100", func(a *Answers) { a.AcademicPerformance = 100 }, true},
		{"cgpa over", func(a *Answers) { a.AcademicPerformance = 100.5 }, false},
		{"age 25", func(a *Answers) { a.Age = 25 }, true},
		{"age 26", func(a *Answers) { a.Age = 26 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := sampleAnswers()
			tt.mut(&a)
			if tt.valid {
				assert.NoError(t, a.Validate())
			} else {
				assert.Error(t, a.Validate())
			}
		})
	}
}

func TestRecordValidate(t *testing.T) {
	rec, err := sampleAnswers().Record()
	require.NoError(t, err)

	rec.FinancialStability = 0
	err = rec.Validate()
	require.Error(t, err)
	assert.Equal(t, []string{"financial_stability"}, errors.GetFields(err))
}

func TestFieldsCoverEveryAnswer(t *testing.T) {
	assert.Len(t, Fields, 13)
	seen := map[string]bool{}
	for _, f := range Fields {
		assert.False(t, seen[f.Key], "duplicate field %s", f.Key)
		seen[f.Key] = true
		if f.Kind == KindChoice {
			require.NotNil(t, f.Encoding, f.Key)
			assert.Equal(t, f.Key, f.Encoding.Key)
		} else {
			assert.Less(t, f.Min, f.Max, f.Key)
		}
	}
	water := Fields[len(Fields)-1]
	assert.Equal(t, 0.5, water.Step)
	assert.False(t, water.Integer())
}

func TestEncodingLabelRoundTrip(t *testing.T) {
	label, ok := WorkEnvironment.Label(2)
	assert.True(t, ok)
	assert.Equal(t, "Remote", label)
	_, ok = WorkEnvironment.Label(4)
	assert.False(t, ok)
	assert.Equal(t, []string{"Pop", "Classical", "Rock"}, MusicGenre.Labels())
}

func TestParseAnswersRoundTrip(t *testing.T) {
	a := sampleAnswers()
	got, err := ParseAnswers(a.Values())
	require.NoError(t, err)
	assert.Equal(t, a, got)
}

func TestParseAnswersDefaultsMissingKeys(t *testing.T) {
	got, err := ParseAnswers(map[string]string{"age": " 21 ", "subject": "Arts"})
	require.NoError(t, err)

	want := DefaultAnswers()
	want.Age = 21
	want.Subject = "Arts"
	assert.Equal(t, want, got)
}

func TestParseAnswersRejectsBadNumbers(t *testing.T) {
	_, err := ParseAnswers(map[string]string{
		"age":          "nineteen",
		"siblings":     "1.5",
		"water_intake": "2.5",
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeValidationError, errors.GetCode(err))
	assert.Equal(t, []string{"age", "siblings"}, errors.GetFields(err))

	for _, v := range []string{"NaN", "Inf", "-inf", "1e400"} {
		_, err := ParseAnswers(map[string]string{"water_intake": v})
		require.Error(t, err, v)
		assert.Equal(t, errors.CodeValidationError, errors.GetCode(err), v)
		assert.Equal(t, []string{"water_intake"}, errors.GetFields(err), v)
	}
}
