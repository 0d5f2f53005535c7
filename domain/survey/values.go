package survey

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"careerpath/internal/errors"

	"github.com/goccy/go-json"
)

// Values flattens the answers to text keyed by Field.Key
func (a Answers) Values() map[string]string {
	out := make(map[string]string, len(Fields))
	data, err := json.Marshal(a)
	if err != nil {
		return out
	}
	raw := map[string]interface{}{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return out
	}
	for k, v := range raw {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// ParseAnswers builds Answers from text values keyed by Field.Key.
// Missing keys keep their DefaultAnswers value. Range and option checks
// are left to Validate.
func ParseAnswers(values map[string]string) (Answers, error) {
	raw := map[string]interface{}{}
	var fields, details []string
	for _, f := range Fields {
		v, ok := values[f.Key]
		if !ok {
			continue
		}
		v = strings.TrimSpace(v)
		if f.Kind == KindChoice {
			raw[f.Key] = v
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		switch {
		case err != nil:
			fields = append(fields, f.Key)
			details = append(details, fmt.Sprintf("%s: %q is not a number", f.Key, v))
		case math.IsNaN(n) || math.IsInf(n, 0):
			fields = append(fields, f.Key)
			details = append(details, fmt.Sprintf("%s: %q is not a finite number", f.Key, v))
		case f.Integer() && n != math.Trunc(n):
			fields = append(fields, f.Key)
			details = append(details, fmt.Sprintf("%s: %q is not a whole number", f.Key, v))
		default:
			raw[f.Key] = n
		}
	}
	if len(fields) > 0 {
		return Answers{}, errors.ValidationFailed(fields, details)
	}

	a := DefaultAnswers()
	data, err := json.Marshal(raw)
	if err != nil {
		return Answers{}, errors.Wrap(err, "failed to encode answers")
	}
	if err := json.Unmarshal(data, &a); err != nil {
		return Answers{}, errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "failed to decode answers"))
	}
	return a, nil
}
