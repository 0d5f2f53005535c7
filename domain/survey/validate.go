package survey

import (
	stderrors "errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"careerpath/internal/errors"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// choice=<encoding key> accepts only the labels of that encoding
		_ = v.RegisterValidation("choice", func(fl validator.FieldLevel) bool {
			enc, ok := Encodings[fl.Param()]
			if !ok {
				return false
			}
			_, ok = enc.Code(fl.Field().String())
			return ok
		})
		validate = v
	})
	return validate
}

func validateStruct(s interface{}) error {
	err := validatorInstance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return errors.Wrap(err, "validation could not run")
	}

	fields := make([]string, 0, len(verrs))
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		details = append(details, describe(fe))
	}
	return errors.ValidationFailed(fields, details)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min", "gte":
		return fmt.Sprintf("%s must be >= %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "max", "lte":
		return fmt.Sprintf("%s must be <= %s (got %v)", fe.Field(), fe.Param(), fe.Value())
	case "choice":
		enc := Encodings[fe.Param()]
		return fmt.Sprintf("%s must be one of %s (got %q)", fe.Field(), strings.Join(enc.Labels(), ", "), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
