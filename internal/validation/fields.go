package validation

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Report fields by their json name so messages match the stored keys
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// FieldError describes one struct field that failed its validation tag.
type FieldError struct {
	Field string // json name, dotted for nested structs
	Tag   string // failing rule, e.g. "required" or "email"
}

// CheckStruct validates s against its `validate` tags.
func CheckStruct(s interface{}) ([]FieldError, error) {
	err := structValidator().Struct(s)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fieldPath(fe.Namespace()), Tag: fe.Tag()})
	}
	return out, nil
}

// MissingFields returns the json names of fields that are absent or empty
// according to their required/min rules. Other rule failures are ignored.
func MissingFields(s interface{}) ([]string, error) {
	errs, err := CheckStruct(s)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, fe := range errs {
		if fe.Tag == "required" || fe.Tag == "min" {
			missing = append(missing, fe.Field)
		}
	}
	return missing, nil
}

// fieldPath drops the root struct name from a validator namespace
// ("AppointmentDraft.patient_id" -> "patient_id").
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
