package validation

import (
	"reflect"
	"strings"

	"talenthub/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError is one violated constraint on one field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Pakai tag `binding` yang sama dengan DTO gin, dan nama field dari tag json.
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Struct validates v against its `binding` tags and reports EVERY violated
// field at once, not just the first. Callers get the full list so a client
// can render all errors in a single pass. Pure function, no I/O.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// InvalidValidationError (nil pointer dsb) — bukan salah input user.
		return apperror.Wrap(err, apperror.CodeInternal, "could not validate input", 500)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:  fe.Field(),
			Reason: reasonFor(fe),
		})
	}
	return apperror.ErrValidation.WithDetails(fields)
}

func reasonFor(fe validator.FieldError) string {
	human := formatFieldName(fe.Field())
	switch fe.Tag() {
	case "required":
		return human + " is required"
	case "uuid":
		return human + " must be a valid id"
	case "email":
		return human + " must be a valid email address"
	case "oneof":
		return human + " must be one of: " + fe.Param()
	case "min":
		return human + " must be at least " + fe.Param()
	case "max":
		return human + " must be at most " + fe.Param()
	case "gt":
		return human + " must be greater than " + fe.Param()
	case "gte":
		return human + " must be at least " + fe.Param()
	default:
		return human + " is invalid"
	}
}

func formatFieldName(s string) string {
	// job_posting_id -> Job Posting Id
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}
