// Package validation registers the crew member rules on a validator engine so
// that request binding and merged-record checks share one rule set.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"spacecrew/internal/domain"
	"spacecrew/internal/domain/models"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/shopspring/decimal"
)

// SalaryTag is reported when a salary does not fit DECIMAL(19,2).
const SalaryTag = "crewsalary"

const (
	salaryScale         = 2
	salaryIntegerDigits = 17
)

var salaryLimit = decimal.New(1, salaryIntegerDigits)

// Register adds the crewstatus/crewrole/notblank tags, the salary precision
// check on CrewMember and teaches the engine to compare decimal.Decimal
// values numerically.
func Register(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		ReportSalary(sl, sl.Current().Interface().(models.CrewMember).Salary)
	}, models.CrewMember{})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return err
	}
	if err := v.RegisterValidation("crewstatus", func(fl validator.FieldLevel) bool {
		return models.CrewMemberStatus(fl.Field().String()).Valid()
	}); err != nil {
		return err
	}
	return v.RegisterValidation("crewrole", func(fl validator.FieldLevel) bool {
		return models.CrewMemberRole(fl.Field().String()).Valid()
	})
}

// SalaryFits reports whether d has at most two decimal places and at most
// seventeen integer digits.
func SalaryFits(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(salaryScale)) && d.Abs().LessThan(salaryLimit)
}

// ReportSalary records a crewsalary failure on the salary field of the struct
// being validated.
func ReportSalary(sl validator.StructLevel, d decimal.Decimal) {
	if !SalaryFits(d) {
		sl.ReportError(d, "salary", "Salary", SalaryTag, "")
	}
}

// New returns an engine reading `validate` tags with the crew rules installed.
func New() *validator.Validate {
	v := validator.New()
	if err := Register(v); err != nil {
		panic(err)
	}
	return v
}

// ToDomain converts validator failures into a ValidationError naming the
// first offending field. Other errors are returned unchanged.
func ToDomain(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return domain.ValidationError{Field: fe.Field(), Msg: describe(fe), Err: err}
}

// Details lists every failed field as field -> message.
func Details(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "notblank":
		return "must not be blank"
	case SalaryTag:
		return fmt.Sprintf("must have at most %d integer digits and %d decimal places", salaryIntegerDigits, salaryScale)
	case "crewstatus":
		return "must be one of " + strings.Join(models.StatusNames(), ", ")
	case "crewrole":
		return "must be one of " + strings.Join(models.RoleNames(), ", ")
	default:
		return "failed " + fe.Tag()
	}
}

func decimalValue(field reflect.Value) any {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
