package inflation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"etbinflation/internal/domain"

	"github.com/go-playground/validator/v10"
)

type RequestValidator struct {
	validate *validator.Validate
}

func NewValidator() *RequestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// ValidateRequest reports ErrMissingParams when any field is absent, otherwise
// an InvalidParamError for the first out-of-range field.
func (v *RequestValidator) ValidateRequest(req domain.ConversionRequest) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidParams, err)
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return domain.ErrMissingParams
		}
	}

	fe := fieldErrs[0]
	switch fe.Field() {
	case "amountEtb":
		return &domain.InvalidParamError{Field: "amountEtb", Reason: "must be greater than 0"}
	case "month":
		return &domain.InvalidParamError{Field: "month", Reason: "must be between 1 and 12"}
	case "year":
		return &domain.InvalidParamError{Field: "year", Reason: "must be at least 1"}
	default:
		return &domain.InvalidParamError{Field: fe.Field(), Reason: "failed on " + fe.Tag()}
	}
}
