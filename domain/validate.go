package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "required" accepts whitespace-only strings; an Updates.xml entry needs
	// a real identifier, so Name carries a notblank rule instead.
	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		panic(err)
	}
	return v
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// ValidatePackageUpdate checks the required fields of a parsed entry. A
// missing or whitespace-only Name fails with MISSING_NAME; an entry without
// an identifier makes the whole document untrustworthy.
func ValidatePackageUpdate(pkg *PackageUpdate) error {
	err := validate.Struct(pkg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Name" {
				return NewMetaErrorWithCause(ErrMissingName, "package entry has no Name", "", err)
			}
		}
	}
	return NewMetaErrorWithCause(ErrMissingName, "package entry failed validation", pkg.Name, err)
}
