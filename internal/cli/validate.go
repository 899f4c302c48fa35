package cli

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/cfkit-labs/cfkit/internal/errs"
	"github.com/cfkit-labs/cfkit/internal/project"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their flag name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("flag"); name != "" {
			return name
		}
		return f.Name
	})

	if err := v.RegisterValidation("pkgname", func(fl validator.FieldLevel) bool {
		return project.ValidatePackageName(fl.Field().String()) == nil
	}); err != nil {
		panic(err)
	}
	return v
}

// validateFlags checks a command's flag struct and reports every violation
// as one usage error.
func validateFlags(op string, flags any) error {
	err := validate.Struct(flags)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.Wrap(err, errs.KindInternal, op)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return errs.New(errs.KindUsage, op, "%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	if fe.StructField() != name {
		name = "--" + name
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "pkgname":
		return fmt.Sprintf("%s: %v", name, project.ValidatePackageName(fmt.Sprint(fe.Value())))
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", name, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a valid URL", name)
	default:
		return fmt.Sprintf("%s failed on %s validation", name, fe.Tag())
	}
}
