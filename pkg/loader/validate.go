package loader

import (
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/go-drift/weave/pkg/core"
	"github.com/go-drift/weave/pkg/options"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("component_name", func(fl validator.FieldLevel) bool {
		return core.ValidateComponentName(fl.Field().String()) == nil
	})
	_ = v.RegisterValidation("lifecycle_hook", func(fl validator.FieldLevel) bool {
		return slices.Contains(options.LifecycleHooks, fl.Field().String())
	})
	return v
}
