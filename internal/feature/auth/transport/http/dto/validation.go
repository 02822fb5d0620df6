package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// usernamePattern is the allowed shape for login names: letters, digits
// and underscores, 3 to 32 characters.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{3,32}$`)

// RegisterValidators installs the custom binding tags on Gin's validator
// engine. Call once at startup before routes are served.
func RegisterValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})
}
