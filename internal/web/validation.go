package web

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var subredditPattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,21}$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("subreddit", func(fl validator.FieldLevel) bool {
			return subredditPattern.MatchString(fl.Field().String())
		})
	}
}

// ValidationErrors maps a form field name to a human readable message.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for field, msg := range v {
		parts = append(parts, field+" "+msg)
	}
	return strings.Join(parts, "; ")
}

type normalizer interface {
	Normalize()
}

// bindInput decodes the form or JSON body into in, normalizes it and
// validates the normalized values.
func bindInput(c *gin.Context, in normalizer) ValidationErrors {
	if err := c.ShouldBind(in); err != nil {
		return toValidationErrors(err)
	}
	in.Normalize()
	if err := binding.Validator.ValidateStruct(in); err != nil {
		return toValidationErrors(err)
	}
	return nil
}

func toValidationErrors(err error) ValidationErrors {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationErrors{"form": "could not be read"}
	}

	out := make(ValidationErrors, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[strings.ToLower(fe.Field())] = message(fe)
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "subreddit":
		return "may contain only letters, digits and underscores (up to 21)"
	default:
		return "is invalid"
	}
}
