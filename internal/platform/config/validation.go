package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate reports every invalid field at once. The service refuses to
// start on any of them.
func (c *Config) Validate() error {
	var problems []error

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return err
		}

		for _, fe := range fieldErrs {
			problems = append(problems, errors.New(describe(fe)))
		}
	}

	if c.Session.Secret == DefaultSessionSecret && !developmentEnvironment(c.App.Environment) {
		problems = append(problems, fmt.Errorf("session.secret must be set in the %s environment", c.App.Environment))
	}

	if len(problems) == 0 {
		return nil
	}

	return fmt.Errorf("config validation failed:\n%w", errors.Join(problems...))
}

func developmentEnvironment(env string) bool {
	return env == "local" || env == "test"
}

func describe(fe validator.FieldError) string {
	field := formatFieldPath(fe.Namespace())
	p := fe.Param()

	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_if":
		return field + " is required when " + p
	case "min":
		return field + " must be at least " + p
	case "max":
		return field + " must be at most " + p
	case "oneof":
		return field + " must be one of: " + p
	case "ltefield":
		return field + " must not exceed " + strings.ToLower(p)
	case "url":
		return field + " must be a valid URL"
	default:
		return field + " failed validation: " + fe.Tag()
	}
}

// formatFieldPath turns "Config.Client.Retry.MaxAttempts" into
// "client.retry.maxattempts".
func formatFieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		namespace = rest
	}

	return strings.ToLower(namespace)
}
