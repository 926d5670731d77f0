package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperrors "cbxreport/internal/errors"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()

		// Register custom validators
		v.RegisterValidation("extension", isValidExtension)
		v.RegisterValidation("member", isValidMember)

		// Use YAML tag names in error messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})

		validate = v
	})
	return validate
}

// Validate checks the configuration and reports every invalid field at once.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.NewConfigError("invalid configuration", err)
	}

	messages := make([]string, 0, len(fieldErrs))
	fields := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, formatValidationError(fe))
		fields = append(fields, fieldPath(fe))
	}

	return apperrors.NewConfigError(strings.Join(messages, "; "), nil).
		WithContext("fields", fields)
}

// fieldPath strips the root type name from the namespace, e.g. "input.extension".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// formatValidationError formats validation error messages
func formatValidationError(fe validator.FieldError) string {
	field := fieldPath(fe)
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_unless":
		return fmt.Sprintf("%s is required unless %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "extension":
		return fmt.Sprintf("%s must be a file extension such as .CBX", field)
	case "member":
		return fmt.Sprintf("%s must be a relative archive entry name", field)
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// isValidExtension accepts ".CBX" or "CBX" but nothing with a path separator.
func isValidExtension(fl validator.FieldLevel) bool {
	ext := strings.TrimPrefix(fl.Field().String(), ".")
	if ext == "" || len(ext) > 16 {
		return false
	}
	return !strings.ContainsAny(ext, `./\`)
}

// isValidMember accepts archive entry names such as "TakeoffJob.xml" or
// "data/TakeoffJob.xml". Absolute names and traversal are rejected.
func isValidMember(fl validator.FieldLevel) bool {
	name := fl.Field().String()
	if name == "" || len(name) > 255 {
		return false
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") || strings.Contains(name, "\\") {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}
