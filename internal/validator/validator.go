// Package validator collects field errors for a document before it is
// written. Struct tags are checked with go-playground/validator; ad-hoc
// rules can be added with Check.
package validator

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	playground "github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *playground.Validate {
	v := playground.New()
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validator holds a map of validation errors keyed by field name.
type Validator struct {
	Errors map[string]string
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid reports whether no errors were recorded.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError records message for key unless key already has an error.
func (v *Validator) AddError(key, message string) {
	if _, exists := v.Errors[key]; !exists {
		v.Errors[key] = message
	}
}

// Check records an error only if ok is false.
func (v *Validator) Check(ok bool, key, message string) {
	if !ok {
		v.AddError(key, message)
	}
}

// Struct checks the `validate` tags of s and records one error per failing field.
func (v *Validator) Struct(s any) {
	err := validate.Struct(s)
	if err == nil {
		return
	}
	fieldErrors, ok := err.(playground.ValidationErrors)
	if !ok {
		v.AddError("document", err.Error())
		return
	}
	for _, fe := range fieldErrors {
		v.AddError(fe.Field(), message(fe))
	}
}

// String renders the errors in key order, e.g. "author must be provided; title must be provided".
func (v *Validator) String() string {
	keys := make([]string, 0, len(v.Errors))
	for k := range v.Errors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + " " + v.Errors[k]
	}
	return strings.Join(parts, "; ")
}

func message(fe playground.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must be provided"
	case "min":
		if fe.Param() == "1" {
			return "must not be empty"
		}
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must not be more than %s characters long", fe.Param())
	default:
		return "is invalid"
	}
}
