package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs struct tag validation on any value, such as request inputs.
func ValidateStruct(v interface{}) error {
	return validate.Struct(v)
}
