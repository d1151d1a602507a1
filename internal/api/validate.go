package api

import "github.com/go-playground/validator/v10"

var validate = validator.New()

// Validate checks a request payload's validate tags. The view layer runs
// it before dispatching a mutation so obviously malformed forms never
// reach the wire; the remote still revalidates everything.
func Validate(payload any) error {
	return validate.Struct(payload)
}
