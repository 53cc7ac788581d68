package cmd

import "github.com/go-playground/validator/v10"

// Payloads are validated before the request leaves the machine; the
// backend validates again on its side.
var validate = validator.New()
