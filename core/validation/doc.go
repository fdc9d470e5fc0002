// Package validation wraps go-playground/validator for request and model input.
//
// Field names in messages come from json tags. The extra "notblank" rule rejects
// whitespace-only strings.
package validation
