package utils

import "github.com/go-playground/validator/v10"

// Validator adapts go-playground/validator to Echo's Validator interface so
// handlers can call c.Validate after binding a request body.
type Validator struct{ v *validator.Validate }

// NewValidator returns a Validator with the default tag-based rules.
func NewValidator() *Validator { return &Validator{v: validator.New()} }

// Validate runs struct-tag validation on the bound request.
func (cv *Validator) Validate(i interface{}) error { return cv.v.Struct(i) }
