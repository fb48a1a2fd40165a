package score

import (
	"errors"
	"fmt"
)

// ErrUnrecoverable is wrapped by every error that prevents a risk
// calculation.  Retrying with the same input always fails the same way.
var ErrUnrecoverable = errors.New("input cannot be used for risk calculation")

// UnknownCoefficientKeyError indicates that no coefficients exist for the
// requested risk category and sex.
type UnknownCoefficientKeyError struct {
	Outcome Outcome
	Key     CoefficientKey
}

func (e *UnknownCoefficientKeyError) Error() string {
	return fmt.Sprintf("unknown %s coefficient key: risk %q, sex %q", e.Outcome, e.Key.Category, e.Key.Sex)
}

func (e *UnknownCoefficientKeyError) Unwrap() error { return ErrUnrecoverable }

// RangeError indicates a numeric input outside the modelled domain that
// normalization could not correct.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %v outside modelled range %v to %v", e.Field, e.Value, e.Min, e.Max)
}

func (e *RangeError) Unwrap() error { return ErrUnrecoverable }

// InvalidInputError indicates a value outside an enumerated domain.
type InvalidInputError struct {
	Field string
	Value interface{}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Value)
}

func (e *InvalidInputError) Unwrap() error { return ErrUnrecoverable }
