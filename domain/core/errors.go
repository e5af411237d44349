package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound      = errors.New("resource not found")
	ErrSweepNotFound = fmt.Errorf("%w: sweep", ErrNotFound)

	// Estimation errors
	ErrInvalidArgument = errors.New("invalid argument")
	ErrSamplingFailure = errors.New("sampling failure")
	ErrFitFailure      = errors.New("model fit failure")
)

// Error constructors with context

// NewInvalidArgumentError reports a rejected input before any trial has run.
func NewInvalidArgumentError(field string, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidArgument, field, reason)
}

// NewTrialError attaches the scenario and trial index to a failure inside the
// trial loop. The sweep aborts on the first one; no partial estimates survive.
func NewTrialError(scenarioKey ScenarioKey, trialIndex int, cause error) error {
	return fmt.Errorf("scenario %s trial %d: %w", scenarioKey, trialIndex, cause)
}

// NewSamplingError marks a data-generating step that could not produce a
// usable synthetic sample.
func NewSamplingError(reason string) error {
	return fmt.Errorf("%w: %s", ErrSamplingFailure, reason)
}

// NewFitError marks a decision rule whose underlying model fit was singular
// or did not converge.
func NewFitError(reason string) error {
	return fmt.Errorf("%w: %s", ErrFitFailure, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

func IsSamplingFailure(err error) bool {
	return errors.Is(err, ErrSamplingFailure)
}

func IsFitFailure(err error) bool {
	return errors.Is(err, ErrFitFailure)
}
