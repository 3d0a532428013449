package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ConfigError is a construction-time validation failure. It is surfaced
// to the caller and never retried.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "config: " + e.Reason }

func configErr(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

func multipleLocationsErr(methods []string) *ConfigError {
	return configErr("multiple location methods provided: %s", strings.Join(methods, ", "))
}

// InvalidPlaceDataError means the place lookup succeeded but the
// response is missing its viewport, so no bounds can be derived.
type InvalidPlaceDataError struct {
	PlaceID string
}

func (e *InvalidPlaceDataError) Error() string {
	return fmt.Sprintf("invalid place data for placeId %q: viewport information is missing", e.PlaceID)
}

// GeocodeFailedError means the city could not be resolved to bounds.
type GeocodeFailedError struct {
	City        string
	CountryCode string
	Err         error
}

func (e *GeocodeFailedError) Error() string {
	return fmt.Sprintf("geocoding failed for %s, %s: %v", e.City, e.CountryCode, e.Err)
}

func (e *GeocodeFailedError) Unwrap() error { return e.Err }

// isCancelled distinguishes cooperative cancellation from real failures.
func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
