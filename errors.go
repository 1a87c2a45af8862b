package relative

import (
	"errors"
	"fmt"
)

// ErrMissingTemplate indicates a unit has no usable phrase for the active tense mode.
var ErrMissingTemplate = errors.New("relative: missing template")

// ErrMissingParameter indicates a Params input without a numeric value under the plural key.
var ErrMissingParameter = errors.New("relative: missing parameter")

// ErrOutOfRange indicates a difference whose magnitude does not fit in an int64
var ErrOutOfRange = errors.New("relative: difference out of range")

// ErrInvalidLimits rejects bucket lists that cannot cover every duration
var ErrInvalidLimits = errors.New("relative: invalid limits")

// MissingTemplateError names the unit and locale that failed compilation
type MissingTemplateError struct {
	Unit   Unit
	Locale string
}

func (e *MissingTemplateError) Error() string {
	return fmt.Sprintf("relative: missing %q for %q", e.Unit.Label(), e.Locale)
}

func (e *MissingTemplateError) Unwrap() error {
	return ErrMissingTemplate
}
