package rain

import (
	"errors"
	"fmt"
)

// ErrParameterBounds indicates a parameter value is outside its valid range.
var ErrParameterBounds = errors.New("rain: parameter out of valid bounds")

// ParamError wraps an error with the name of the offending parameter.
type ParamError struct {
	Field   string
	Value   float64
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s (%s = %g)", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}

func boundsError(field string, value float64) error {
	return &ParamError{Field: field, Value: value, Wrapped: ErrParameterBounds}
}
