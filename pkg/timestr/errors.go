package timestr

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeStr is the root of every time string failure.
	ErrTimeStr = errors.New("time string error")

	// ErrFractionalSecondsMissing is reported when the format demands fractional
	// seconds and the input has none.
	ErrFractionalSecondsMissing = fmt.Errorf("%w: fractional seconds missing", ErrTimeStr)

	// ErrFractionalSecondsWrongNumberOfDigits is reported when the format fixes the
	// number of fractional digits and the input disagrees.
	ErrFractionalSecondsWrongNumberOfDigits = fmt.Errorf("%w: wrong number of digits in fractional seconds", ErrTimeStr)
)

// TimeStrError carries the offending input and format along with the cause.
type TimeStrError struct {
	Input  string
	Format string
	Err    error
}

func (e *TimeStrError) Error() string {
	return fmt.Sprintf("%v, string=%s, format=%s", e.Err, e.Input, e.Format)
}

func (e *TimeStrError) Unwrap() error { return e.Err }

// Is reports every TimeStrError as an ErrTimeStr, whatever the underlying cause.
func (e *TimeStrError) Is(target error) bool { return target == ErrTimeStr }
