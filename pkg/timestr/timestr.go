package timestr

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/itchyny/timefmt-go"
	"github.com/lestrrat-go/strftime"
)

const (
	// DefaultParseFormat accepts seconds with or without a fraction.
	DefaultParseFormat = "%Y-%m-%d %H:%M:%S.OPTFRAC"
	// DefaultFormat renders milliseconds.
	DefaultFormat = "%Y-%m-%d %H:%M:%S.3FRAC"
)

var fixedEndings = []string{".FRAC", ".1FRAC", ".2FRAC", ".3FRAC"}

// directives accepted in parse formats
var directives = map[byte]bool{
	'Y': true, 'y': true, 'm': true, 'd': true, 'j': true,
	'H': true, 'I': true, 'M': true, 'S': true, 'p': true,
	'b': true, 'B': true, 'a': true, 'A': true, 'F': true, 'T': true,
}

type fracFormats struct {
	re     *regexp.Regexp
	digits map[string]int
}

var fracTable = sync.OnceValue(func() *fracFormats {
	t := &fracFormats{
		re:     regexp.MustCompile(`\.[1-9]FRAC`),
		digits: make(map[string]int, 9),
	}
	for x := 1; x <= 9; x++ {
		t.digits[fmt.Sprintf(".%dFRAC", x)] = x
	}
	return t
})

func endsWithN(s string, endings []string) int {
	for i, e := range endings {
		if strings.HasSuffix(s, e) {
			return i
		}
	}
	return -1
}

// Parse converts a string representing UTC time into epoch seconds.
func Parse(s, format string) (float64, error) {
	orig, origFormat := s, format
	frac := 0.0

	if iend := endsWithN(format, fixedEndings); iend != -1 {
		dot := strings.LastIndexByte(s, '.')
		if dot == -1 {
			return 0, &TimeStrError{Input: orig, Format: origFormat, Err: ErrFractionalSecondsMissing}
		}
		if iend > 0 && iend != len(s)-dot-1 {
			return 0, &TimeStrError{Input: orig, Format: origFormat, Err: ErrFractionalSecondsWrongNumberOfDigits}
		}
		f, err := parseFrac(s[dot:])
		if err != nil {
			return 0, &TimeStrError{Input: orig, Format: origFormat, Err: err}
		}
		frac = f
		format = format[:len(format)-len(fixedEndings[iend])]
		s = s[:dot]
	} else if strings.HasSuffix(format, ".OPTFRAC") {
		format = strings.TrimSuffix(format, ".OPTFRAC")
		if dot := strings.LastIndexByte(s, '.'); dot != -1 {
			if len(s)-dot > 1 {
				f, err := parseFrac(s[dot:])
				if err != nil {
					return 0, &TimeStrError{Input: orig, Format: origFormat, Err: err}
				}
				frac = f
			}
			s = s[:dot]
		}
	}

	if err := checkFormat(format); err != nil {
		return 0, &TimeStrError{Input: s, Format: format, Err: err}
	}
	if strings.Count(s, ".") > strings.Count(format, ".") {
		return 0, &TimeStrError{Input: s, Format: format, Err: errors.New("unconverted data remains")}
	}
	t, err := timefmt.ParseInLocation(s, format, time.UTC)
	if err != nil {
		return 0, &TimeStrError{Input: s, Format: format, Err: err}
	}
	return float64(t.Unix()) + frac, nil
}

// ParseDefault parses s with DefaultParseFormat.
func ParseDefault(s string) (float64, error) {
	return Parse(s, DefaultParseFormat)
}

// parseFrac parses ".123" into 0.123.
func parseFrac(s string) (float64, error) {
	digits := s[1:]
	if digits == "" {
		return 0, fmt.Errorf("empty fractional seconds %q", s)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, fmt.Errorf("invalid fractional seconds %q", s)
		}
	}
	return strconv.ParseFloat("0."+digits, 64)
}

// checkFormat rejects directives the parser does not support.
func checkFormat(format string) error {
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			continue
		}
		i++
		if i == len(format) {
			return errors.New("dangling % at end of format")
		}
		if c := format[i]; c != '%' && !directives[c] {
			return fmt.Errorf("unsupported directive %%%c", c)
		}
	}
	return nil
}

// Format renders epoch seconds t as a UTC time string.
func Format(t float64, format string) (string, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return "", &TimeStrError{Input: strconv.FormatFloat(t, 'g', -1, 64), Format: format, Err: fmt.Errorf("not a finite time")}
	}
	ts := math.Floor(t)
	tfrac := t - ts

	ft := fracTable()
	if loc := ft.re.FindStringIndex(format); loc != nil {
		digits := ft.digits[format[loc[0]:loc[1]]]
		sfrac := strconv.FormatFloat(tfrac, 'f', digits, 64)
		if sfrac[0] == '1' {
			ts++
		}
		format = format[:loc[0]] + sfrac[1:] + format[loc[1]:]
	}

	s, err := strftime.Format(format, time.Unix(int64(ts), 0).UTC())
	if err != nil {
		return "", &TimeStrError{Input: strconv.FormatFloat(t, 'f', -1, 64), Format: format, Err: err}
	}
	return s, nil
}

// FormatDefault renders t with DefaultFormat.
func FormatDefault(t float64) (string, error) {
	return Format(t, DefaultFormat)
}

// FormatDigits renders t as "%Y-%m-%d %H:%M:%S" with the given number of
// fractional digits; digits <= 0 omits the fraction.
func FormatDigits(t float64, digits int) (string, error) {
	if digits > 9 {
		digits = 9
	}
	if digits > 0 {
		return Format(t, fmt.Sprintf("%%Y-%%m-%%d %%H:%%M:%%S.%dFRAC", digits))
	}
	return Format(t, "%Y-%m-%d %H:%M:%S")
}
