package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fortio.org/safecast"
	"github.com/aretw0/guts/pkg/timestr"
	"github.com/spf13/cast"
)

// checkScalar validates v against a scalar type. In regularizing mode the
// coercion table of the type is consulted when v is not already canonical.
func checkScalar(v any, t Type, regularize bool) (any, error) {
	switch tt := t.(type) {
	case *BoolType:
		if b, ok := v.(bool); ok {
			return b, nil
		}
		if regularize {
			return toBool(v)
		}
		return nil, mismatch("bool", v)

	case *IntType:
		if i, ok := v.(int64); ok {
			return i, nil
		}
		if regularize {
			return toInt(v)
		}
		return nil, mismatch("int", v)

	case *FloatType:
		if f, ok := v.(float64); ok {
			return f, nil
		}
		if regularize {
			return toFloat(v)
		}
		return nil, mismatch("float", v)

	case *ComplexType:
		if c, ok := v.(complex128); ok {
			return c, nil
		}
		if regularize {
			return toComplex(v)
		}
		return nil, mismatch("complex", v)

	case *TimestampType:
		if f, ok := v.(float64); ok {
			return f, nil
		}
		if regularize {
			return toTimestamp(v)
		}
		return nil, mismatch("timestamp", v)

	case *StringType:
		return stringValue(v, regularize)

	case *PatternType:
		s, err := stringValue(v, regularize)
		if err != nil {
			return nil, err
		}
		if !tt.re.MatchString(s.(string)) {
			return nil, fmt.Errorf("%q does not match pattern %q", s, tt.pattern)
		}
		return s, nil

	case *ChoiceType:
		s, err := stringValue(v, regularize)
		if err != nil {
			return nil, err
		}
		str := s.(string)
		for _, c := range tt.choices {
			if str == c {
				return c, nil
			}
		}
		if regularize && tt.ignoreCase {
			for _, c := range tt.choices {
				if strings.EqualFold(str, c) {
					return c, nil
				}
			}
		}
		return nil, fmt.Errorf("%q is not one of [%s]", str, strings.Join(tt.choices, ", "))
	}
	return nil, fmt.Errorf("unsupported type %s", t.Name())
}

func mismatch(want string, v any) error {
	if v == nil {
		return fmt.Errorf("expected %s, got nothing", want)
	}
	return fmt.Errorf("expected %s", want)
}

// Bool: integers and floats by non-zero value; "0" and "false" (any case)
// and the empty string are false, other strings true.
func toBool(v any) (any, error) {
	switch x := v.(type) {
	case int64:
		return x != 0, nil
	case float64:
		return x != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(x)) {
		case "0", "false":
			return false, nil
		}
		return x != "", nil
	}
	return nil, mismatch("bool", v)
}

// Int: decimal strings; floats truncated toward zero.
func toInt(v any) (any, error) {
	switch x := v.(type) {
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to int", x)
		}
		return i, nil
	case float64:
		i, err := safecast.Truncate[int64](x)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %v to int: %v", x, err)
		}
		return i, nil
	}
	return nil, mismatch("int", v)
}

// Float: numeric strings (including inf and nan) and integers.
func toFloat(v any) (any, error) {
	switch x := v.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to float", x)
		}
		return f, nil
	case int64:
		return cast.ToFloat64E(x)
	}
	return nil, mismatch("float", v)
}

// Complex: strings in Go or Python notation, integers and floats.
func toComplex(v any) (any, error) {
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if strings.HasSuffix(s, "j") || strings.HasSuffix(s, "j)") {
			s = strings.Replace(s, "j", "i", 1)
		}
		c, err := strconv.ParseComplex(s, 128)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to complex", x)
		}
		return c, nil
	case int64:
		return complex(float64(x), 0), nil
	case float64:
		return complex(x, 0), nil
	}
	return nil, mismatch("complex", v)
}

// String: scalars by their textual form.
func stringValue(v any, regularize bool) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	if !regularize {
		return nil, mismatch("string", v)
	}
	switch x := v.(type) {
	case float64:
		return FormatFloat(x), nil
	case complex128:
		return FormatComplex(x), nil
	case bool, int64:
		return cast.ToStringE(x)
	}
	return nil, mismatch("string", v)
}

var (
	reTimeZone = regexp.MustCompile(`(Z|([+-][0-2][0-9])(:?([0-5][0-9]))?)$`)
	reDateOnly = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
)

// Timestamp: integers, time.Time, and strings "YYYY-MM-DD[ T]HH:MM:SS[.frac]"
// with an optional "Z" or "+HH[:MM]" suffix, or a bare date.
func toTimestamp(v any) (any, error) {
	switch x := v.(type) {
	case int64:
		return float64(x), nil
	case time.Time:
		return float64(x.Unix()) + float64(x.Nanosecond())/1e9, nil
	case string:
		return ParseTimestamp(x)
	}
	return nil, mismatch("timestamp", v)
}

// ParseTimestamp parses the textual timestamp forms accepted by regularization.
func ParseTimestamp(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if reDateOnly.MatchString(s) {
		return timestr.Parse(s, "%Y-%m-%d")
	}
	if len(s) < 11 || (s[10] != ' ' && s[10] != 'T') {
		return 0, fmt.Errorf("cannot convert %q to timestamp", s)
	}
	date, clock := s[:10], s[11:]

	offset := 0.0
	if m := reTimeZone.FindStringSubmatchIndex(clock); m != nil {
		if m[4] != -1 {
			hours, _ := strconv.Atoi(clock[m[4]:m[5]])
			minutes := 0
			if m[8] != -1 {
				minutes, _ = strconv.Atoi(clock[m[8]:m[9]])
			}
			sign := 1.0
			if clock[m[4]] == '-' {
				sign = -1.0
			}
			offset = sign * float64(hours*3600+minutes*60)
		}
		clock = clock[:m[0]]
	}

	t, err := timestr.Parse(date+" "+clock, timestr.DefaultParseFormat)
	if err != nil {
		return 0, err
	}
	return t - offset, nil
}

// FormatFloat renders f the way the codecs write floats: always with a
// decimal point or exponent, and "inf", "-inf", "nan" for special values.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// FormatComplex renders c as "(re+imi)".
func FormatComplex(c complex128) string {
	return strconv.FormatComplex(c, 'g', -1, 128)
}
