/*
Package timestr converts between UTC time strings and floating point epoch seconds.

Formats use strptime/strftime directives (%Y, %m, %d, %H, %M, %S, ...) and may end
with a fractional seconds suffix:

	.FRAC     anything after the last dot is fractional seconds (mandatory)
	.1FRAC    exactly one fractional digit (also .2FRAC, .3FRAC)
	.OPTFRAC  fractional part including the dot is optional

When formatting, ".xFRAC" (x = 1..9) is replaced with the fractional part of the
timestamp rounded to x digits. A rounding carry increments the seconds.

	t, err := timestr.Parse("2010-01-01 10:20:01.11", "%Y-%m-%d %H:%M:%S.OPTFRAC")
	s, err := timestr.FormatDigits(t, 3) // "2010-01-01 10:20:01.110"
*/
package timestr
