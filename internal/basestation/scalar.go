package basestation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Wire layouts of the date and time columns
const (
	DateLayout      = "2006/01/02"
	TimeLayout      = "15:04:05.000"
	timeWholeLayout = "15:04:05"
)

var (
	errBoolVocabulary = errors.New("not a recognized boolean")
	errHexFloat       = errors.New("hexadecimal notation not allowed")
)

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, numError(err)
	}
	return v, nil
}

// parseFloat reads a decimal number. strconv also takes hex floats such as
// 0x1p4; those are rejected.
func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if digits := strings.TrimLeft(s, "+-"); len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		return 0, errHexFloat
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, numError(err)
	}
	return v, nil
}

// numError strips the strconv prefix; the DecodeError already names the
// column and raw value.
func numError(err error) error {
	var ne *strconv.NumError
	if errors.As(err, &ne) {
		return ne.Err
	}
	return err
}

// parseBool accepts true,y,yes,on,1 and false,n,no,off,0 in any case.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "y", "yes", "on", "1":
		return true, nil
	case "false", "n", "no", "off", "0":
		return false, nil
	}
	return false, errBoolVocabulary
}

// parseDate reads a YYYY/MM/DD column as midnight UTC.
func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, errors.New("expected YYYY/MM/DD")
	}
	return d, nil
}

// parseClock returns the offset from midnight of an HH:MM:SS.fff time. The
// part after the last dot is read as decimal seconds and kept at
// microsecond resolution. Any number of fraction digits is accepted, not
// only the three that Encode writes.
func parseClock(s string) (time.Duration, error) {
	dot := strings.LastIndexByte(s, '.')
	if dot < 0 {
		return 0, errors.New("missing fractional seconds")
	}
	whole, frac := s[:dot], s[dot+1:]

	// time.Parse would take a trailing fraction on the seconds as well.
	if strings.ContainsRune(whole, '.') {
		return 0, errors.New("expected HH:MM:SS")
	}
	t, err := time.Parse(timeWholeLayout, whole)
	if err != nil {
		return 0, errors.New("expected HH:MM:SS")
	}
	if frac == "" || strings.TrimLeft(frac, "0123456789") != "" {
		return 0, fmt.Errorf("invalid fractional seconds %q", frac)
	}
	seconds, err := strconv.ParseFloat("0."+frac, 64)
	if err != nil {
		return 0, numError(err)
	}
	usec := time.Duration(math.Round(seconds * 1e6))
	if usec >= 1e6 {
		usec = 1e6 - 1
	}

	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		usec*time.Microsecond, nil
}

func appendInt(dst []byte, v *int) []byte {
	if v == nil {
		return dst
	}
	return strconv.AppendInt(dst, int64(*v), 10)
}

func appendFloat(dst []byte, v *float64) []byte {
	if v == nil {
		return dst
	}
	return strconv.AppendFloat(dst, *v, 'f', -1, 64)
}

// appendCoordinate writes five decimals, correctly rounded from the binary
// value with exact ties going to the even digit (0.015625 -> 0.01562).
func appendCoordinate(dst []byte, v *float64) []byte {
	if v == nil {
		return dst
	}
	return strconv.AppendFloat(dst, *v, 'f', 5, 64)
}

func appendBool(dst []byte, v *bool) []byte {
	if v == nil {
		return dst
	}
	if *v {
		return append(dst, '1')
	}
	return append(dst, '0')
}

func appendString(dst []byte, v *string) []byte {
	if v == nil {
		return dst
	}
	return append(dst, *v...)
}

// appendTimestamp writes the date and time columns. Milliseconds are
// truncated, and an absent timestamp still yields its separating comma.
func appendTimestamp(dst []byte, v *time.Time) []byte {
	if v == nil {
		return append(dst, ',')
	}
	dst = v.AppendFormat(dst, DateLayout)
	dst = append(dst, ',')
	return v.AppendFormat(dst, TimeLayout)
}
