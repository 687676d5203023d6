// Package roles holds the static archetype table and resolves survey scores
// to a role.
package roles

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Band selects one of the six archetype roles.
type Band int

const (
	MinBand Band = 0
	MaxBand Band = 5

	// NumBands is the number of roles in a catalog.
	NumBands = int(MaxBand-MinBand) + 1

	// MaxScore is the largest value a single survey score may take.
	MaxScore = 5
)

var (
	ErrBandOutOfRange  = errors.New("band out of range")
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrMalformedField  = errors.New("malformed field")

	// errTooLarge marks integral values beyond int32; callers report them
	// with the original text and their own range error.
	errTooLarge = errors.New("value too large")
)

// Valid reports whether b indexes a catalog entry.
func (b Band) Valid() bool {
	return b >= MinBand && b <= MaxBand
}

func (b Band) String() string {
	return strconv.Itoa(int(b))
}

// ParseBand parses a band value read from a survey row.
func ParseBand(value string) (Band, error) {
	n, err := parseWhole("k_band", value)
	if errors.Is(err, errTooLarge) {
		return 0, fmt.Errorf("k_band %q: %w", value, ErrBandOutOfRange)
	}
	if err != nil {
		return 0, err
	}
	b := Band(n)
	if !b.Valid() {
		return 0, fmt.Errorf("k_band %d: %w", n, ErrBandOutOfRange)
	}
	return b, nil
}

// ParseScore parses one of the three survey scores. field is used in the
// error message only.
func ParseScore(field, value string) (int, error) {
	n, err := parseWhole(field, value)
	if errors.Is(err, errTooLarge) {
		return 0, fmt.Errorf("%s %q: %w", field, value, ErrScoreOutOfRange)
	}
	if err != nil {
		return 0, err
	}
	if n < 0 || n > MaxScore {
		return 0, fmt.Errorf("%s %d: %w", field, n, ErrScoreOutOfRange)
	}
	return n, nil
}

// parseWhole accepts "3" as well as sheet exports such as "3.0". Integral
// values outside the int32 range yield errTooLarge.
func parseWhole(field, value string) (int, error) {
	v := strings.TrimSpace(value)
	if n, err := strconv.ParseInt(v, 10, 32); err == nil {
		return int(n), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%s %q: %w", field, value, ErrMalformedField)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, errTooLarge
	}
	return int(f), nil
}
