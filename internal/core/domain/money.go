package domain

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Money is an amount in minor units (cents). It travels over JSON as a
// decimal number with at most two fractional digits.
type Money int64

// MaxMoney is the largest amount ParseMoney accepts: 999,999,999,999.99.
// Sums of accepted amounts stay far below the int64 range.
const MaxMoney Money = 99_999_999_999_999

// ErrInvalidMoney is wrapped by every ParseMoney failure.
var ErrInvalidMoney = NewError(ErrValidation, "invalid amount")

// String renders m with exactly two fractional digits.
func (m Money) String() string {
	sign := ""
	v := uint64(m)
	if m < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Float returns m in major units. Only for display and ratios.
func (m Money) Float() float64 {
	return float64(m) / 100
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	v, err := ParseMoney(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseMoney parses a decimal string such as "40", "40.5", "-3" or "40.00".
// Only ASCII digits are allowed around the point, with an optional single
// leading sign, and the magnitude may not exceed MaxMoney.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	raw := s
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	whole, frac, hasPoint := strings.Cut(s, ".")
	switch {
	case !isDigits(whole):
		return 0, invalidMoney(raw, "is not a decimal amount")
	case hasPoint && !isDigits(frac):
		return 0, invalidMoney(raw, "is not a decimal amount")
	case len(frac) > 2:
		return 0, invalidMoney(raw, "has more than two decimal places")
	}
	for len(frac) < 2 {
		frac += "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || w > int64(MaxMoney/100) {
		return 0, invalidMoney(raw, "exceeds the maximum of "+MaxMoney.String())
	}
	f, _ := strconv.ParseInt(frac, 10, 64)
	v := Money(w*100 + f)
	if v > MaxMoney {
		return 0, invalidMoney(raw, "exceeds the maximum of "+MaxMoney.String())
	}
	if neg {
		v = -v
	}
	return v, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func invalidMoney(s, reason string) error {
	return fmt.Errorf("%w: %q %s", ErrInvalidMoney, s, reason)
}
