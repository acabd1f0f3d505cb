package domain

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// GoalMapping maps a lowercase coin identifier to the target price text the
// user entered. Values are kept verbatim.
type GoalMapping map[string]string

type GoalStatus string

const (
	GoalNone    GoalStatus = "none"
	GoalBelow   GoalStatus = "below"
	GoalReached GoalStatus = "reached"
)

// ParsePriceText recovers a number from user or display text such as
// "€ 40.000,00", "$40,000.00" or "50000". Currency symbols and spaces are
// dropped; when both separators occur the last one is the decimal mark, a
// single separator followed by exactly three digits is a thousands mark.
func ParsePriceText(s string) (decimal.Decimal, error) {
	var b strings.Builder
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
			b.WriteRune(r)
		case r == '.' || r == ',':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	if digits == 0 {
		return decimal.Zero, ErrInvalidPrice
	}
	num := b.String()

	lastDot := strings.LastIndexByte(num, '.')
	lastComma := strings.LastIndexByte(num, ',')
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			num = strings.ReplaceAll(num, ".", "")
			num = strings.Replace(num, ",", ".", 1)
		} else {
			num = strings.ReplaceAll(num, ",", "")
		}
	case lastDot >= 0:
		num = normalizeSingleSeparator(num, ".")
	case lastComma >= 0:
		num = normalizeSingleSeparator(num, ",")
	}

	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, ErrInvalidPrice
	}
	return d, nil
}

func normalizeSingleSeparator(num, sep string) string {
	if strings.Count(num, sep) > 1 {
		return strings.ReplaceAll(num, sep, "")
	}
	i := strings.Index(num, sep)
	intPart := strings.TrimPrefix(num[:i], "-")
	frac := num[i+1:]
	if len(frac) == 3 && intPart != "" && strings.Trim(intPart, "0") != "" {
		return strings.Replace(num, sep, "", 1)
	}
	return strings.Replace(num, sep, ".", 1)
}

// CompareGoal classifies the current price against a stored goal. A goal
// that cannot be parsed yields GoalNone.
func CompareGoal(current float64, goalText string) GoalStatus {
	if strings.TrimSpace(goalText) == "" {
		return GoalNone
	}
	goal, err := ParsePriceText(goalText)
	if err != nil {
		return GoalNone
	}
	if decimal.NewFromFloat(current).LessThan(goal) {
		return GoalBelow
	}
	return GoalReached
}
