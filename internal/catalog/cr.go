package catalog

import (
	"fmt"
	"math"
	"strconv"
)

// crToXP maps challenge rating to encounter XP.
var crToXP = map[float64]int{
	0: 10, 0.125: 25, 0.25: 50, 0.5: 100,
	1: 200, 2: 450, 3: 700, 4: 1100, 5: 1800,
	6: 2300, 7: 2900, 8: 3900, 9: 5000, 10: 5900,
	11: 7200, 12: 8400, 13: 10000, 14: 11500, 15: 13000,
	16: 15000, 17: 18000, 18: 20000, 19: 22000, 20: 25000,
	21: 33000, 22: 41000, 23: 50000, 24: 62000, 25: 75000,
	26: 90000, 27: 105000, 28: 120000, 29: 135000, 30: 155000,
}

// crToHPRatio is the typical hit point total at each challenge rating.
// Only ratios between entries are meaningful.
var crToHPRatio = map[float64]float64{
	0: 3.5, 0.125: 21, 0.25: 42.5, 0.5: 60,
	1: 78, 2: 93, 3: 108, 4: 123, 5: 138,
	6: 153, 7: 168, 8: 183, 9: 198, 10: 213,
	11: 228, 12: 243, 13: 258, 14: 273, 15: 288,
	16: 303, 17: 318, 18: 333, 19: 348, 20: 378,
	21: 423, 22: 468, 23: 513, 24: 558, 25: 603,
	26: 648, 27: 693, 28: 738, 29: 783, 30: 828,
}

// ValidCR reports whether cr is a challenge rating on the XP table.
func ValidCR(cr float64) bool {
	_, ok := crToXP[cr]
	return ok
}

// XPForCR returns the XP value of a challenge rating.
func XPForCR(cr float64) (int, error) {
	xp, ok := crToXP[cr]
	if !ok {
		return 0, fmt.Errorf("%w: CR %v", ErrUnknownCR, cr)
	}
	return xp, nil
}

// HPScale returns the factor that takes typical hit points at CR from to CR to.
func HPScale(from, to float64) (float64, error) {
	a, ok := crToHPRatio[from]
	if !ok {
		return 0, fmt.Errorf("%w: CR %v", ErrUnknownCR, from)
	}
	b, ok := crToHPRatio[to]
	if !ok {
		return 0, fmt.Errorf("%w: CR %v", ErrUnknownCR, to)
	}
	return b / a, nil
}

// FormatCR renders fractional ratings the way stat blocks do ("1/4").
func FormatCR(cr float64) string {
	switch cr {
	case 0.125:
		return "1/8"
	case 0.25:
		return "1/4"
	case 0.5:
		return "1/2"
	}
	if cr == math.Trunc(cr) {
		return strconv.Itoa(int(cr))
	}
	return strconv.FormatFloat(cr, 'g', -1, 64)
}

// ParseCR accepts "1/8", "1/4", "1/2" or a number.
func ParseCR(s string) (float64, error) {
	switch s {
	case "1/8":
		return 0.125, nil
	case "1/4":
		return 0.25, nil
	case "1/2":
		return 0.5, nil
	}
	cr, err := strconv.ParseFloat(s, 64)
	if err != nil || !ValidCR(cr) {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCR, s)
	}
	return cr, nil
}
