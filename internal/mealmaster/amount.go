package mealmaster

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gubarz/mmconv/internal/recipe"
)

var (
	decimalRe  = regexp.MustCompile(`^\d*\.\d*$`)
	mixedRe    = regexp.MustCompile(`^(\d+)\s+(\d+)/(\d+)$`)
	fractionRe = regexp.MustCompile(`^(\d+)/(\d+)$`)
	integerRe  = regexp.MustCompile(`^\d+$`)
)

// decodeAmount reads the amount column of an ingredient record. It reports
// false when the field holds something other than a quantity, which means the
// line is not an ingredient record at all.
func decodeAmount(field string) (recipe.Amount, bool) {
	f := strings.TrimSpace(field)
	switch {
	case f == "":
		return recipe.NoAmount(), true
	case strings.Contains(f, "."):
		if !decimalRe.MatchString(f) || f == "." {
			return recipe.Amount{}, false
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return recipe.Amount{}, false
		}
		return recipe.Decimal(v), true
	}

	if m := mixedRe.FindStringSubmatch(f); m != nil {
		whole, num, den, ok := atoi3(m[1], m[2], m[3])
		if !ok || den == 0 {
			return recipe.Amount{}, false
		}
		return recipe.Mixed(whole, num, den), true
	}
	if m := fractionRe.FindStringSubmatch(f); m != nil {
		num, den, _, ok := atoi3(m[1], m[2], "0")
		if !ok || den == 0 {
			return recipe.Amount{}, false
		}
		return recipe.Fraction(num, den), true
	}
	if integerRe.MatchString(f) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return recipe.Amount{}, false
		}
		return recipe.Integer(n), true
	}
	return recipe.Amount{}, false
}

func atoi3(a, b, c string) (int, int, int, bool) {
	x, err1 := strconv.Atoi(a)
	y, err2 := strconv.Atoi(b)
	z, err3 := strconv.Atoi(c)
	return x, y, z, err1 == nil && err2 == nil && err3 == nil
}
