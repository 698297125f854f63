package recipe

import (
	"fmt"
	"strconv"
	"strings"
)

// AmountKind enumerates the representations an ingredient quantity can take.
type AmountKind int

const (
	// AmountNone means the ingredient has no quantity.
	AmountNone AmountKind = iota
	// AmountInteger is a whole number such as 250.
	AmountInteger
	// AmountFraction is a proper or improper fraction such as 2/3.
	AmountFraction
	// AmountMixed is a whole number plus a fraction such as 1 2/3.
	AmountMixed
	// AmountDecimal is a decimal number such as 2.5.
	AmountDecimal
)

var amountKindNames = map[AmountKind]string{
	AmountNone:     "none",
	AmountInteger:  "integer",
	AmountFraction: "fraction",
	AmountMixed:    "mixed",
	AmountDecimal:  "decimal",
}

func (k AmountKind) String() string {
	if s, ok := amountKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("AmountKind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k AmountKind) MarshalText() ([]byte, error) {
	s, ok := amountKindNames[k]
	if !ok {
		return nil, fmt.Errorf("invalid amount kind %d", int(k))
	}
	return []byte(s), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *AmountKind) UnmarshalText(text []byte) error {
	for kind, name := range amountKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown amount kind %q", string(text))
}

// Amount is an ingredient quantity. Only the fields belonging to Kind are
// populated; build values with the constructors so that every populated
// field is strictly positive.
type Amount struct {
	Kind        AmountKind `json:"kind" yaml:"kind"`
	Whole       int        `json:"whole,omitempty" yaml:"whole,omitempty"`
	Numerator   int        `json:"numerator,omitempty" yaml:"numerator,omitempty"`
	Denominator int        `json:"denominator,omitempty" yaml:"denominator,omitempty"`
	Value       float64    `json:"value,omitempty" yaml:"value,omitempty"`
}

// NoAmount returns the empty quantity.
func NoAmount() Amount {
	return Amount{}
}

// Integer returns a whole-number quantity. Non-positive values yield NoAmount.
func Integer(n int) Amount {
	if n <= 0 {
		return NoAmount()
	}
	return Amount{Kind: AmountInteger, Whole: n}
}

// Fraction returns num/den. Non-positive parts yield NoAmount.
func Fraction(num, den int) Amount {
	if num <= 0 || den <= 0 {
		return NoAmount()
	}
	return Amount{Kind: AmountFraction, Numerator: num, Denominator: den}
}

// Mixed returns whole num/den, degrading to Fraction or Integer when one
// side is missing.
func Mixed(whole, num, den int) Amount {
	switch {
	case whole <= 0:
		return Fraction(num, den)
	case num <= 0 || den <= 0:
		return Integer(whole)
	}
	return Amount{Kind: AmountMixed, Whole: whole, Numerator: num, Denominator: den}
}

// Decimal returns a decimal quantity. Non-positive values yield NoAmount.
func Decimal(v float64) Amount {
	if !(v > 0) {
		return NoAmount()
	}
	return Amount{Kind: AmountDecimal, Value: v}
}

// IsZero reports whether the amount carries no quantity.
func (a Amount) IsZero() bool {
	return a.Kind == AmountNone
}

// String renders the amount the way MealMaster writes it: "250", "2/3",
// "1 2/3", "2.5" or "" for no amount. Decimals always carry a point so
// that they read back as decimals.
func (a Amount) String() string {
	switch a.Kind {
	case AmountNone:
		return ""
	case AmountInteger:
		return strconv.Itoa(a.Whole)
	case AmountFraction:
		return fmt.Sprintf("%d/%d", a.Numerator, a.Denominator)
	case AmountMixed:
		return fmt.Sprintf("%d %d/%d", a.Whole, a.Numerator, a.Denominator)
	case AmountDecimal:
		s := strconv.FormatFloat(a.Value, 'g', 6, 64)
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
		return s
	default:
		return ""
	}
}

// Float returns the quantity as a floating point number, 0 for no amount.
func (a Amount) Float() float64 {
	switch a.Kind {
	case AmountNone:
		return 0
	case AmountInteger:
		return float64(a.Whole)
	case AmountFraction:
		return float64(a.Numerator) / float64(a.Denominator)
	case AmountMixed:
		return float64(a.Whole) + float64(a.Numerator)/float64(a.Denominator)
	case AmountDecimal:
		return a.Value
	default:
		return 0
	}
}
