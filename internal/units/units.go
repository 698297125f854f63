// Package units maps MealMaster's two-character unit codes to canonical names
// and to a stable index used when recipes are stored by index.
package units

import "strings"

// Unknown is the index reported for codes outside the table.
const Unknown = 32

// Blank is the unit field of an ingredient without a unit.
const Blank = "  "

// Namespace is the translation namespace used for unit names.
const Namespace = "units"

// Translator resolves a key within a namespace to display text.
type Translator func(namespace, key string) string

// Identity is the non-translating Translator.
func Identity(namespace, key string) string {
	return key
}

type entry struct {
	code  string
	name  string
	index int
}

// table lists every known code. Synonyms share an index; the first spelling
// listed for an index is the canonical one returned by Code.
var table = []entry{
	{"x ", "per serving", 0},
	{"sm", "small", 1},
	{"md", "medium", 2},
	{"lg", "large", 3},
	{"cn", "can", 4},
	{"pk", "package", 5},
	{"pn", "pinch", 6},
	{"dr", "drop", 7},
	{"ds", "dash", 8},
	{"ct", "carton", 9},
	{"bn", "bunch", 10},
	{"sl", "slice", 11},
	{"ea", "each", 12},
	{"ts", "teaspoon", 13},
	{"t ", "teaspoon", 13},
	{"tb", "tablespoon", 14},
	{"T ", "tablespoon", 14},
	{"fl", "fluid ounce", 15},
	{"c ", "cup", 16},
	{"pt", "pint", 17},
	{"qt", "quart", 18},
	{"ga", "gallon", 19},
	{"oz", "ounce", 20},
	{"lb", "pound", 21},
	{"ml", "milliliter", 22},
	{"cb", "cubic cm", 23},
	{"cl", "centiliter", 24},
	{"dl", "deciliter", 25},
	{"l ", "liter", 26},
	{"mg", "milligram", 27},
	{"cg", "centigram", 28},
	{"dg", "decigram", 29},
	{"g ", "gram", 30},
	{"kg", "kilogram", 31},
}

var (
	byCode  = make(map[string]entry, len(table))
	byIndex [Unknown]string
)

func init() {
	for _, e := range table {
		byCode[e.code] = e
		if byIndex[e.index] == "" {
			byIndex[e.index] = e.code
		}
	}
}

// Name returns the canonical English name of a code, or "" if the code is unknown.
func Name(code string) string {
	if e, ok := byCode[code]; ok {
		return e.name
	}
	return ""
}

// Index returns the table index of a code in [0,31], or Unknown.
func Index(code string) int {
	if e, ok := byCode[code]; ok {
		return e.index
	}
	return Unknown
}

// Code returns the canonical code for an index. Indices outside the table
// map to Blank.
func Code(index int) string {
	if index < 0 || index >= Unknown {
		return Blank
	}
	return byIndex[index]
}

// Known reports whether code is one of the table's codes.
func Known(code string) bool {
	_, ok := byCode[code]
	return ok
}

// Codes returns the canonical code of every index in order.
func Codes() []string {
	out := make([]string, Unknown)
	copy(out, byIndex[:])
	return out
}

// Lookup normalizes a free-standing unit token such as "c" or "tb" to its
// two-character field form. It reports false for tokens that are not codes.
func Lookup(token string) (string, bool) {
	if len(token) == 0 || len(token) > 2 {
		return "", false
	}
	code := token
	if len(code) == 1 {
		code += " "
	}
	if !Known(code) {
		return "", false
	}
	return code, true
}

// Field pads or cuts a unit to the two-character column width. An empty
// unit becomes Blank.
func Field(unit string) string {
	switch {
	case len(unit) >= 2:
		return unit[:2]
	case unit == "":
		return Blank
	default:
		return unit + strings.Repeat(" ", 2-len(unit))
	}
}

// DisplayName returns the translated name of a code. Unknown codes yield ""
// and the caller decides how to present the raw code.
func DisplayName(code string, tr Translator) string {
	name := Name(code)
	if name == "" {
		return ""
	}
	if tr == nil {
		tr = Identity
	}
	return tr(Namespace, name)
}
