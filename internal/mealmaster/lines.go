package mealmaster

import (
	"regexp"
	"strings"

	"github.com/gubarz/mmconv/internal/recipe"
	"github.com/gubarz/mmconv/internal/units"
)

// Fixed-column layout of an ingredient record.
const (
	amountWidth      = 7
	unitColumn       = 8
	textColumn       = 11
	descriptionWidth = 28
	sectionWidth     = 71
	instructionWidth = 75
)

// Offsets at which the right column of a two-column row is looked for,
// most likely first.
var pairOffsets = []int{41, 40, 42, 39, 43, 44}

var (
	bannerRe     = regexp.MustCompile(`(?i)^MMMMM-+.*MEAL-MASTER`)
	sectionRe    = regexp.MustCompile(`^MMMMM-*(.*?)-*$`)
	titleRe      = regexp.MustCompile(`(?i)^\s*title:\s*(.*)$`)
	categoriesRe = regexp.MustCompile(`(?i)^\s*categories:\s*(.*)$`)
	yieldRe      = regexp.MustCompile(`(?i)^\s*(?:yield|servings):\s*(.*)$`)
	yieldValueRe = regexp.MustCompile(`^(\d+)\s*(.*)$`)
)

// cleanLine drops a trailing carriage return and the 0x14 control byte.
// Tabs become single spaces once the banner has been read.
func cleanLine(s string, afterBanner bool) string {
	s = strings.TrimSuffix(s, "\r")
	s = strings.ReplaceAll(s, "\x14", "")
	if afterBanner {
		s = strings.ReplaceAll(s, "\t", " ")
	}
	return s
}

func isBanner(line string) bool {
	return bannerRe.MatchString(strings.TrimSpace(line))
}

// sectionHeader reports whether line is an MMMMM line and returns its title.
// A bare MMMMM line (the terminator) has an empty title.
func sectionHeader(line string) (string, bool) {
	m := sectionRe.FindStringSubmatch(strings.TrimRight(line, " "))
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

func isTerminator(line string) bool {
	name, ok := sectionHeader(line)
	return ok && name == ""
}

func splitCategories(value string) []string {
	var out []string
	for _, c := range strings.Split(value, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

type cellKind int

const (
	cellEmpty cellKind = iota
	cellIngredient
	cellContinuation
	// cellBare is a record with an amount or unit but no text.
	cellBare
	cellInvalid
)

// cell is one column of a physical ingredient line.
type cell struct {
	kind cellKind
	ing  recipe.Ingredient
	// text is the continuation text after the dash, raw the whole trimmed
	// text column, used when a continuation has nothing to attach to.
	text string
	raw  string
}

// parseCell classifies s, which starts at the amount column of a record.
func parseCell(s string) cell {
	s = strings.TrimRight(s, " ")
	if s == "" {
		return cell{kind: cellEmpty}
	}
	if len(s) < textColumn {
		s += strings.Repeat(" ", textColumn-len(s))
	}

	if strings.TrimSpace(s[:textColumn]) == "" && len(s) > textColumn && s[textColumn] == '-' {
		return cell{
			kind: cellContinuation,
			text: strings.TrimSpace(s[textColumn+1:]),
			raw:  strings.TrimSpace(s[textColumn:]),
		}
	}

	if s[amountWidth] != ' ' || s[textColumn-1] != ' ' {
		return cell{kind: cellInvalid}
	}
	amount, ok := decodeAmount(s[:amountWidth])
	if !ok {
		return cell{kind: cellInvalid}
	}
	ing := recipe.Ingredient{
		Amount: amount,
		Unit:   s[unitColumn : textColumn-1],
		Text:   strings.TrimSpace(s[textColumn:]),
	}
	if ing.Text == "" {
		return cell{kind: cellBare, ing: ing}
	}
	return cell{kind: cellIngredient, ing: ing}
}

// misaligned reports whether an ingredient cell is really a continuation
// read one column too early.
func (c cell) misaligned() bool {
	return c.kind == cellIngredient && c.ing.Amount.IsZero() &&
		c.ing.Unit == units.Blank && strings.HasPrefix(c.ing.Text, "-")
}

// splitRow looks for a second record on the line. The right cell must hold
// an ingredient or a continuation and the left part must still parse.
func splitRow(line string) (left, right cell, ok bool) {
	for _, off := range pairOffsets {
		if off >= len(line) || line[off-1] != ' ' {
			continue
		}
		right = parseCell(line[off:])
		if (right.kind != cellIngredient && right.kind != cellContinuation) || right.misaligned() {
			continue
		}
		left = parseCell(line[:off])
		switch left.kind {
		case cellEmpty, cellIngredient, cellContinuation:
			return left, right, true
		}
	}
	return cell{}, cell{}, false
}

// classify turns a non-blank ingredient-block line into a row. It reports
// false for lines that are not ingredient records, and a bare cell for
// records without text.
func classify(line string) (row, bool) {
	if left, right, ok := splitRow(line); ok {
		if left.kind == cellIngredient || right.kind == cellIngredient {
			return row{shape: rowPair, left: left, right: right}, true
		}
		return row{shape: rowContinuation, left: left, right: right}, true
	}

	c := parseCell(line)
	switch c.kind {
	case cellIngredient, cellBare:
		return row{shape: rowSingle, left: c}, true
	case cellContinuation:
		return row{shape: rowContinuation, left: c}, true
	default:
		return row{}, false
	}
}

// looseIngredient reads a line such as "200.0 ml milk" that is not aligned
// to the record columns. Amounts wider than the amount field are refused.
func looseIngredient(line string) (recipe.Ingredient, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return recipe.Ingredient{}, false
	}
	amount, ok := decodeAmount(fields[0])
	if !ok || amount.IsZero() {
		return recipe.Ingredient{}, false
	}
	i := 1
	if amount.Kind == recipe.AmountInteger && len(fields) > 2 {
		if frac, ok := decodeAmount(fields[1]); ok && frac.Kind == recipe.AmountFraction {
			amount = recipe.Mixed(amount.Whole, frac.Numerator, frac.Denominator)
			i++
		}
	}
	if len(amount.String()) > amountWidth {
		return recipe.Ingredient{}, false
	}
	unit := units.Blank
	if i+1 < len(fields) {
		if code, ok := units.Lookup(fields[i]); ok {
			unit = code
			i++
		}
	}
	return recipe.Ingredient{Amount: amount, Unit: unit, Text: strings.Join(fields[i:], " ")}, true
}
