// Package mealmaster reads and writes recipes in the MealMaster fixed-column
// text format.
//
// A document is a banner line, the Title/Categories/Yield fields, an
// ingredient block and an instruction block, closed by a bare MMMMM line.
// Ingredient blocks may be laid out in two columns; the parser restores
// column-major order. Parse failures are reported as *ParseError.
package mealmaster

import (
	"bufio"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gubarz/mmconv/internal/recipe"
)

// maxLineLength bounds a single input line.
const maxLineLength = 1024 * 1024

type phase int

const (
	phaseBanner phase = iota
	phaseFields
	phaseIngredients
	phaseInstructions
)

// Parser converts MealMaster text into recipes. It holds no per-document
// state and is safe for concurrent use.
type Parser struct {
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for debug output about lenient decisions.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser creates a parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse reads one recipe from r with the default parser.
func Parse(r io.Reader) (*recipe.Recipe, error) {
	return defaultParser.Parse(r)
}

// ParseString reads one recipe from s with the default parser.
func ParseString(s string) (*recipe.Recipe, error) {
	return defaultParser.ParseString(s)
}

// Parse reads one recipe from r. Content after the terminator is ignored.
func (p *Parser) Parse(r io.Reader) (*recipe.Recipe, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}
	return p.ParseLines(lines)
}

// ParseString reads one recipe from s.
func (p *Parser) ParseString(s string) (*recipe.Recipe, error) {
	return p.Parse(strings.NewReader(s))
}

// ParseLines parses a document already split into lines. Lines may still
// carry a trailing carriage return.
func (p *Parser) ParseLines(lines []string) (*recipe.Recipe, error) {
	d := &document{
		lines:  lines,
		rec:    recipe.New(""),
		logger: p.logger,
	}
	d.columns = newColumnBuffer(d.addIngredient)

	for d.pos = 0; d.pos < len(d.lines); d.pos++ {
		line := cleanLine(d.lines[d.pos], d.phase != phaseBanner)
		done, err := d.step(line)
		if err != nil {
			return nil, err
		}
		if done {
			return d.rec, nil
		}
	}
	return nil, newError(KindUnexpectedEOF, len(lines), "unexpected end of file")
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// document is the state of one parse.
type document struct {
	lines  []string
	pos    int
	phase  phase
	rec    *recipe.Recipe
	logger *slog.Logger

	columns *columnBuffer
	// pending is a section header waiting for its first element.
	pending     string
	pendingLine int

	// Instruction block state.
	blanks     int
	joinable   bool
	hasContent bool
}

func (d *document) lineNo() int {
	return d.pos + 1
}

func (d *document) step(line string) (bool, error) {
	switch d.phase {
	case phaseBanner:
		if strings.TrimSpace(line) == "" {
			return false, nil
		}
		if !isBanner(line) {
			return false, newError(KindMissingHeader, d.lineNo(), "missing header")
		}
		d.phase = phaseFields
		return false, nil
	case phaseFields:
		return false, d.field(line)
	case phaseIngredients:
		return d.ingredientLine(line)
	default:
		return d.instructionLine(line)
	}
}

func (d *document) field(line string) error {
	if strings.TrimSpace(line) == "" {
		return nil
	}
	if m := titleRe.FindStringSubmatch(line); m != nil {
		d.rec.Title = strings.TrimSpace(m[1])
		return nil
	}
	if m := categoriesRe.FindStringSubmatch(line); m != nil {
		d.rec.Categories = append(d.rec.Categories, splitCategories(m[1])...)
		return nil
	}
	if m := yieldRe.FindStringSubmatch(line); m != nil {
		d.rec.Servings, d.rec.ServingsUnit = parseYield(m[1])
		d.phase = phaseIngredients
		return nil
	}
	return newError(KindMissingServings, d.lineNo(), "expecting servings")
}

func parseYield(value string) (int, string) {
	value = strings.TrimSpace(value)
	m := yieldValueRe.FindStringSubmatch(value)
	if m == nil {
		return 0, value
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, value
	}
	return n, strings.TrimSpace(m[2])
}

func (d *document) ingredientLine(line string) (bool, error) {
	t := strings.TrimRight(line, " ")
	if t == "" {
		d.columns.feed(row{shape: rowBreak})
		return false, nil
	}

	if name, ok := sectionHeader(t); ok {
		d.columns.feed(row{shape: rowBreak})
		if d.pending != "" {
			return false, newError(KindEmptySection, d.pendingLine, "empty section %q", d.pending)
		}
		if name == "" {
			return true, nil
		}
		d.pending, d.pendingLine = name, d.lineNo()
		return false, nil
	}

	if r, ok := classify(t); ok {
		if r.left.kind == cellBare {
			return false, newError(KindEmptyIngredient, d.lineNo(), "ingredient without text")
		}
		d.columns.feed(r)
		return false, nil
	}

	if ing, ok := looseIngredient(t); ok {
		if d.nextIsIngredient() {
			d.logger.Debug("accepting unaligned ingredient line", "line", d.lineNo(), "text", t)
			d.columns.feed(row{shape: rowBreak})
			d.columns.feed(row{shape: rowSingle, left: cell{kind: cellIngredient, ing: ing}})
			return false, nil
		}
		d.logger.Debug("ingredient-like line starts instructions", "line", d.lineNo(), "text", t)
	}

	d.columns.feed(row{shape: rowBreak})
	d.phase = phaseInstructions
	return d.instructionLine(line)
}

// nextIsIngredient reports whether the next non-blank line is an ingredient
// record or continuation.
func (d *document) nextIsIngredient() bool {
	for i := d.pos + 1; i < len(d.lines); i++ {
		t := strings.TrimRight(cleanLine(d.lines[i], true), " ")
		if t == "" {
			continue
		}
		if _, ok := sectionHeader(t); ok {
			return false
		}
		r, ok := classify(t)
		return ok && r.left.kind != cellBare
	}
	return false
}

func (d *document) addIngredient(ing recipe.Ingredient) {
	if d.pending != "" {
		d.rec.IngredientSections = append(d.rec.IngredientSections,
			recipe.Section{Position: len(d.rec.Ingredients), Name: d.pending})
		d.pending = ""
	}
	d.rec.Ingredients = append(d.rec.Ingredients, ing)
}

func (d *document) instructionLine(line string) (bool, error) {
	t := strings.TrimRight(line, " ")
	if t == "" {
		d.blanks++
		return false, nil
	}

	if name, ok := sectionHeader(t); ok {
		if d.pending != "" {
			return false, newError(KindEmptySection, d.pendingLine, "empty section %q", d.pending)
		}
		if name == "" {
			return true, nil
		}
		d.pending, d.pendingLine = name, d.lineNo()
		d.blanks, d.joinable, d.hasContent = 0, false, false
		return false, nil
	}

	text := t
	if rest, ok := strings.CutPrefix(t, "  "); ok {
		text = rest
		if forced, ok := strings.CutPrefix(rest, ":"); ok {
			text = forced
			d.joinable = false
			if text == "" {
				return false, nil
			}
		}
	}

	if d.blanks > 0 {
		if d.hasContent {
			for ; d.blanks > 0; d.blanks-- {
				d.rec.Instructions = append(d.rec.Instructions, "")
			}
		}
		d.blanks = 0
		d.joinable = false
	}
	if d.pending != "" {
		d.rec.InstructionSections = append(d.rec.InstructionSections,
			recipe.Section{Position: len(d.rec.Instructions), Name: d.pending})
		d.pending = ""
		d.joinable = false
	}

	if n := len(d.rec.Instructions); d.joinable && n > 0 {
		d.rec.Instructions[n-1] += " " + text
	} else {
		d.rec.Instructions = append(d.rec.Instructions, text)
	}
	d.joinable = true
	d.hasContent = true
	return false, nil
}
