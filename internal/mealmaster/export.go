package mealmaster

import (
	"io"
	"strconv"
	"strings"

	"github.com/gubarz/mmconv/internal/recipe"
	"github.com/gubarz/mmconv/internal/units"
)

const (
	eol                = "\r\n"
	continuationPrefix = "           -"
	instructionPrefix  = "  "
	bannerWidth        = 76
)

// Exporter renders recipes as MealMaster text. Export never fails; a recipe
// whose section markers break the model invariants gives unspecified output.
type Exporter struct {
	program string
}

// ExportOption configures an Exporter.
type ExportOption func(*Exporter)

// WithProgram sets the program name written into the banner.
func WithProgram(name string) ExportOption {
	return func(e *Exporter) {
		if name != "" {
			e.program = name
		}
	}
}

// NewExporter creates an exporter.
func NewExporter(opts ...ExportOption) *Exporter {
	e := &Exporter{program: "mmconv"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultExporter = NewExporter()

// Export renders r with the default exporter.
func Export(r *recipe.Recipe) string {
	return defaultExporter.Export(r)
}

// Export renders r. Lines end in CRLF and the text ends with a bare MMMMM.
func (e *Exporter) Export(r *recipe.Recipe) string {
	var b strings.Builder
	e.writeHeader(&b, r)
	writeIngredients(&b, r)
	writeInstructions(&b, r)
	b.WriteString("MMMMM")
	return b.String()
}

// WriteTo writes the rendering of r to w.
func (e *Exporter) WriteTo(w io.Writer, r *recipe.Recipe) error {
	_, err := io.WriteString(w, e.Export(r))
	return err
}

func (e *Exporter) banner() string {
	label := "Meal-Master recipe exported by " + e.program
	right := max(bannerWidth-21-len(label), 1)
	return "MMMMM" + strings.Repeat("-", 16) + label + strings.Repeat("-", right)
}

func (e *Exporter) writeHeader(b *strings.Builder, r *recipe.Recipe) {
	b.WriteString(e.banner() + eol)
	b.WriteString(eol)
	b.WriteString("      Title: " + r.Title + eol)
	b.WriteString(" Categories: " + strings.Join(r.Categories, ", ") + eol)
	b.WriteString("      Yield: " + strconv.Itoa(r.Servings) + " " + r.ServingsUnit + eol)
	b.WriteString(eol)
}

// sectionLine centres name in a 71 column dash frame, the shorter half on
// the left.
func sectionLine(name string) string {
	n := max(sectionWidth-len(name), 0)
	return "MMMMM" + strings.Repeat("-", n/2) + name + strings.Repeat("-", (n+1)/2)
}

// amountField renders an amount right-justified in the 7 column field.
func amountField(a recipe.Amount) string {
	s := a.String()
	if len(s) > amountWidth {
		s = s[:amountWidth]
	}
	return strings.Repeat(" ", amountWidth-len(s)) + s
}

func writeIngredients(b *strings.Builder, r *recipe.Recipe) {
	if len(r.Ingredients) == 0 {
		return
	}
	sections := r.IngredientSections
	next := 0
	for i, ing := range r.Ingredients {
		for next < len(sections) && sections[next].Position == i {
			b.WriteString(sectionLine(sections[next].Name) + eol)
			next++
		}

		b.WriteString(amountField(ing.Amount) + " " + units.Field(ing.Unit) + " ")
		lines := wrap(ing.Text, descriptionWidth)
		if len(lines) == 0 {
			b.WriteString(eol)
		}
		for j, line := range lines {
			if j > 0 {
				b.WriteString(continuationPrefix)
			}
			b.WriteString(line + eol)
		}

		if next < len(sections) && sections[next].Position == i+1 {
			b.WriteString(eol)
		}
	}
	b.WriteString(eol)
}

func writeInstructions(b *strings.Builder, r *recipe.Recipe) {
	if len(r.Instructions) == 0 {
		return
	}
	sections := r.InstructionSections
	next := 0
	forced := false
	for i, text := range r.Instructions {
		for next < len(sections) && sections[next].Position == i {
			b.WriteString(sectionLine(sections[next].Name) + eol)
			forced = false
			next++
		}

		if text == "" {
			b.WriteString(eol)
			forced = false
		} else {
			for text != "" {
				width, marker := instructionWidth, ""
				if forced {
					width, marker = instructionWidth-1, ":"
				}
				var head string
				head, text = breakLine(text, width)
				b.WriteString(instructionPrefix + marker + head + eol)
				forced = false
			}
			forced = true
		}

		if next < len(sections) && sections[next].Position == i+1 {
			b.WriteString(eol)
		}
	}
	b.WriteString(eol)
}
