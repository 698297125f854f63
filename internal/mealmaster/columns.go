package mealmaster

import (
	"strings"
	"unicode/utf8"

	"github.com/gubarz/mmconv/internal/recipe"
	"github.com/gubarz/mmconv/internal/units"
)

// columnState is the layout the ingredient buffer is currently collecting.
type columnState int

const (
	singleColumn columnState = iota
	bufferingPair
	// pairTail holds a run whose left column has one row more than the right.
	pairTail
	// flushing is held only while the buffer is being emitted.
	flushing
)

func (s columnState) String() string {
	switch s {
	case singleColumn:
		return "single-column"
	case bufferingPair:
		return "buffering-pair"
	case pairTail:
		return "pair-tail"
	case flushing:
		return "flushing"
	default:
		return "unknown"
	}
}

// rowShape classifies a physical line of the ingredient block.
type rowShape int

const (
	rowSingle rowShape = iota
	rowPair
	rowContinuation
	// rowBreak is a blank line, a section header or the end of the block.
	rowBreak
)

type row struct {
	shape       rowShape
	left, right cell
}

// next is the transition function of the column buffer. Columns are printed
// column-major with the longer one on the left, so a single row right after
// a pair run is the last entry of its left column.
func (s columnState) next(shape rowShape) columnState {
	switch shape {
	case rowBreak:
		return flushing
	case rowSingle:
		if s == bufferingPair {
			return pairTail
		}
		return flushing
	case rowPair:
		if s == bufferingPair {
			return bufferingPair
		}
		return flushing
	default:
		return s
	}
}

type slot struct {
	ing recipe.Ingredient
	// segment is the last physical piece of text, used to tell a hard break
	// from a word break when joining continuations.
	segment string
}

// columnBuffer rebuilds column-major order from two-column rows: the whole
// left column of a run is emitted before the right one.
type columnBuffer struct {
	state       columnState
	left, right []*slot
	emit        func(recipe.Ingredient)
}

func newColumnBuffer(emit func(recipe.Ingredient)) *columnBuffer {
	return &columnBuffer{state: singleColumn, emit: emit}
}

func (b *columnBuffer) feed(r row) {
	// Continuations attach to what is already buffered, so they go first.
	if r.left.kind == cellContinuation {
		b.attach(r.left, &b.left, b.right)
	}
	if r.right.kind == cellContinuation {
		b.attach(r.right, &b.right, b.left)
	}

	next := b.state.next(r.shape)
	if next == flushing {
		b.flush()
		next = singleColumn
		if r.shape == rowPair {
			next = bufferingPair
		}
	}
	b.state = next

	if r.left.kind == cellIngredient {
		b.left = append(b.left, newSlot(r.left.ing))
	}
	if r.right.kind == cellIngredient {
		b.right = append(b.right, newSlot(r.right.ing))
	}
}

// flush emits the left column, then the right one, and resets the layout.
func (b *columnBuffer) flush() {
	b.state = flushing
	for _, s := range b.left {
		b.emit(s.ing)
	}
	for _, s := range b.right {
		b.emit(s.ing)
	}
	b.left, b.right = nil, nil
	b.state = singleColumn
}

// attach appends a continuation to the last slot of its own column, falling
// back to the other column. With nothing buffered the continuation becomes
// an ingredient of its own.
func (b *columnBuffer) attach(c cell, own *[]*slot, other []*slot) {
	var target *slot
	switch {
	case len(*own) > 0:
		target = (*own)[len(*own)-1]
	case len(other) > 0:
		target = other[len(other)-1]
	default:
		ing := recipe.Ingredient{Amount: recipe.NoAmount(), Unit: units.Blank, Text: c.raw}
		*own = append(*own, &slot{ing: ing, segment: c.raw})
		return
	}
	target.join(c.text)
}

func newSlot(ing recipe.Ingredient) *slot {
	return &slot{ing: ing, segment: ing.Text}
}

// join appends a continuation. The previous piece was cut mid-word only when
// it holds no space and the next rune would not have fit in the description
// width; that break is joined without a space.
func (s *slot) join(text string) {
	if text == "" {
		return
	}
	if s.hardBreak(text) {
		s.ing.Text += text
	} else {
		s.ing.Text += " " + text
	}
	s.segment = text
}

func (s *slot) hardBreak(next string) bool {
	n := len(s.segment)
	if n > descriptionWidth || strings.Contains(s.segment, " ") {
		return false
	}
	_, size := utf8.DecodeRuneInString(next)
	return n+size > descriptionWidth
}
