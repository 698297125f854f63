package mealmaster

import (
	"bufio"
	"errors"
	"io"
	"strings"

	"github.com/gubarz/mmconv/internal/recipe"
)

// Decoder reads successive recipes from a stream such as a MealMaster
// archive. A document that fails to parse is skipped up to its terminator
// or the next banner, so decoding can continue after an error.
type Decoder struct {
	parser  *Parser
	scanner *bufio.Scanner
	line    int
	// held is a banner read while collecting the previous document.
	held    string
	hasHeld bool
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &Decoder{parser: NewParser(opts...), scanner: scanner}
}

func (d *Decoder) next() (string, bool) {
	if d.hasHeld {
		d.hasHeld = false
		return d.held, true
	}
	if !d.scanner.Scan() {
		return "", false
	}
	d.line++
	return d.scanner.Text(), true
}

func (d *Decoder) hold(line string) {
	d.held, d.hasHeld = line, true
}

// Decode returns the next recipe. It returns io.EOF once only blank lines
// remain. Parse failures are *ParseError values with line numbers relative
// to the whole stream.
func (d *Decoder) Decode() (*recipe.Recipe, error) {
	var first string
	for {
		line, ok := d.next()
		if !ok {
			if err := d.scanner.Err(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		if strings.TrimSpace(cleanLine(line, false)) != "" {
			first = line
			break
		}
	}
	start := d.line

	if !isBanner(cleanLine(first, false)) {
		d.skipToBanner()
		return nil, newError(KindMissingHeader, start, "missing header")
	}

	chunk := []string{first}
	for {
		line, ok := d.next()
		if !ok {
			if err := d.scanner.Err(); err != nil {
				return nil, err
			}
			break
		}
		clean := cleanLine(line, true)
		if isBanner(clean) {
			d.hold(line)
			break
		}
		chunk = append(chunk, line)
		if isTerminator(clean) {
			break
		}
	}

	r, err := d.parser.ParseLines(chunk)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) && pe.Line > 0 {
			shifted := *pe
			shifted.Line += start - 1
			return nil, &shifted
		}
		return nil, err
	}
	return r, nil
}

func (d *Decoder) skipToBanner() {
	for {
		line, ok := d.next()
		if !ok {
			return
		}
		if isBanner(cleanLine(line, false)) {
			d.hold(line)
			return
		}
	}
}
