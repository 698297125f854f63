package mealmaster

import "fmt"

// Kind classifies a parse failure.
type Kind string

const (
	// KindMissingHeader means the document does not start with a MealMaster banner.
	KindMissingHeader Kind = "MISSING_HEADER"
	// KindMissingServings means recipe content was reached before a Yield field.
	KindMissingServings Kind = "MISSING_SERVINGS"
	// KindEmptySection means a section header was not followed by any element.
	KindEmptySection Kind = "EMPTY_SECTION"
	// KindUnexpectedEOF means the input ended before the MMMMM terminator.
	KindUnexpectedEOF Kind = "UNEXPECTED_EOF"
	// KindEmptyIngredient means an ingredient record has an amount or unit but no text.
	KindEmptyIngredient Kind = "EMPTY_INGREDIENT"
)

// ParseError reports why a document could not be parsed. Line is 1-based
// and 0 when the failure is not tied to a line.
type ParseError struct {
	Kind   Kind
	Line   int
	Reason string
}

// Sentinels for errors.Is. They match any ParseError of the same kind.
var (
	ErrMissingHeader   = &ParseError{Kind: KindMissingHeader, Reason: "missing header"}
	ErrMissingServings = &ParseError{Kind: KindMissingServings, Reason: "expecting servings"}
	ErrEmptySection    = &ParseError{Kind: KindEmptySection, Reason: "empty section"}
	ErrUnexpectedEOF   = &ParseError{Kind: KindUnexpectedEOF, Reason: "unexpected end of file"}
	ErrEmptyIngredient = &ParseError{Kind: KindEmptyIngredient, Reason: "ingredient without text"}
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s", e.Kind, e.Line, e.Reason)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Reason)
}

// Is reports whether target is a ParseError of the same kind.
func (e *ParseError) Is(target error) bool {
	t, ok := target.(*ParseError)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, line int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Line: line, Reason: fmt.Sprintf(format, args...)}
}
