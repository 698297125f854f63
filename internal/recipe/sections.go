package recipe

import (
	"fmt"
	"sort"
)

// ShiftSections moves every marker whose position is at or after from by
// delta. Every insertion or removal in a sectioned list must call it.
func ShiftSections(sections []Section, from, delta int) {
	for i := range sections {
		if sections[i].Position >= from {
			sections[i].Position += delta
		}
	}
}

// InsertIngredient inserts ing before the ingredient at pos. The new
// ingredient joins the section of the ingredient it is inserted before;
// appending (pos == len) joins the last section.
func (r *Recipe) InsertIngredient(pos int, ing Ingredient) error {
	if pos < 0 || pos > len(r.Ingredients) {
		return fmt.Errorf("insert ingredient at %d: %w", pos, ErrOutOfRange)
	}
	r.Ingredients = append(r.Ingredients, Ingredient{})
	copy(r.Ingredients[pos+1:], r.Ingredients[pos:])
	r.Ingredients[pos] = ing
	ShiftSections(r.IngredientSections, pos+1, 1)
	return nil
}

// RemoveIngredient deletes the ingredient at pos. A section left without
// elements is dropped.
func (r *Recipe) RemoveIngredient(pos int) error {
	if pos < 0 || pos >= len(r.Ingredients) {
		return fmt.Errorf("remove ingredient at %d: %w", pos, ErrOutOfRange)
	}
	r.Ingredients = append(r.Ingredients[:pos], r.Ingredients[pos+1:]...)
	ShiftSections(r.IngredientSections, pos+1, -1)
	r.IngredientSections = dropEmptySections(r.IngredientSections, len(r.Ingredients))
	return nil
}

// InsertInstruction inserts a paragraph line before the line at pos, with
// the same section rule as InsertIngredient.
func (r *Recipe) InsertInstruction(pos int, text string) error {
	if pos < 0 || pos > len(r.Instructions) {
		return fmt.Errorf("insert instruction at %d: %w", pos, ErrOutOfRange)
	}
	r.Instructions = append(r.Instructions, "")
	copy(r.Instructions[pos+1:], r.Instructions[pos:])
	r.Instructions[pos] = text
	ShiftSections(r.InstructionSections, pos+1, 1)
	return nil
}

// RemoveInstruction deletes the paragraph line at pos. A section left
// without elements is dropped.
func (r *Recipe) RemoveInstruction(pos int) error {
	if pos < 0 || pos >= len(r.Instructions) {
		return fmt.Errorf("remove instruction at %d: %w", pos, ErrOutOfRange)
	}
	r.Instructions = append(r.Instructions[:pos], r.Instructions[pos+1:]...)
	ShiftSections(r.InstructionSections, pos+1, -1)
	r.InstructionSections = dropEmptySections(r.InstructionSections, len(r.Instructions))
	return nil
}

// AddIngredientSection starts a section named name at ingredient pos.
func (r *Recipe) AddIngredientSection(pos int, name string) error {
	sections, err := addSection(r.IngredientSections, len(r.Ingredients), pos, name)
	if err != nil {
		return fmt.Errorf("add ingredient section %q: %w", name, err)
	}
	r.IngredientSections = sections
	return nil
}

// AddInstructionSection starts a section named name at instruction pos.
func (r *Recipe) AddInstructionSection(pos int, name string) error {
	sections, err := addSection(r.InstructionSections, len(r.Instructions), pos, name)
	if err != nil {
		return fmt.Errorf("add instruction section %q: %w", name, err)
	}
	r.InstructionSections = sections
	return nil
}

// RemoveIngredientSection drops marker i; its ingredients merge into the
// preceding section.
func (r *Recipe) RemoveIngredientSection(i int) error {
	if i < 0 || i >= len(r.IngredientSections) {
		return fmt.Errorf("remove ingredient section %d: %w", i, ErrOutOfRange)
	}
	r.IngredientSections = append(r.IngredientSections[:i], r.IngredientSections[i+1:]...)
	return nil
}

// RemoveInstructionSection drops marker i; its lines merge into the
// preceding section.
func (r *Recipe) RemoveInstructionSection(i int) error {
	if i < 0 || i >= len(r.InstructionSections) {
		return fmt.Errorf("remove instruction section %d: %w", i, ErrOutOfRange)
	}
	r.InstructionSections = append(r.InstructionSections[:i], r.InstructionSections[i+1:]...)
	return nil
}

func addSection(sections []Section, n, pos int, name string) ([]Section, error) {
	if name == "" {
		return nil, ErrEmptySectionName
	}
	if pos < 0 || pos > n {
		return nil, ErrOutOfRange
	}
	i := sort.Search(len(sections), func(i int) bool { return sections[i].Position >= pos })
	if i < len(sections) && sections[i].Position == pos {
		return nil, ErrSectionExists
	}
	out := make([]Section, 0, len(sections)+1)
	out = append(out, sections[:i]...)
	out = append(out, Section{Position: pos, Name: name})
	return append(out, sections[i:]...), nil
}

// dropEmptySections removes markers whose run became empty: a marker sharing
// its position with the next one, or one at the end of the list.
func dropEmptySections(sections []Section, n int) []Section {
	out := sections[:0]
	for i, s := range sections {
		if s.Position >= n {
			continue
		}
		if i+1 < len(sections) && sections[i+1].Position == s.Position {
			continue
		}
		out = append(out, s)
	}
	return out
}
