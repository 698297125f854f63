package recipe

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sample() *Recipe {
	r := New("Soup")
	r.Ingredients = []Ingredient{
		{Amount: Integer(1), Unit: "lb", Text: "carrots"},
		{Amount: Integer(2), Unit: "c ", Text: "water"},
		{Amount: NoAmount(), Unit: "  ", Text: "salt"},
		{Amount: Fraction(1, 2), Unit: "ts", Text: "pepper"},
	}
	r.IngredientSections = []Section{{Position: 0, Name: "BASE"}, {Position: 2, Name: "SEASONING"}}
	r.Instructions = []string{"Boil.", "", "Season."}
	r.InstructionSections = []Section{{Position: 2, Name: "FINISH"}}
	return r
}

func TestShiftSections(t *testing.T) {
	sections := []Section{{0, "A"}, {3, "B"}, {5, "C"}}
	ShiftSections(sections, 3, 2)
	want := []Section{{0, "A"}, {5, "B"}, {7, "C"}}
	if diff := cmp.Diff(want, sections); diff != "" {
		t.Errorf("ShiftSections mismatch (-want +got):\n%s", diff)
	}
}

func TestInsertIngredient(t *testing.T) {
	tests := []struct {
		name     string
		pos      int
		sections []Section
		section  string
	}{
		{
			name:     "before section start joins that section",
			pos:      2,
			sections: []Section{{0, "BASE"}, {2, "SEASONING"}},
			section:  "SEASONING",
		},
		{
			name:     "inside first section",
			pos:      1,
			sections: []Section{{0, "BASE"}, {3, "SEASONING"}},
			section:  "BASE",
		},
		{
			name:     "append joins last section",
			pos:      4,
			sections: []Section{{0, "BASE"}, {2, "SEASONING"}},
			section:  "SEASONING",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sample()
			ing := Ingredient{Amount: Integer(3), Unit: "ea", Text: "onions"}
			if err := r.InsertIngredient(tt.pos, ing); err != nil {
				t.Fatalf("InsertIngredient: %v", err)
			}
			if diff := cmp.Diff(ing, r.Ingredients[tt.pos]); diff != "" {
				t.Errorf("inserted ingredient mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.sections, r.IngredientSections); diff != "" {
				t.Errorf("sections mismatch (-want +got):\n%s", diff)
			}
			if got := SectionAt(r.IngredientSections, tt.pos); got != tt.section {
				t.Errorf("SectionAt(%d) = %q, want %q", tt.pos, got, tt.section)
			}
			if err := r.Validate(); err != nil {
				t.Errorf("Validate after insert: %v", err)
			}
		})
	}
}

func TestRemoveIngredient(t *testing.T) {
	r := sample()
	if err := r.RemoveIngredient(0); err != nil {
		t.Fatalf("RemoveIngredient: %v", err)
	}
	want := []Section{{0, "BASE"}, {1, "SEASONING"}}
	if diff := cmp.Diff(want, r.IngredientSections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}

	// Emptying BASE drops its marker.
	if err := r.RemoveIngredient(0); err != nil {
		t.Fatalf("RemoveIngredient: %v", err)
	}
	want = []Section{{0, "SEASONING"}}
	if diff := cmp.Diff(want, r.IngredientSections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate after remove: %v", err)
	}
}

func TestInstructionMutations(t *testing.T) {
	r := sample()
	if err := r.InsertInstruction(0, "Chop."); err != nil {
		t.Fatalf("InsertInstruction: %v", err)
	}
	if diff := cmp.Diff([]Section{{3, "FINISH"}}, r.InstructionSections); diff != "" {
		t.Errorf("sections after insert (-want +got):\n%s", diff)
	}
	if err := r.RemoveInstruction(3); err != nil {
		t.Fatalf("RemoveInstruction: %v", err)
	}
	if len(r.InstructionSections) != 0 {
		t.Errorf("expected FINISH to be dropped, got %+v", r.InstructionSections)
	}
	if diff := cmp.Diff([]string{"Chop.", "Boil.", ""}, r.Instructions); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
}

func TestMutationsOutOfRange(t *testing.T) {
	r := sample()
	checks := map[string]error{
		"insert ingredient":          r.InsertIngredient(5, Ingredient{Text: "x"}),
		"remove ingredient":          r.RemoveIngredient(4),
		"insert instruction":         r.InsertInstruction(-1, "x"),
		"remove instruction":         r.RemoveInstruction(3),
		"add section":                r.AddIngredientSection(5, "LATE"),
		"remove ingredient section":  r.RemoveIngredientSection(2),
		"remove instruction section": r.RemoveInstructionSection(1),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("%s: got %v, want ErrOutOfRange", name, err)
		}
	}
}

func TestAddSections(t *testing.T) {
	r := sample()
	if err := r.AddIngredientSection(3, "GARNISH"); err != nil {
		t.Fatalf("AddIngredientSection: %v", err)
	}
	want := []Section{{0, "BASE"}, {2, "SEASONING"}, {3, "GARNISH"}}
	if diff := cmp.Diff(want, r.IngredientSections); diff != "" {
		t.Errorf("sections mismatch (-want +got):\n%s", diff)
	}

	if err := r.AddIngredientSection(2, "AGAIN"); !errors.Is(err, ErrSectionExists) {
		t.Errorf("duplicate position: got %v, want ErrSectionExists", err)
	}
	if err := r.AddInstructionSection(0, ""); !errors.Is(err, ErrEmptySectionName) {
		t.Errorf("empty name: got %v, want ErrEmptySectionName", err)
	}
	if err := r.AddInstructionSection(0, "PREP"); err != nil {
		t.Fatalf("AddInstructionSection: %v", err)
	}
	if got := SectionAt(r.InstructionSections, 1); got != "PREP" {
		t.Errorf("SectionAt(1) = %q, want PREP", got)
	}

	if err := r.RemoveIngredientSection(0); err != nil {
		t.Fatalf("RemoveIngredientSection: %v", err)
	}
	if got := SectionAt(r.IngredientSections, 0); got != "" {
		t.Errorf("SectionAt(0) = %q after removing BASE", got)
	}
}

func TestValidate(t *testing.T) {
	if err := sample().Validate(); err != nil {
		t.Fatalf("sample recipe invalid: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Recipe)
	}{
		{"empty ingredient text", func(r *Recipe) { r.Ingredients[1].Text = "" }},
		{"long unit", func(r *Recipe) { r.Ingredients[0].Unit = "lbs" }},
		{"bad amount", func(r *Recipe) { r.Ingredients[0].Amount = Amount{Kind: AmountFraction, Numerator: 1} }},
		{"unordered sections", func(r *Recipe) { r.IngredientSections[1].Position = 0 }},
		{"section past end", func(r *Recipe) { r.InstructionSections[0].Position = 3 }},
		{"unnamed section", func(r *Recipe) { r.IngredientSections[0].Name = "" }},
		{"negative servings", func(r *Recipe) { r.Servings = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := sample()
			tt.mutate(r)
			if err := r.Validate(); err == nil {
				t.Error("Validate succeeded, want error")
			}
		})
	}
}
