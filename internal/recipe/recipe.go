// Package recipe defines the recipe model shared by the MealMaster parser and
// exporter. Collaborators that edit a recipe go through the helpers in
// sections.go so that section markers stay aligned with their lists.
package recipe

import "errors"

// Sentinel errors returned by the mutation helpers.
var (
	ErrOutOfRange       = errors.New("position out of range")
	ErrEmptySectionName = errors.New("section name is empty")
	ErrSectionExists    = errors.New("a section already starts at this position")
)

// Ingredient is one line of the ingredient list.
type Ingredient struct {
	Amount Amount `json:"amount" yaml:"amount"`
	Unit   string `json:"unit" yaml:"unit"` // two-character MealMaster code, kept verbatim when unknown
	Text   string `json:"text" yaml:"text"`
}

// Section marks that a section named Name begins immediately before the
// element at Position.
type Section struct {
	Position int    `json:"position" yaml:"position"`
	Name     string `json:"name" yaml:"name"`
}

// Recipe is a complete recipe. Categories keep file order and duplicates.
// Instructions hold one logical paragraph line each; "" is a deliberate
// blank line.
type Recipe struct {
	Title               string       `json:"title" yaml:"title"`
	Categories          []string     `json:"categories" yaml:"categories"`
	Servings            int          `json:"servings" yaml:"servings"`
	ServingsUnit        string       `json:"servings_unit" yaml:"servings_unit"`
	Ingredients         []Ingredient `json:"ingredients" yaml:"ingredients"`
	IngredientSections  []Section    `json:"ingredient_sections,omitempty" yaml:"ingredient_sections,omitempty"`
	Instructions        []string     `json:"instructions" yaml:"instructions"`
	InstructionSections []Section    `json:"instruction_sections,omitempty" yaml:"instruction_sections,omitempty"`
}

// New returns an empty recipe with the given title.
func New(title string) *Recipe {
	return &Recipe{
		Title:        title,
		Categories:   []string{},
		Ingredients:  []Ingredient{},
		Instructions: []string{},
	}
}

// SectionAt returns the name of the section containing element i of a list
// partitioned by sections, or "" for the unnamed leading run.
func SectionAt(sections []Section, i int) string {
	name := ""
	for _, s := range sections {
		if s.Position > i {
			break
		}
		name = s.Name
	}
	return name
}
