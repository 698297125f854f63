package serializer

import (
	"fmt"

	"github.com/gubarz/mmconv/internal/recipe"
	"github.com/gubarz/mmconv/internal/units"
)

// IngredientDocument is the interchange form of an ingredient. Quantity and
// UnitName are derived on write and ignored on read.
type IngredientDocument struct {
	Amount   recipe.Amount `json:"amount" yaml:"amount"`
	Quantity string        `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Unit     string        `json:"unit" yaml:"unit"`
	UnitName string        `json:"unit_name,omitempty" yaml:"unit_name,omitempty"`
	Text     string        `json:"text" yaml:"text"`
}

// RecipeDocument is the interchange form of a recipe.
type RecipeDocument struct {
	Title               string               `json:"title" yaml:"title"`
	Categories          []string             `json:"categories" yaml:"categories"`
	Servings            int                  `json:"servings" yaml:"servings"`
	ServingsUnit        string               `json:"servings_unit" yaml:"servings_unit"`
	Ingredients         []IngredientDocument `json:"ingredients" yaml:"ingredients"`
	IngredientSections  []recipe.Section     `json:"ingredient_sections,omitempty" yaml:"ingredient_sections,omitempty"`
	Instructions        []string             `json:"instructions" yaml:"instructions"`
	InstructionSections []recipe.Section     `json:"instruction_sections,omitempty" yaml:"instruction_sections,omitempty"`
}

// NewDocument converts r, naming units with tr. A nil tr leaves names in
// English.
func NewDocument(r *recipe.Recipe, tr units.Translator) RecipeDocument {
	doc := RecipeDocument{
		Title:               r.Title,
		Categories:          append([]string{}, r.Categories...),
		Servings:            r.Servings,
		ServingsUnit:        r.ServingsUnit,
		Ingredients:         make([]IngredientDocument, len(r.Ingredients)),
		IngredientSections:  append([]recipe.Section(nil), r.IngredientSections...),
		Instructions:        append([]string{}, r.Instructions...),
		InstructionSections: append([]recipe.Section(nil), r.InstructionSections...),
	}
	for i, ing := range r.Ingredients {
		doc.Ingredients[i] = IngredientDocument{
			Amount:   ing.Amount,
			Quantity: ing.Amount.String(),
			Unit:     ing.Unit,
			UnitName: units.DisplayName(ing.Unit, tr),
			Text:     ing.Text,
		}
	}
	return doc
}

// NewDocuments converts every recipe with NewDocument.
func NewDocuments(rs []*recipe.Recipe, tr units.Translator) []RecipeDocument {
	docs := make([]RecipeDocument, len(rs))
	for i, r := range rs {
		docs[i] = NewDocument(r, tr)
	}
	return docs
}

// Recipe converts the document back and validates the result.
func (d RecipeDocument) Recipe() (*recipe.Recipe, error) {
	r := recipe.New(d.Title)
	r.Categories = append(r.Categories, d.Categories...)
	r.Servings = d.Servings
	r.ServingsUnit = d.ServingsUnit
	for _, ing := range d.Ingredients {
		r.Ingredients = append(r.Ingredients, recipe.Ingredient{
			Amount: ing.Amount,
			Unit:   units.Field(ing.Unit),
			Text:   ing.Text,
		})
	}
	r.IngredientSections = append(r.IngredientSections, d.IngredientSections...)
	r.Instructions = append(r.Instructions, d.Instructions...)
	r.InstructionSections = append(r.InstructionSections, d.InstructionSections...)

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("recipe %q: %w", d.Title, err)
	}
	return r, nil
}

// ReadRecipes decodes a list of recipe documents and converts each one.
func ReadRecipes(r *Reader) ([]*recipe.Recipe, error) {
	var docs []RecipeDocument
	if err := r.Deserialize(&docs); err != nil {
		return nil, err
	}
	out := make([]*recipe.Recipe, 0, len(docs))
	for _, doc := range docs {
		rec, err := doc.Recipe()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
