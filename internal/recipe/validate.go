package recipe

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks the model invariants: positive amount fields, non-empty
// ingredient text, named sections with strictly increasing positions and no
// empty runs.
func (r Recipe) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Servings, validation.Min(0)),
		validation.Field(&r.Ingredients),
		validation.Field(&r.IngredientSections, validation.By(sectionsWithin(len(r.Ingredients)))),
		validation.Field(&r.InstructionSections, validation.By(sectionsWithin(len(r.Instructions)))),
	)
}

// Validate implements validation.Validatable.
func (i Ingredient) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.Amount),
		validation.Field(&i.Unit, validation.Length(2, 2)),
		validation.Field(&i.Text, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (s Section) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Position, validation.Min(0)),
		validation.Field(&s.Name, validation.Required),
	)
}

// Validate checks that exactly the fields belonging to Kind are populated and
// positive.
func (a Amount) Validate() error {
	whole := a.Kind == AmountInteger || a.Kind == AmountMixed
	fraction := a.Kind == AmountFraction || a.Kind == AmountMixed
	decimal := a.Kind == AmountDecimal

	return validation.ValidateStruct(&a,
		validation.Field(&a.Kind, validation.In(AmountNone, AmountInteger, AmountFraction, AmountMixed, AmountDecimal)),
		validation.Field(&a.Whole,
			validation.When(whole, validation.Required, validation.Min(1)).Else(validation.Empty)),
		validation.Field(&a.Numerator,
			validation.When(fraction, validation.Required, validation.Min(1)).Else(validation.Empty)),
		validation.Field(&a.Denominator,
			validation.When(fraction, validation.Required, validation.Min(1)).Else(validation.Empty)),
		validation.Field(&a.Value,
			validation.When(decimal, validation.Required, validation.Min(0.0).Exclusive()).Else(validation.Empty)),
	)
}

func sectionsWithin(n int) validation.RuleFunc {
	return func(value any) error {
		sections, _ := value.([]Section)
		// Strictly increasing positions below n leave no empty run.
		prev := -1
		for _, s := range sections {
			if s.Position <= prev {
				return validation.NewError("recipe_section_order", "section positions must be strictly increasing")
			}
			if s.Position >= n {
				return validation.NewError("recipe_section_range", "section position is past the last element")
			}
			prev = s.Position
		}
		return nil
	}
}
