package mealmaster

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/gubarz/mmconv/internal/recipe"
)

func TestBreakLine(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		head  string
		rest  string
	}{
		{"fits", "short text", 28, "short text", ""},
		{"29 characters", "abcdefghijklmnopqrstuvwxyzabc", 28, "abcdefghijklmnopqrstuvwxyzab", "c"},
		{"space at limit", "abcdefghijklmnopqrstuvwxyzab cd", 28, "abcdefghijklmnopqrstuvwxyzab", "cd"},
		{"last space wins", "one two three four five six seven", 28, "one two three four five six", "seven"},
		{"utf-8 sequence kept whole", strings.Repeat("a", 27) + "éa", 28, strings.Repeat("a", 27), "éa"},
		{"leading space is not a break", " " + strings.Repeat("b", 30), 28, " " + strings.Repeat("b", 27), "bbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, rest := breakLine(tt.text, tt.width)
			if head != tt.head || rest != tt.rest {
				t.Errorf("breakLine = %q, %q; want %q, %q", head, rest, tt.head, tt.rest)
			}
		})
	}
}

func exportSample() *recipe.Recipe {
	r := recipe.New("apple pie")
	r.Categories = []string{"pastries", "cakes"}
	r.Servings = 4
	r.ServingsUnit = "servings"
	r.Ingredients = []recipe.Ingredient{
		{Amount: recipe.Integer(250), Unit: "g ", Text: "brown flour"},
		{Amount: recipe.Mixed(1, 1, 2), Unit: "c ", Text: "sugar"},
		{Amount: recipe.Decimal(2.5), Unit: "", Text: "abcdefghijklmnopqrstuvwxyzabcdefg"},
	}
	r.IngredientSections = []recipe.Section{{Position: 1, Name: "topping"}}
	r.Instructions = []string{"Mix the flour.", "Add sugar.", "", "Cool.", "Bake."}
	r.InstructionSections = []recipe.Section{{Position: 4, Name: "baking"}}
	return r
}

func TestExport(t *testing.T) {
	want := strings.Join([]string{
		"MMMMM----------------Meal-Master recipe exported by mmconv------------------",
		"",
		"      Title: apple pie",
		" Categories: pastries, cakes",
		"      Yield: 4 servings",
		"",
		"    250 g  brown flour",
		"",
		"MMMMM" + strings.Repeat("-", 32) + "topping" + strings.Repeat("-", 32),
		"  1 1/2 c  sugar",
		"    2.5    abcdefghijklmnopqrstuvwxyzab",
		"           -cdefg",
		"",
		"  Mix the flour.",
		"  :Add sugar.",
		"",
		"  Cool.",
		"",
		"MMMMM" + strings.Repeat("-", 32) + "baking" + strings.Repeat("-", 33),
		"  Bake.",
		"",
		"MMMMM",
	}, "\r\n")

	got := Export(exportSample())
	if diff := cmp.Diff(strings.Split(want, "\r\n"), strings.Split(got, "\r\n")); diff != "" {
		t.Errorf("Export mismatch (-want +got):\n%s", diff)
	}
}

func TestExportEdgeCases(t *testing.T) {
	t.Run("empty recipe", func(t *testing.T) {
		got := NewExporter(WithProgram("kitchen")).Export(recipe.New(""))
		want := "MMMMM----------------Meal-Master recipe exported by kitchen-----------------\r\n" +
			"\r\n      Title: \r\n Categories: \r\n      Yield: 0 \r\n\r\nMMMMM"
		if got != want {
			t.Errorf("Export = %q, want %q", got, want)
		}
	})

	t.Run("overlong amount is truncated", func(t *testing.T) {
		if got := amountField(recipe.Mixed(12, 11, 16)); got != "12 11/1" {
			t.Errorf("amountField = %q", got)
		}
		if got := amountField(recipe.NoAmount()); got != "       " {
			t.Errorf("amountField = %q", got)
		}
	})

	t.Run("ingredient without text keeps its line", func(t *testing.T) {
		r := recipe.New("x")
		r.Ingredients = []recipe.Ingredient{{Amount: recipe.Integer(1), Unit: "ea"}, {Amount: recipe.Integer(2), Unit: "ea", Text: "eggs"}}
		got := Export(r)
		if !strings.Contains(got, "      1 ea \r\n      2 ea eggs\r\n") {
			t.Errorf("Export = %q", got)
		}
	})

	t.Run("forced instruction wraps at 74", func(t *testing.T) {
		r := recipe.New("x")
		long := strings.Repeat("word ", 20) + "end"
		r.Instructions = []string{"First.", long}
		lines := strings.Split(Export(r), "\r\n")
		// Six header lines precede the instructions.
		body := lines[6:9]
		if len(body) != 3 {
			t.Fatalf("instruction lines = %q", body)
		}
		if !strings.HasPrefix(body[1], "  :word") || len(body[1]) > 2+1+74 {
			t.Errorf("forced line = %q", body[1])
		}
		if strings.HasPrefix(body[2], "  :") {
			t.Errorf("wrapped line carries a marker: %q", body[2])
		}
	})

	t.Run("section line", func(t *testing.T) {
		if got := sectionLine("abc"); len(got) != 5+71 || !strings.HasPrefix(got, "MMMMM"+strings.Repeat("-", 34)+"abc") {
			t.Errorf("sectionLine = %q", got)
		}
	})
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	if err := NewExporter().WriteTo(&buf, exportSample()); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.String() != Export(exportSample()) {
		t.Error("WriteTo output differs from Export")
	}
}

func TestExportRoundTrip(t *testing.T) {
	i := func(amount, unit, text string) string { return rec(amount, unit, text) }
	doc := mm(
		cont("Contributed by A. Cook"),
		i("250", "g", "brown flour; sifted"),
		i("1", "ea", "finely chopped fresh flat leaf parsley leaves"),
		i("1", "ea", "abcdefghijklmnopqrstuvwxyzabcdefgh"),
		"",
		"MMMMM-----------------------------FILLING-----------------------------",
		pair(i("3", "lg", "apples"), i("1/2", "ts", "cinnamon")),
		pair(i("2.5", "T", "butter"), i("1 1/2", "c", "brown sugar,")),
		pair("", cont("firmly packed")),
		i("", "", "salt"),
		"",
		"  Preheat the oven and butter a deep pie dish, then roll out the pastry so that it",
		"  overhangs the rim.",
		"  :Peel and slice the apples.",
		"",
		"MMMMM-----------------------------TO SERVE-----------------------------",
		"       Dust with sugar.",
		"",
		"  Serve warm.",
		"MMMMM",
	)

	first := mustParse(t, doc)
	if len(first.Ingredients) != 9 {
		t.Fatalf("parsed %d ingredients: %q", len(first.Ingredients), texts(first))
	}

	second := mustParse(t, Export(first))
	if diff := cmp.Diff(first, second, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s", diff)
	}

	third := Export(second)
	if third != Export(first) {
		t.Error("second export differs from the first")
	}
}

func TestExportRoundTripWrappedText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"word ending at the description width", "2 large onions, finely diced and sauteed"},
		{"hard break", "abcdefghijklmnopqrstuvwxyzabcdefgh"},
		{"multibyte rune at the break", strings.Repeat("a", 27) + "éclair pastry"},
		{"several pieces", "2 large onions, finely diced and sauteed in butter until golden brown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := recipe.New("onion tart")
			r.Categories = []string{"tarts"}
			r.Servings = 2
			r.ServingsUnit = "servings"
			r.Ingredients = []recipe.Ingredient{{Amount: recipe.Integer(1), Unit: "ea", Text: tt.text}}

			got := mustParse(t, Export(r))
			if diff := cmp.Diff(r.Ingredients, got.Ingredients); diff != "" {
				t.Errorf("ingredients mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
