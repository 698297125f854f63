package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gubarz/mmconv/internal/recipe"
)

func sampleRecipe() *recipe.Recipe {
	r := recipe.New("apple pie")
	r.Categories = []string{"pastries", "cakes", "cakes"}
	r.Servings = 4
	r.ServingsUnit = "servings"
	r.Ingredients = []recipe.Ingredient{
		{Amount: recipe.Integer(250), Unit: "g ", Text: "brown flour"},
		{Amount: recipe.Mixed(1, 1, 2), Unit: "c ", Text: "sugar"},
		{Amount: recipe.Decimal(2.5), Unit: "  ", Text: "apples"},
		{Amount: recipe.NoAmount(), Unit: "zz", Text: "secret"},
	}
	r.IngredientSections = []recipe.Section{{Position: 2, Name: "filling"}}
	r.Instructions = []string{"Mix.", "", "Bake."}
	r.InstructionSections = []recipe.Section{{Position: 0, Name: "method"}}
	return r
}

func TestFormat(t *testing.T) {
	assert.False(t, FormatJSON.IsUnknown())
	assert.False(t, FormatYAML.IsUnknown())
	assert.True(t, Format("table").IsUnknown())
	assert.Equal(t, []string{"json", "yaml"}, SupportedFormats())

	assert.Equal(t, FormatJSON, FormatFromPath("out/Recipes.JSON"))
	assert.Equal(t, FormatYAML, FormatFromPath("recipes.yml"))
	assert.Equal(t, FormatYAML, FormatFromPath("recipes.txt"))
}

func TestNewDocument(t *testing.T) {
	german := func(namespace, key string) string {
		if key == "gram" {
			return "Gramm"
		}
		return key
	}
	doc := NewDocument(sampleRecipe(), german)

	require.Len(t, doc.Ingredients, 4)
	assert.Equal(t, "250", doc.Ingredients[0].Quantity)
	assert.Equal(t, "Gramm", doc.Ingredients[0].UnitName)
	assert.Equal(t, "1 1/2", doc.Ingredients[1].Quantity)
	assert.Equal(t, "cup", doc.Ingredients[1].UnitName)
	assert.Empty(t, doc.Ingredients[2].UnitName)
	assert.Empty(t, doc.Ingredients[3].UnitName, "unknown codes have no name")
	assert.Equal(t, "zz", doc.Ingredients[3].Unit)

	plain := NewDocument(sampleRecipe(), nil)
	assert.Equal(t, "gram", plain.Ingredients[0].UnitName)
	assert.Equal(t, "g ", plain.Ingredients[0].Unit)
}

func TestWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(FormatJSON, &buf)
	require.NoError(t, w.Serialize(context.Background(), NewDocuments([]*recipe.Recipe{sampleRecipe()}, nil)))

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, "apple pie", raw[0]["title"])

	ings, ok := raw[0]["ingredients"].([]any)
	require.True(t, ok)
	first, ok := ings[0].(map[string]any)
	require.True(t, ok)
	amount, ok := first["amount"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "integer", amount["kind"])
	assert.Equal(t, "gram", first["unit_name"])
}

func TestWriter_UnknownFormatFallsBack(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(Format("xml"), &buf)
	require.NoError(t, w.Serialize(context.Background(), map[string]int{"a": 1}))
	assert.Equal(t, "a: 1\n", buf.String())
}

func TestWriter_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewWriter(FormatJSON, &buf).Serialize(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, buf.Len())
}

func TestRoundTrip(t *testing.T) {
	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			want := []*recipe.Recipe{sampleRecipe(), sampleRecipe()}
			want[1].Title = "second"
			require.NoError(t, NewWriter(format, &buf).Serialize(context.Background(), NewDocuments(want, nil)))

			r, err := NewReader(format, &buf)
			require.NoError(t, err)
			got, err := ReadRecipes(r)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestFileWriterAndReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recipes.yaml")

	w, err := NewFileWriter(FormatFromPath(path), path)
	require.NoError(t, err)
	require.NoError(t, w.Serialize(context.Background(), NewDocuments([]*recipe.Recipe{sampleRecipe()}, nil)))
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: apple pie")

	r, err := NewFileReader(path)
	require.NoError(t, err)
	defer r.Close()
	got, err := ReadRecipes(r)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, sampleRecipe(), got[0])
}

func TestFileWriter_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "recipes.yaml")

	w, err := NewFileWriter(FormatYAML, path)
	require.Error(t, err)
	assert.Nil(t, w)
	assert.Contains(t, err.Error(), "failed to create output file")
	assert.NoFileExists(t, path)
}

func TestReader_Errors(t *testing.T) {
	_, err := NewReader(Format("table"), strings.NewReader(""))
	assert.Error(t, err)

	_, err = NewFileReader(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	r, err := NewReader(FormatJSON, strings.NewReader("{not json"))
	require.NoError(t, err)
	_, err = ReadRecipes(r)
	assert.ErrorContains(t, err, "failed to decode JSON")
}

func TestReadRecipes_Validates(t *testing.T) {
	doc := `- title: broken
  ingredients:
    - amount: {kind: integer, whole: 2}
      unit: ea
      text: ""
`
	r, err := NewReader(FormatYAML, strings.NewReader(doc))
	require.NoError(t, err)
	_, err = ReadRecipes(r)
	assert.ErrorContains(t, err, `recipe "broken"`)
}

func TestReadRecipes_PadsUnits(t *testing.T) {
	doc := `[{"title": "x", "ingredients": [{"amount": {"kind": "none"}, "unit": "c", "text": "milk"}], "instructions": []}]`
	r, err := NewReader(FormatJSON, strings.NewReader(doc))
	require.NoError(t, err)
	got, err := ReadRecipes(r)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "c ", got[0].Ingredients[0].Unit)
	assert.Equal(t, []string{}, got[0].Categories)
}
