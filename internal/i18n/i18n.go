// Package i18n builds unit translators from message catalogs.
package i18n

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/gubarz/mmconv/internal/units"
)

// german holds the unit names keyed by their canonical English name.
var german = map[string]string{
	"per serving": "pro Portion",
	"small":       "klein",
	"medium":      "mittel",
	"large":       "groß",
	"can":         "Dose",
	"package":     "Packung",
	"pinch":       "Prise",
	"drop":        "Tropfen",
	"dash":        "Spritzer",
	"carton":      "Karton",
	"bunch":       "Bund",
	"slice":       "Scheibe",
	"each":        "Stück",
	"teaspoon":    "Teelöffel",
	"tablespoon":  "Esslöffel",
	"fluid ounce": "Flüssigunze",
	"cup":         "Tasse",
	"pint":        "Pint",
	"quart":       "Quart",
	"gallon":      "Gallone",
	"ounce":       "Unze",
	"pound":       "Pfund",
	"milliliter":  "Milliliter",
	"cubic cm":    "Kubikzentimeter",
	"centiliter":  "Zentiliter",
	"deciliter":   "Deziliter",
	"liter":       "Liter",
	"milligram":   "Milligramm",
	"centigram":   "Zentigramm",
	"decigram":    "Dezigramm",
	"gram":        "Gramm",
	"kilogram":    "Kilogramm",
}

// Supported lists the languages with a catalog. English is the source
// language and needs none.
var Supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(Supported)

// Match returns the supported language closest to a BCP 47 string such as
// "de-AT". Anything unrecognised matches English.
func Match(lang string) language.Tag {
	_, i := language.MatchStrings(matcher, lang)
	return Supported[i]
}

func newCatalog() (*catalog.Builder, error) {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, msg := range german {
		if err := b.SetString(language.German, key, msg); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// NewTranslator returns a translator for lang. English, and any language
// without a catalog, yields units.Identity.
func NewTranslator(lang string) (units.Translator, error) {
	tag := Match(lang)
	if tag == language.English {
		return units.Identity, nil
	}

	cat, err := newCatalog()
	if err != nil {
		return nil, err
	}
	p := message.NewPrinter(tag, message.Catalog(cat))

	// Printers keep formatting state between calls.
	var mu sync.Mutex
	return func(namespace, key string) string {
		if namespace != units.Namespace {
			return key
		}
		mu.Lock()
		defer mu.Unlock()
		return p.Sprintf(message.Key(key, key))
	}, nil
}
