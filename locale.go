package pontoon

import (
	"fmt"

	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/locale"
	"github.com/Endeer/pontoon/projectlocale"
)

// Locale is the model entity for the Locale schema.
type Locale struct {
	config `json:"-"`
	// ID of the locale.
	ID int `json:"id,omitempty"`
	// Name holds the value of the "name" field.
	Name string `json:"name,omitempty"`
	// Code holds the value of the "code" field. Unique.
	Code string `json:"code,omitempty"`
	// Direction is the text direction, "ltr" or "rtl".
	Direction string `json:"direction,omitempty"`
	// CldrPlurals is a comma-separated list of CLDR plural category indexes.
	CldrPlurals string `json:"cldr_plurals,omitempty"`
	// PluralRule holds the value of the "plural_rule" field.
	PluralRule string `json:"plural_rule,omitempty"`
	// Script holds the value of the "script" field.
	Script string `json:"script,omitempty"`
	// Population holds the value of the "population" field.
	Population int `json:"population,omitempty"`
	Stats
	GoogleTranslateCode  string `json:"google_translate_code,omitempty"`
	MsTranslatorCode     string `json:"ms_translator_code,omitempty"`
	SystranTranslateCode string `json:"systran_translate_code,omitempty"`
	MsTerminologyCode    string `json:"ms_terminology_code,omitempty"`
	// Edges holds the relations/edges for other nodes in the graph.
	// The values are being populated by the LocaleQuery when eager-loading is set.
	Edges LocaleEdges `json:"edges"`
}

// LocaleEdges holds the relations/edges for other nodes in the graph.
type LocaleEdges struct {
	// Localizations holds the value of the localizations edge.
	Localizations []*ProjectLocale `json:"localizations,omitempty"`
	// loadedTypes holds the information for reporting if a
	// type was loaded (or requested) in eager-loading or not.
	loadedTypes [1]bool
}

// LocalizationsOrErr returns the Localizations value or an error if the edge
// was not loaded in eager-loading.
func (e LocaleEdges) LocalizationsOrErr() ([]*ProjectLocale, error) {
	if e.loadedTypes[0] {
		return e.Localizations, nil
	}
	return nil, NewNotLoadedError(locale.EdgeLocalizations)
}

// QueryLocalizations queries the "localizations" edge of the Locale entity.
func (l *Locale) QueryLocalizations() *ProjectLocaleQuery {
	return (&ProjectLocaleQuery{config: l.config}).Where(projectlocale.LocaleID.EQ(l.ID))
}

// String implements the fmt.Stringer.
func (l *Locale) String() string {
	return fmt.Sprintf("Locale(id=%d, code=%s, name=%s)", l.ID, l.Code, l.Name)
}

// scanLocale reads one row laid out as locale.Columns.
func scanLocale(rows sql.ColumnScanner) (*Locale, error) {
	var l Locale
	dest := []any{
		&l.ID,
		&l.Name,
		&l.Code,
		&l.Direction,
		&l.CldrPlurals,
		&l.PluralRule,
		&l.Script,
		&l.Population,
	}
	dest = append(dest, l.Stats.scanDest()...)
	dest = append(dest,
		&l.GoogleTranslateCode,
		&l.MsTranslatorCode,
		&l.SystranTranslateCode,
		&l.MsTerminologyCode,
	)
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return &l, nil
}
