// Package locale holds the table layout and predicates of the Locale entity.
package locale

import (
	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/predicate"
)

const (
	// Label holds the string label denoting the locale type in the database.
	Label = "locale"
	// Table holds the table name of the locale in the database.
	Table = "locales"

	FieldID                   = "id"
	FieldName                 = "name"
	FieldCode                 = "code"
	FieldDirection            = "direction"
	FieldCldrPlurals          = "cldr_plurals"
	FieldPluralRule           = "plural_rule"
	FieldScript               = "script"
	FieldPopulation           = "population"
	FieldTotalStrings         = "total_strings"
	FieldApprovedStrings      = "approved_strings"
	FieldPretranslatedStrings = "pretranslated_strings"
	FieldStringsWithErrors    = "strings_with_errors"
	FieldStringsWithWarnings  = "strings_with_warnings"
	FieldUnreviewedStrings    = "unreviewed_strings"
	FieldGoogleTranslateCode  = "google_translate_code"
	FieldMsTranslatorCode     = "ms_translator_code"
	FieldSystranTranslateCode = "systran_translate_code"
	FieldMsTerminologyCode    = "ms_terminology_code"

	// EdgeLocalizations holds the string denoting the localizations edge name.
	EdgeLocalizations = "localizations"
)

// Columns holds all SQL columns for locale fields, in scan order.
var Columns = []string{
	FieldID,
	FieldName,
	FieldCode,
	FieldDirection,
	FieldCldrPlurals,
	FieldPluralRule,
	FieldScript,
	FieldPopulation,
	FieldTotalStrings,
	FieldApprovedStrings,
	FieldPretranslatedStrings,
	FieldStringsWithErrors,
	FieldStringsWithWarnings,
	FieldUnreviewedStrings,
	FieldGoogleTranslateCode,
	FieldMsTranslatorCode,
	FieldSystranTranslateCode,
	FieldMsTerminologyCode,
}

// Typed columns used to build predicates.
var (
	ID   = sql.IntField[predicate.Locale](Table + "." + FieldID)
	Code = sql.StringField[predicate.Locale](Table + "." + FieldCode)
	Name = sql.StringField[predicate.Locale](Table + "." + FieldName)
)
