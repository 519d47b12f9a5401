// Package projectlocale holds the table layout and predicates of the
// ProjectLocale join entity.
package projectlocale

import (
	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/predicate"
)

const (
	// Label holds the string label denoting the projectlocale type in the database.
	Label = "project_locale"
	// Table holds the table name of the projectlocale in the database.
	Table = "project_locales"

	FieldID                   = "id"
	FieldProjectID            = "project_id"
	FieldLocaleID             = "locale_id"
	FieldTotalStrings         = "total_strings"
	FieldApprovedStrings      = "approved_strings"
	FieldPretranslatedStrings = "pretranslated_strings"
	FieldStringsWithErrors    = "strings_with_errors"
	FieldStringsWithWarnings  = "strings_with_warnings"
	FieldUnreviewedStrings    = "unreviewed_strings"

	// EdgeProject holds the string denoting the project edge name.
	EdgeProject = "project"
	// EdgeLocale holds the string denoting the locale edge name.
	EdgeLocale = "locale"
)

// Columns holds all SQL columns for projectlocale fields, in scan order.
var Columns = []string{
	FieldID,
	FieldProjectID,
	FieldLocaleID,
	FieldTotalStrings,
	FieldApprovedStrings,
	FieldPretranslatedStrings,
	FieldStringsWithErrors,
	FieldStringsWithWarnings,
	FieldUnreviewedStrings,
}

// Typed columns used to build predicates.
var (
	ID        = sql.IntField[predicate.ProjectLocale](Table + "." + FieldID)
	ProjectID = sql.IntField[predicate.ProjectLocale](Table + "." + FieldProjectID)
	LocaleID  = sql.IntField[predicate.ProjectLocale](Table + "." + FieldLocaleID)
)
