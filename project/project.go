// Package project holds the table layout and predicates of the Project entity.
package project

import (
	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/predicate"
)

const (
	// Label holds the string label denoting the project type in the database.
	Label = "project"
	// Table holds the table name of the project in the database.
	Table = "projects"

	FieldID                    = "id"
	FieldName                  = "name"
	FieldSlug                  = "slug"
	FieldDisabled              = "disabled"
	FieldSyncDisabled          = "sync_disabled"
	FieldPretranslationEnabled = "pretranslation_enabled"
	FieldVisibility            = "visibility"
	FieldSystemProject         = "system_project"
	FieldInfo                  = "info"
	FieldDeadline              = "deadline"
	FieldPriority              = "priority"
	FieldContact               = "contact"
	FieldTotalStrings          = "total_strings"
	FieldApprovedStrings       = "approved_strings"
	FieldPretranslatedStrings  = "pretranslated_strings"
	FieldStringsWithErrors     = "strings_with_errors"
	FieldStringsWithWarnings   = "strings_with_warnings"
	FieldUnreviewedStrings     = "unreviewed_strings"

	// EdgeLocalizations holds the string denoting the localizations edge name.
	EdgeLocalizations = "localizations"
	// EdgeTags holds the string denoting the tags edge name.
	EdgeTags = "tags"
)

// Visibility classifications of a project.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Columns holds all SQL columns for project fields, in scan order.
var Columns = []string{
	FieldID,
	FieldName,
	FieldSlug,
	FieldDisabled,
	FieldSyncDisabled,
	FieldPretranslationEnabled,
	FieldVisibility,
	FieldSystemProject,
	FieldInfo,
	FieldDeadline,
	FieldPriority,
	FieldContact,
	FieldTotalStrings,
	FieldApprovedStrings,
	FieldPretranslatedStrings,
	FieldStringsWithErrors,
	FieldStringsWithWarnings,
	FieldUnreviewedStrings,
}

// Typed columns used to build predicates.
var (
	ID            = sql.IntField[predicate.Project](Table + "." + FieldID)
	Slug          = sql.StringField[predicate.Project](Table + "." + FieldSlug)
	Name          = sql.StringField[predicate.Project](Table + "." + FieldName)
	Disabled      = sql.BoolField[predicate.Project](Table + "." + FieldDisabled)
	SystemProject = sql.BoolField[predicate.Project](Table + "." + FieldSystemProject)
	Visibility    = sql.StringField[predicate.Project](Table + "." + FieldVisibility)
)
