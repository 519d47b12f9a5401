// Package tag holds the table layout and predicates of the Tag entity.
package tag

import (
	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/predicate"
)

const (
	// Label holds the string label denoting the tag type in the database.
	Label = "tag"
	// Table holds the table name of the tag in the database.
	Table = "tags"

	FieldID        = "id"
	FieldProjectID = "project_id"
	FieldSlug      = "slug"
	FieldName      = "name"
	FieldPriority  = "priority"
)

// Columns holds all SQL columns for tag fields, in scan order.
var Columns = []string{
	FieldID,
	FieldProjectID,
	FieldSlug,
	FieldName,
	FieldPriority,
}

// Typed columns used to build predicates.
var (
	ID        = sql.IntField[predicate.Tag](Table + "." + FieldID)
	ProjectID = sql.IntField[predicate.Tag](Table + "." + FieldProjectID)
	Slug      = sql.StringField[predicate.Tag](Table + "." + FieldSlug)
)
