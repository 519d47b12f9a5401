package pontoon

import (
	"fmt"

	"github.com/Endeer/pontoon/dialect/sql"
)

// Tag is the model entity for the Tag schema.
type Tag struct {
	config `json:"-"`
	// ID of the tag.
	ID int `json:"id,omitempty"`
	// ProjectID holds the value of the "project_id" field.
	ProjectID int `json:"project_id,omitempty"`
	// Slug holds the value of the "slug" field. Unique within the project.
	Slug string `json:"slug,omitempty"`
	// Name holds the value of the "name" field.
	Name string `json:"name,omitempty"`
	// Priority holds the value of the "priority" field. Optional.
	Priority *int `json:"priority,omitempty"`
}

// String implements the fmt.Stringer.
func (t *Tag) String() string {
	return fmt.Sprintf("Tag(id=%d, project_id=%d, slug=%s)", t.ID, t.ProjectID, t.Slug)
}

// scanTag reads one row laid out as tag.Columns.
func scanTag(rows sql.ColumnScanner) (*Tag, error) {
	var (
		t        Tag
		priority sql.NullInt64
	)
	if err := rows.Scan(&t.ID, &t.ProjectID, &t.Slug, &t.Name, &priority); err != nil {
		return nil, err
	}
	if priority.Valid {
		v := int(priority.Int64)
		t.Priority = &v
	}
	return &t, nil
}
