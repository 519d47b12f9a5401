package pontoon

import (
	"fmt"
	"time"

	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/project"
	"github.com/Endeer/pontoon/projectlocale"
	"github.com/Endeer/pontoon/tag"
)

// DateLayout is the layout of date-only columns such as the project deadline.
const DateLayout = "2006-01-02"

// Project is the model entity for the Project schema.
type Project struct {
	config `json:"-"`
	// ID of the project.
	ID int `json:"id,omitempty"`
	// Name holds the value of the "name" field.
	Name string `json:"name,omitempty"`
	// Slug holds the value of the "slug" field. Unique.
	Slug string `json:"slug,omitempty"`
	// Disabled holds the value of the "disabled" field.
	Disabled bool `json:"disabled,omitempty"`
	// SyncDisabled holds the value of the "sync_disabled" field.
	SyncDisabled bool `json:"sync_disabled,omitempty"`
	// PretranslationEnabled holds the value of the "pretranslation_enabled" field.
	PretranslationEnabled bool `json:"pretranslation_enabled,omitempty"`
	// Visibility is either project.VisibilityPublic or project.VisibilityPrivate.
	Visibility string `json:"visibility,omitempty"`
	// SystemProject marks internal projects hidden by default.
	SystemProject bool `json:"system_project,omitempty"`
	// Info holds the value of the "info" field.
	Info string `json:"info,omitempty"`
	// Deadline holds the value of the "deadline" field. Date only, UTC.
	Deadline *time.Time `json:"deadline,omitempty"`
	// Priority holds the value of the "priority" field.
	Priority int `json:"priority,omitempty"`
	// Contact holds the value of the "contact" field.
	Contact *string `json:"contact,omitempty"`
	Stats
	// Edges holds the relations/edges for other nodes in the graph.
	// The values are being populated by the ProjectQuery when eager-loading is set.
	Edges ProjectEdges `json:"edges"`
}

// ProjectEdges holds the relations/edges for other nodes in the graph.
type ProjectEdges struct {
	// Localizations holds the value of the localizations edge.
	Localizations []*ProjectLocale `json:"localizations,omitempty"`
	// Tags holds the value of the tags edge.
	Tags []*Tag `json:"tags,omitempty"`
	// loadedTypes holds the information for reporting if a
	// type was loaded (or requested) in eager-loading or not.
	loadedTypes [2]bool
}

// LocalizationsOrErr returns the Localizations value or an error if the edge
// was not loaded in eager-loading.
func (e ProjectEdges) LocalizationsOrErr() ([]*ProjectLocale, error) {
	if e.loadedTypes[0] {
		return e.Localizations, nil
	}
	return nil, NewNotLoadedError(project.EdgeLocalizations)
}

// TagsOrErr returns the Tags value or an error if the edge
// was not loaded in eager-loading.
func (e ProjectEdges) TagsOrErr() ([]*Tag, error) {
	if e.loadedTypes[1] {
		return e.Tags, nil
	}
	return nil, NewNotLoadedError(project.EdgeTags)
}

// QueryLocalizations queries the "localizations" edge of the Project entity.
func (p *Project) QueryLocalizations() *ProjectLocaleQuery {
	return (&ProjectLocaleQuery{config: p.config}).Where(projectlocale.ProjectID.EQ(p.ID))
}

// QueryTags queries the "tags" edge of the Project entity.
func (p *Project) QueryTags() *TagQuery {
	return (&TagQuery{config: p.config}).Where(tag.ProjectID.EQ(p.ID))
}

// String implements the fmt.Stringer.
func (p *Project) String() string {
	return fmt.Sprintf("Project(id=%d, slug=%s, visibility=%s, disabled=%t, system_project=%t)",
		p.ID, p.Slug, p.Visibility, p.Disabled, p.SystemProject)
}

// scanProject reads one row laid out as project.Columns.
func scanProject(rows sql.ColumnScanner) (*Project, error) {
	var (
		p        Project
		deadline sql.NullString
		contact  sql.NullString
	)
	dest := []any{
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.Disabled,
		&p.SyncDisabled,
		&p.PretranslationEnabled,
		&p.Visibility,
		&p.SystemProject,
		&p.Info,
		&deadline,
		&p.Priority,
		&contact,
	}
	if err := rows.Scan(append(dest, p.Stats.scanDest()...)...); err != nil {
		return nil, err
	}
	if deadline.Valid {
		d, err := ParseDate(deadline.String)
		if err != nil {
			return nil, fmt.Errorf("project %q deadline: %w", p.Slug, err)
		}
		p.Deadline = &d
	}
	if contact.Valid {
		p.Contact = &contact.String
	}
	return &p, nil
}

// ParseDate parses the date part of a stored date or timestamp value.
// Drivers return dates either as "2006-01-02" or as a full RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	return time.Parse(DateLayout, s)
}
