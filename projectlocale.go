package pontoon

import (
	"fmt"

	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/locale"
	"github.com/Endeer/pontoon/project"
	"github.com/Endeer/pontoon/projectlocale"
)

// ProjectLocale is the localization of one project into one locale.
type ProjectLocale struct {
	config `json:"-"`
	// ID is a surrogate key; the (ProjectID, LocaleID) pair is unique.
	ID int `json:"id,omitempty"`
	// ProjectID holds the value of the "project_id" field.
	ProjectID int `json:"project_id,omitempty"`
	// LocaleID holds the value of the "locale_id" field.
	LocaleID int `json:"locale_id,omitempty"`
	Stats
	// Edges holds the relations/edges for other nodes in the graph.
	// The values are being populated by the ProjectLocaleQuery when eager-loading is set.
	Edges ProjectLocaleEdges `json:"edges"`
}

// ProjectLocaleEdges holds the relations/edges for other nodes in the graph.
type ProjectLocaleEdges struct {
	// Project holds the value of the project edge.
	Project *Project `json:"project,omitempty"`
	// Locale holds the value of the locale edge.
	Locale *Locale `json:"locale,omitempty"`
	// loadedTypes holds the information for reporting if a
	// type was loaded (or requested) in eager-loading or not.
	loadedTypes [2]bool
}

// ProjectOrErr returns the Project value or an error if the edge
// was not loaded in eager-loading, or loaded but was not found.
func (e ProjectLocaleEdges) ProjectOrErr() (*Project, error) {
	if e.loadedTypes[0] {
		if e.Project == nil {
			return nil, NewNotFoundError(project.Label)
		}
		return e.Project, nil
	}
	return nil, NewNotLoadedError(projectlocale.EdgeProject)
}

// LocaleOrErr returns the Locale value or an error if the edge
// was not loaded in eager-loading, or loaded but was not found.
func (e ProjectLocaleEdges) LocaleOrErr() (*Locale, error) {
	if e.loadedTypes[1] {
		if e.Locale == nil {
			return nil, NewNotFoundError(locale.Label)
		}
		return e.Locale, nil
	}
	return nil, NewNotLoadedError(projectlocale.EdgeLocale)
}

// QueryProject queries the "project" edge of the ProjectLocale entity.
func (pl *ProjectLocale) QueryProject() *ProjectQuery {
	return (&ProjectQuery{config: pl.config}).Where(project.ID.EQ(pl.ProjectID))
}

// QueryLocale queries the "locale" edge of the ProjectLocale entity.
func (pl *ProjectLocale) QueryLocale() *LocaleQuery {
	return (&LocaleQuery{config: pl.config}).Where(locale.ID.EQ(pl.LocaleID))
}

// String implements the fmt.Stringer.
func (pl *ProjectLocale) String() string {
	return fmt.Sprintf("ProjectLocale(id=%d, project_id=%d, locale_id=%d)", pl.ID, pl.ProjectID, pl.LocaleID)
}

// scanProjectLocale reads one row laid out as projectlocale.Columns.
func scanProjectLocale(rows sql.ColumnScanner) (*ProjectLocale, error) {
	var pl ProjectLocale
	dest := append([]any{&pl.ID, &pl.ProjectID, &pl.LocaleID}, pl.Stats.scanDest()...)
	if err := rows.Scan(dest...); err != nil {
		return nil, err
	}
	return &pl, nil
}
