// Package fixture loads YAML data sets into a database. It seeds development
// databases and the test suites.
package fixture

import (
	"context"
	"fmt"
	"io"
	"os"

	sq "github.com/Masterminds/squirrel"
	"gopkg.in/yaml.v3"

	"github.com/Endeer/pontoon/dialect"
	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/locale"
	"github.com/Endeer/pontoon/project"
	"github.com/Endeer/pontoon/projectlocale"
	"github.com/Endeer/pontoon/tag"
)

// Set is a complete data set. Relations refer to projects by slug and to
// locales by code.
type Set struct {
	Projects       []Project       `yaml:"projects"`
	Locales        []Locale        `yaml:"locales"`
	ProjectLocales []ProjectLocale `yaml:"project_locales"`
	Tags           []Tag           `yaml:"tags"`
}

// Counters are the six progress counters.
type Counters struct {
	TotalStrings         int `yaml:"total_strings"`
	ApprovedStrings      int `yaml:"approved_strings"`
	PretranslatedStrings int `yaml:"pretranslated_strings"`
	StringsWithErrors    int `yaml:"strings_with_errors"`
	StringsWithWarnings  int `yaml:"strings_with_warnings"`
	UnreviewedStrings    int `yaml:"unreviewed_strings"`
}

// Project is a project row.
type Project struct {
	Name                  string  `yaml:"name"`
	Slug                  string  `yaml:"slug"`
	Disabled              bool    `yaml:"disabled"`
	SyncDisabled          bool    `yaml:"sync_disabled"`
	PretranslationEnabled bool    `yaml:"pretranslation_enabled"`
	Visibility            string  `yaml:"visibility"`
	SystemProject         bool    `yaml:"system_project"`
	Info                  string  `yaml:"info"`
	Deadline              string  `yaml:"deadline"`
	Priority              int     `yaml:"priority"`
	Contact               *string `yaml:"contact"`
	Counters              `yaml:",inline"`
}

// Locale is a locale row.
type Locale struct {
	Name                 string `yaml:"name"`
	Code                 string `yaml:"code"`
	Direction            string `yaml:"direction"`
	CldrPlurals          string `yaml:"cldr_plurals"`
	PluralRule           string `yaml:"plural_rule"`
	Script               string `yaml:"script"`
	Population           int    `yaml:"population"`
	GoogleTranslateCode  string `yaml:"google_translate_code"`
	MsTranslatorCode     string `yaml:"ms_translator_code"`
	SystranTranslateCode string `yaml:"systran_translate_code"`
	MsTerminologyCode    string `yaml:"ms_terminology_code"`
	Counters             `yaml:",inline"`
}

// ProjectLocale links a project slug to a locale code.
type ProjectLocale struct {
	Project  string `yaml:"project"`
	Locale   string `yaml:"locale"`
	Counters `yaml:",inline"`
}

// Tag is a tag of the project with the given slug.
type Tag struct {
	Project  string `yaml:"project"`
	Slug     string `yaml:"slug"`
	Name     string `yaml:"name"`
	Priority *int   `yaml:"priority"`
}

// Parse decodes a data set. Unknown keys are rejected.
func Parse(r io.Reader) (*Set, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var set Set
	if err := dec.Decode(&set); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &set, nil
}

// ParseFile decodes the data set stored at path.
func ParseFile(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Insert writes the data set in a single transaction, so a set that fails
// half way leaves the database unchanged. Projects and locales are inserted
// first so the relations can resolve their keys.
func Insert(ctx context.Context, drv dialect.Driver, set *Set) error {
	return sql.WithTx(ctx, drv, func(tx dialect.Tx) error {
		return insert(ctx, tx, sql.Builder(drv.Dialect()), set)
	})
}

func insert(ctx context.Context, drv dialect.ExecQuerier, b sq.StatementBuilderType, set *Set) error {
	for _, p := range set.Projects {
		visibility := p.Visibility
		if visibility == "" {
			visibility = project.VisibilityPrivate
		}
		var deadline any
		if p.Deadline != "" {
			deadline = p.Deadline
		}
		stmt := b.Insert(project.Table).
			Columns(project.Columns[1:]...).
			Values(append([]any{
				p.Name, p.Slug, p.Disabled, p.SyncDisabled, p.PretranslationEnabled,
				visibility, p.SystemProject, p.Info, deadline, p.Priority, p.Contact,
			}, p.Counters.values()...)...)
		if err := exec(ctx, drv, stmt); err != nil {
			return fmt.Errorf("insert project %q: %w", p.Slug, err)
		}
	}
	for _, l := range set.Locales {
		direction, script := l.Direction, l.Script
		if direction == "" {
			direction = "ltr"
		}
		if script == "" {
			script = "Latin"
		}
		values := []any{l.Name, l.Code, direction, l.CldrPlurals, l.PluralRule, script, l.Population}
		values = append(values, l.Counters.values()...)
		values = append(values, l.GoogleTranslateCode, l.MsTranslatorCode, l.SystranTranslateCode, l.MsTerminologyCode)
		stmt := b.Insert(locale.Table).Columns(locale.Columns[1:]...).Values(values...)
		if err := exec(ctx, drv, stmt); err != nil {
			return fmt.Errorf("insert locale %q: %w", l.Code, err)
		}
	}
	projects, err := keys(ctx, drv, b, project.Table, project.FieldSlug)
	if err != nil {
		return err
	}
	locales, err := keys(ctx, drv, b, locale.Table, locale.FieldCode)
	if err != nil {
		return err
	}
	for _, pl := range set.ProjectLocales {
		pid, ok := projects[pl.Project]
		if !ok {
			return fmt.Errorf("project locale %s/%s: unknown project", pl.Project, pl.Locale)
		}
		lid, ok := locales[pl.Locale]
		if !ok {
			return fmt.Errorf("project locale %s/%s: unknown locale", pl.Project, pl.Locale)
		}
		stmt := b.Insert(projectlocale.Table).
			Columns(projectlocale.Columns[1:]...).
			Values(append([]any{pid, lid}, pl.Counters.values()...)...)
		if err := exec(ctx, drv, stmt); err != nil {
			return fmt.Errorf("insert project locale %s/%s: %w", pl.Project, pl.Locale, err)
		}
	}
	for _, t := range set.Tags {
		pid, ok := projects[t.Project]
		if !ok {
			return fmt.Errorf("tag %s/%s: unknown project", t.Project, t.Slug)
		}
		stmt := b.Insert(tag.Table).
			Columns(tag.Columns[1:]...).
			Values(pid, t.Slug, t.Name, t.Priority)
		if err := exec(ctx, drv, stmt); err != nil {
			return fmt.Errorf("insert tag %s/%s: %w", t.Project, t.Slug, err)
		}
	}
	return nil
}

func (c Counters) values() []any {
	return []any{
		c.TotalStrings,
		c.ApprovedStrings,
		c.PretranslatedStrings,
		c.StringsWithErrors,
		c.StringsWithWarnings,
		c.UnreviewedStrings,
	}
}

func exec(ctx context.Context, drv dialect.ExecQuerier, stmt sq.InsertBuilder) error {
	query, args, err := stmt.ToSql()
	if err != nil {
		return err
	}
	return drv.Exec(ctx, query, args, nil)
}

// keys maps the unique key column of a table to the row id.
func keys(ctx context.Context, drv dialect.ExecQuerier, b sq.StatementBuilderType, table, column string) (map[string]int, error) {
	query, args, err := b.Select("id", column).From(table).ToSql()
	if err != nil {
		return nil, err
	}
	rows := &sql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()
	ids := make(map[string]int)
	for rows.Next() {
		var (
			id  int
			key string
		)
		if err := rows.Scan(&id, &key); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		ids[key] = id
	}
	return ids, rows.Err()
}
