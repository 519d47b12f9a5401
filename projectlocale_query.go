package pontoon

import (
	"context"

	"github.com/Endeer/pontoon/contrib/dataloader"
	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/locale"
	"github.com/Endeer/pontoon/predicate"
	"github.com/Endeer/pontoon/project"
	"github.com/Endeer/pontoon/projectlocale"
)

// ProjectLocaleQuery is the builder for querying ProjectLocale entities.
type ProjectLocaleQuery struct {
	config
	predicates        []predicate.ProjectLocale
	projectPredicates []predicate.Project
	withProject       *ProjectQuery
	withLocale        *LocaleQuery
}

// Where adds a new predicate for the ProjectLocaleQuery builder.
func (plq *ProjectLocaleQuery) Where(ps ...predicate.ProjectLocale) *ProjectLocaleQuery {
	plq.predicates = append(plq.predicates, ps...)
	return plq
}

// WhereProject filters on the columns of the referenced project. The
// projects table is joined when at least one such predicate is set.
func (plq *ProjectLocaleQuery) WhereProject(ps ...predicate.Project) *ProjectLocaleQuery {
	plq.projectPredicates = append(plq.projectPredicates, ps...)
	return plq
}

// WithProject tells the query-builder to eager-load the nodes that are
// connected to the "project" edge.
func (plq *ProjectLocaleQuery) WithProject(opts ...func(*ProjectQuery)) *ProjectLocaleQuery {
	query := &ProjectQuery{config: plq.config}
	for _, opt := range opts {
		opt(query)
	}
	plq.withProject = query
	return plq
}

// WithLocale tells the query-builder to eager-load the nodes that are
// connected to the "locale" edge.
func (plq *ProjectLocaleQuery) WithLocale(opts ...func(*LocaleQuery)) *ProjectLocaleQuery {
	query := &LocaleQuery{config: plq.config}
	for _, opt := range opts {
		opt(query)
	}
	plq.withLocale = query
	return plq
}

// All executes the query and returns a list of ProjectLocales.
func (plq *ProjectLocaleQuery) All(ctx context.Context) ([]*ProjectLocale, error) {
	stmt := plq.builder().
		Select(sql.Qualify(projectlocale.Table, projectlocale.Columns)...).
		From(projectlocale.Table).
		OrderBy(projectlocale.ID.Name())
	if len(plq.projectPredicates) > 0 {
		stmt = stmt.Join(project.Table + " ON " + project.ID.Name() + " = " + projectlocale.ProjectID.Name())
	}
	for _, p := range sql.Sqlizers(plq.predicates...) {
		stmt = stmt.Where(p)
	}
	for _, p := range sql.Sqlizers(plq.projectPredicates...) {
		stmt = stmt.Where(p)
	}
	nodes := []*ProjectLocale{}
	err := plq.selectRows(ctx, projectlocale.Label, "select", stmt, func(rows sql.ColumnScanner) error {
		node, err := scanProjectLocale(rows)
		if err != nil {
			return err
		}
		node.config = plq.config
		nodes = append(nodes, node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nodes, nil
	}
	if query := plq.withProject; query != nil {
		if err := plq.loadProject(ctx, query, nodes); err != nil {
			return nil, err
		}
	}
	if query := plq.withLocale; query != nil {
		if err := plq.loadLocale(ctx, query, nodes); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// Clone returns a duplicate of the ProjectLocaleQuery builder, including all associated steps.
func (plq *ProjectLocaleQuery) Clone() *ProjectLocaleQuery {
	if plq == nil {
		return nil
	}
	return &ProjectLocaleQuery{
		config:            plq.config,
		predicates:        append([]predicate.ProjectLocale{}, plq.predicates...),
		projectPredicates: append([]predicate.Project{}, plq.projectPredicates...),
		withProject:       plq.withProject.Clone(),
		withLocale:        plq.withLocale.Clone(),
	}
}

func (plq *ProjectLocaleQuery) loadProject(ctx context.Context, query *ProjectQuery, nodes []*ProjectLocale) error {
	fk := func(pl *ProjectLocale) int { return pl.ProjectID }
	neighbors, err := query.Clone().Where(project.ID.In(dataloader.Keys(nodes, fk)...)).All(ctx)
	if err != nil {
		return err
	}
	keys := make([]int, len(nodes))
	for i, n := range nodes {
		keys[i] = fk(n)
	}
	ordered, _ := dataloader.OrderByKeys(keys, neighbors, func(p *Project) int { return p.ID })
	for i, n := range nodes {
		n.Edges.Project = ordered[i]
		n.Edges.loadedTypes[0] = true
	}
	return nil
}

func (plq *ProjectLocaleQuery) loadLocale(ctx context.Context, query *LocaleQuery, nodes []*ProjectLocale) error {
	fk := func(pl *ProjectLocale) int { return pl.LocaleID }
	neighbors, err := query.Clone().Where(locale.ID.In(dataloader.Keys(nodes, fk)...)).All(ctx)
	if err != nil {
		return err
	}
	keys := make([]int, len(nodes))
	for i, n := range nodes {
		keys[i] = fk(n)
	}
	ordered, _ := dataloader.OrderByKeys(keys, neighbors, func(l *Locale) int { return l.ID })
	for i, n := range nodes {
		n.Edges.Locale = ordered[i]
		n.Edges.loadedTypes[1] = true
	}
	return nil
}
