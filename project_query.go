package pontoon

import (
	"context"

	"github.com/Endeer/pontoon/contrib/dataloader"
	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/predicate"
	"github.com/Endeer/pontoon/project"
	"github.com/Endeer/pontoon/projectlocale"
	"github.com/Endeer/pontoon/tag"
)

// ProjectQuery is the builder for querying Project entities.
type ProjectQuery struct {
	config
	limit             *uint64
	predicates        []predicate.Project
	withLocalizations *ProjectLocaleQuery
	withTags          *TagQuery
}

// Where adds a new predicate for the ProjectQuery builder.
func (pq *ProjectQuery) Where(ps ...predicate.Project) *ProjectQuery {
	pq.predicates = append(pq.predicates, ps...)
	return pq
}

// Limit the number of records to be returned by this query.
func (pq *ProjectQuery) Limit(limit int) *ProjectQuery {
	n := uint64(limit)
	pq.limit = &n
	return pq
}

// WithLocalizations tells the query-builder to eager-load the nodes that are
// connected to the "localizations" edge. The optional arguments are used to
// configure the query builder of the edge.
func (pq *ProjectQuery) WithLocalizations(opts ...func(*ProjectLocaleQuery)) *ProjectQuery {
	query := &ProjectLocaleQuery{config: pq.config}
	for _, opt := range opts {
		opt(query)
	}
	pq.withLocalizations = query
	return pq
}

// WithTags tells the query-builder to eager-load the nodes that are
// connected to the "tags" edge.
func (pq *ProjectQuery) WithTags(opts ...func(*TagQuery)) *ProjectQuery {
	query := &TagQuery{config: pq.config}
	for _, opt := range opts {
		opt(query)
	}
	pq.withTags = query
	return pq
}

// All executes the query and returns a list of Projects.
func (pq *ProjectQuery) All(ctx context.Context) ([]*Project, error) {
	stmt := pq.builder().
		Select(sql.Qualify(project.Table, project.Columns)...).
		From(project.Table).
		OrderBy(project.ID.Name())
	for _, p := range sql.Sqlizers(pq.predicates...) {
		stmt = stmt.Where(p)
	}
	if pq.limit != nil {
		stmt = stmt.Limit(*pq.limit)
	}
	nodes := []*Project{}
	err := pq.selectRows(ctx, project.Label, "select", stmt, func(rows sql.ColumnScanner) error {
		node, err := scanProject(rows)
		if err != nil {
			return err
		}
		node.config = pq.config
		nodes = append(nodes, node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nodes, nil
	}
	if query := pq.withLocalizations; query != nil {
		if err := pq.loadLocalizations(ctx, query, nodes); err != nil {
			return nil, err
		}
	}
	if query := pq.withTags; query != nil {
		if err := pq.loadTags(ctx, query, nodes); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// Only returns a single Project entity found by the query, ensuring it only returns one.
// Returns a *NotSingularError when more than one Project entity is found.
// Returns a *NotFoundError when no Project entities are found.
func (pq *ProjectQuery) Only(ctx context.Context) (*Project, error) {
	nodes, err := pq.Clone().Limit(2).All(ctx)
	if err != nil {
		return nil, err
	}
	switch len(nodes) {
	case 1:
		return nodes[0], nil
	case 0:
		return nil, NewNotFoundError(project.Label)
	default:
		return nil, NewNotSingularError(project.Label)
	}
}

// Clone returns a duplicate of the ProjectQuery builder, including all associated steps. It can be
// used to prepare common query builders and use them differently after the clone is made.
func (pq *ProjectQuery) Clone() *ProjectQuery {
	if pq == nil {
		return nil
	}
	return &ProjectQuery{
		config:            pq.config,
		limit:             pq.limit,
		predicates:        append([]predicate.Project{}, pq.predicates...),
		withLocalizations: pq.withLocalizations.Clone(),
		withTags:          pq.withTags.Clone(),
	}
}

func (pq *ProjectQuery) loadLocalizations(ctx context.Context, query *ProjectLocaleQuery, nodes []*Project) error {
	ids := dataloader.Keys(nodes, func(p *Project) int { return p.ID })
	children, err := query.Clone().Where(projectlocale.ProjectID.In(ids...)).All(ctx)
	if err != nil {
		return err
	}
	groups := dataloader.GroupByKey(children, func(pl *ProjectLocale) int { return pl.ProjectID })
	for _, n := range nodes {
		n.Edges.Localizations = groups[n.ID]
		if n.Edges.Localizations == nil {
			n.Edges.Localizations = []*ProjectLocale{}
		}
		n.Edges.loadedTypes[0] = true
		for _, pl := range n.Edges.Localizations {
			pl.Edges.Project = n
			pl.Edges.loadedTypes[0] = true
		}
	}
	return nil
}

func (pq *ProjectQuery) loadTags(ctx context.Context, query *TagQuery, nodes []*Project) error {
	ids := dataloader.Keys(nodes, func(p *Project) int { return p.ID })
	children, err := query.Clone().Where(tag.ProjectID.In(ids...)).All(ctx)
	if err != nil {
		return err
	}
	groups := dataloader.GroupByKey(children, func(t *Tag) int { return t.ProjectID })
	for _, n := range nodes {
		n.Edges.Tags = groups[n.ID]
		if n.Edges.Tags == nil {
			n.Edges.Tags = []*Tag{}
		}
		n.Edges.loadedTypes[1] = true
	}
	return nil
}
