package pontoon

import (
	"context"

	"github.com/Endeer/pontoon/contrib/dataloader"
	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/locale"
	"github.com/Endeer/pontoon/predicate"
	"github.com/Endeer/pontoon/projectlocale"
)

// LocaleQuery is the builder for querying Locale entities.
type LocaleQuery struct {
	config
	limit             *uint64
	predicates        []predicate.Locale
	withLocalizations *ProjectLocaleQuery
}

// Where adds a new predicate for the LocaleQuery builder.
func (lq *LocaleQuery) Where(ps ...predicate.Locale) *LocaleQuery {
	lq.predicates = append(lq.predicates, ps...)
	return lq
}

// Limit the number of records to be returned by this query.
func (lq *LocaleQuery) Limit(limit int) *LocaleQuery {
	n := uint64(limit)
	lq.limit = &n
	return lq
}

// WithLocalizations tells the query-builder to eager-load the nodes that are
// connected to the "localizations" edge. The optional arguments are used to
// configure the query builder of the edge.
func (lq *LocaleQuery) WithLocalizations(opts ...func(*ProjectLocaleQuery)) *LocaleQuery {
	query := &ProjectLocaleQuery{config: lq.config}
	for _, opt := range opts {
		opt(query)
	}
	lq.withLocalizations = query
	return lq
}

// All executes the query and returns a list of Locales.
func (lq *LocaleQuery) All(ctx context.Context) ([]*Locale, error) {
	stmt := lq.builder().
		Select(sql.Qualify(locale.Table, locale.Columns)...).
		From(locale.Table).
		OrderBy(locale.ID.Name())
	for _, p := range sql.Sqlizers(lq.predicates...) {
		stmt = stmt.Where(p)
	}
	if lq.limit != nil {
		stmt = stmt.Limit(*lq.limit)
	}
	nodes := []*Locale{}
	err := lq.selectRows(ctx, locale.Label, "select", stmt, func(rows sql.ColumnScanner) error {
		node, err := scanLocale(rows)
		if err != nil {
			return err
		}
		node.config = lq.config
		nodes = append(nodes, node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nodes, nil
	}
	if query := lq.withLocalizations; query != nil {
		if err := lq.loadLocalizations(ctx, query, nodes); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// Only returns a single Locale entity found by the query, ensuring it only returns one.
// Returns a *NotSingularError when more than one Locale entity is found.
// Returns a *NotFoundError when no Locale entities are found.
func (lq *LocaleQuery) Only(ctx context.Context) (*Locale, error) {
	nodes, err := lq.Clone().Limit(2).All(ctx)
	if err != nil {
		return nil, err
	}
	switch len(nodes) {
	case 1:
		return nodes[0], nil
	case 0:
		return nil, NewNotFoundError(locale.Label)
	default:
		return nil, NewNotSingularError(locale.Label)
	}
}

// Clone returns a duplicate of the LocaleQuery builder, including all associated steps.
func (lq *LocaleQuery) Clone() *LocaleQuery {
	if lq == nil {
		return nil
	}
	return &LocaleQuery{
		config:            lq.config,
		limit:             lq.limit,
		predicates:        append([]predicate.Locale{}, lq.predicates...),
		withLocalizations: lq.withLocalizations.Clone(),
	}
}

func (lq *LocaleQuery) loadLocalizations(ctx context.Context, query *ProjectLocaleQuery, nodes []*Locale) error {
	ids := dataloader.Keys(nodes, func(l *Locale) int { return l.ID })
	children, err := query.Clone().Where(projectlocale.LocaleID.In(ids...)).All(ctx)
	if err != nil {
		return err
	}
	groups := dataloader.GroupByKey(children, func(pl *ProjectLocale) int { return pl.LocaleID })
	for _, n := range nodes {
		n.Edges.Localizations = groups[n.ID]
		if n.Edges.Localizations == nil {
			n.Edges.Localizations = []*ProjectLocale{}
		}
		n.Edges.loadedTypes[0] = true
		for _, pl := range n.Edges.Localizations {
			pl.Edges.Locale = n
			pl.Edges.loadedTypes[1] = true
		}
	}
	return nil
}
