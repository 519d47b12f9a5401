package pontoon

import (
	"context"

	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/predicate"
	"github.com/Endeer/pontoon/tag"
)

// TagQuery is the builder for querying Tag entities.
type TagQuery struct {
	config
	predicates []predicate.Tag
}

// Where adds a new predicate for the TagQuery builder.
func (tq *TagQuery) Where(ps ...predicate.Tag) *TagQuery {
	tq.predicates = append(tq.predicates, ps...)
	return tq
}

// All executes the query and returns a list of Tags.
func (tq *TagQuery) All(ctx context.Context) ([]*Tag, error) {
	stmt := tq.builder().
		Select(sql.Qualify(tag.Table, tag.Columns)...).
		From(tag.Table).
		OrderBy(tag.ID.Name())
	for _, p := range sql.Sqlizers(tq.predicates...) {
		stmt = stmt.Where(p)
	}
	nodes := []*Tag{}
	err := tq.selectRows(ctx, tag.Label, "select", stmt, func(rows sql.ColumnScanner) error {
		node, err := scanTag(rows)
		if err != nil {
			return err
		}
		node.config = tq.config
		nodes = append(nodes, node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// Clone returns a duplicate of the TagQuery builder.
func (tq *TagQuery) Clone() *TagQuery {
	if tq == nil {
		return nil
	}
	return &TagQuery{
		config:     tq.config,
		predicates: append([]predicate.Tag{}, tq.predicates...),
	}
}
