package sql

import sq "github.com/Masterminds/squirrel"

// PredicateFunc is a constraint type for predicate functions.
// It allows generic field types to work with any entity predicate type
// that is based on func() squirrel.Sqlizer.
type PredicateFunc interface {
	~func() sq.Sqlizer
}

func predicate[P PredicateFunc](s sq.Sqlizer) P {
	return P(func() sq.Sqlizer { return s })
}

// StringField is a generic string column that provides type-safe predicate methods.
//
// Usage:
//
//	var Slug = sql.StringField[predicate.Project]("projects.slug")
//	client.Project.Query().Where(project.Slug.EQ("firefox"))
type StringField[P PredicateFunc] string

// Name returns the qualified column name.
func (f StringField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the column equals the given value.
// The comparison is exact; no case folding is applied.
func (f StringField[P]) EQ(v string) P {
	return predicate[P](sq.Eq{string(f): v})
}

// NEQ returns a predicate that checks if the column does not equal the given value.
func (f StringField[P]) NEQ(v string) P {
	return predicate[P](sq.NotEq{string(f): v})
}

// In returns a predicate that checks if the column value is in the given list.
// An empty list matches nothing.
func (f StringField[P]) In(vs ...string) P {
	return predicate[P](sq.Eq{string(f): vs})
}

// NotIn returns a predicate that checks if the column value is not in the given list.
func (f StringField[P]) NotIn(vs ...string) P {
	return predicate[P](sq.NotEq{string(f): vs})
}

// IsNull returns a predicate that checks if the column is NULL.
func (f StringField[P]) IsNull() P {
	return predicate[P](sq.Eq{string(f): nil})
}

// NotNull returns a predicate that checks if the column is not NULL.
func (f StringField[P]) NotNull() P {
	return predicate[P](sq.NotEq{string(f): nil})
}

// IntField is a generic integer column that provides type-safe predicate methods.
type IntField[P PredicateFunc] string

// Name returns the qualified column name.
func (f IntField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the column equals the given value.
func (f IntField[P]) EQ(v int) P {
	return predicate[P](sq.Eq{string(f): v})
}

// NEQ returns a predicate that checks if the column does not equal the given value.
func (f IntField[P]) NEQ(v int) P {
	return predicate[P](sq.NotEq{string(f): v})
}

// In returns a predicate that checks if the column value is in the given list.
// An empty list matches nothing.
func (f IntField[P]) In(vs ...int) P {
	return predicate[P](sq.Eq{string(f): vs})
}

// NotIn returns a predicate that checks if the column value is not in the given list.
func (f IntField[P]) NotIn(vs ...int) P {
	return predicate[P](sq.NotEq{string(f): vs})
}

// BoolField is a generic boolean column that provides type-safe predicate methods.
type BoolField[P PredicateFunc] string

// Name returns the qualified column name.
func (f BoolField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the column equals the given value.
func (f BoolField[P]) EQ(v bool) P {
	return predicate[P](sq.Eq{string(f): v})
}

// NEQ returns a predicate that checks if the column does not equal the given value.
func (f BoolField[P]) NEQ(v bool) P {
	return predicate[P](sq.NotEq{string(f): v})
}

// And groups predicates with the AND operator between them.
func And[P PredicateFunc](ps ...P) P {
	return predicate[P](conj(ps, func(c []sq.Sqlizer) sq.Sqlizer { return sq.And(c) }))
}

// Or groups predicates with the OR operator between them.
func Or[P PredicateFunc](ps ...P) P {
	return predicate[P](conj(ps, func(c []sq.Sqlizer) sq.Sqlizer { return sq.Or(c) }))
}

// Sqlizers unwraps typed predicates into squirrel conditions.
func Sqlizers[P PredicateFunc](ps ...P) []sq.Sqlizer {
	out := make([]sq.Sqlizer, 0, len(ps))
	for _, p := range ps {
		out = append(out, p())
	}
	return out
}

func conj[P PredicateFunc](ps []P, join func([]sq.Sqlizer) sq.Sqlizer) sq.Sqlizer {
	return join(Sqlizers(ps...))
}
