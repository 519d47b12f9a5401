package graph

import (
	"slices"

	"github.com/99designs/gqlgen/graphql"
)

// Selection is one node of a request shape. A nil Children marks a scalar
// field; a non-nil Children, possibly empty, marks a field with a
// sub-selection.
type Selection struct {
	Name     string
	Children []Selection
}

// Leaf returns a scalar selection.
func Leaf(name string) Selection {
	return Selection{Name: name}
}

// Node returns a selection with the given sub-selection.
func Node(name string, children ...Selection) Selection {
	if children == nil {
		children = []Selection{}
	}
	return Selection{Name: name, Children: children}
}

// FieldSet is the set of dotted field paths requested under a root field.
// Every path starts with the root field name and the set holds intermediate
// as well as leaf paths.
type FieldSet map[string]struct{}

// Fields collects the paths of a request shape.
func Fields(root Selection) FieldSet {
	fs := make(FieldSet)
	fs.collect("", root)
	return fs
}

func (fs FieldSet) collect(prefix string, sel Selection) {
	path := sel.Name
	if prefix != "" {
		path = prefix + "." + sel.Name
	}
	fs[path] = struct{}{}
	for _, child := range sel.Children {
		fs.collect(path, child)
	}
}

// Has reports whether path was requested.
func (fs FieldSet) Has(path string) bool {
	_, ok := fs[path]
	return ok
}

// Paths returns the requested paths in lexical order.
func (fs FieldSet) Paths() []string {
	paths := make([]string, 0, len(fs))
	for p := range fs {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// Shape converts a collected gqlgen field into a request shape. Fragments,
// inline fragments and the skip and include directives are resolved by
// graphql.CollectFields; aliases are dropped in favor of field names.
func Shape(opCtx *graphql.OperationContext, field graphql.CollectedField) Selection {
	sel := Selection{Name: field.Name}
	if len(field.Selections) == 0 || field.Definition == nil {
		return sel
	}
	children := graphql.CollectFields(opCtx, field.Selections, []string{field.Definition.Type.Name()})
	sel.Children = make([]Selection, 0, len(children))
	for _, child := range children {
		sel.Children = append(sel.Children, Shape(opCtx, child))
	}
	return sel
}
