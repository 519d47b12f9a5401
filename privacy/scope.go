package privacy

import (
	"slices"

	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/predicate"
	"github.com/Endeer/pontoon/project"
)

// Scope is the set of projects a viewer may see, expressed over the project
// visibility classification. The zero Scope sees nothing.
type Scope struct {
	all          bool
	visibilities []string
}

// Unrestricted returns a scope that sees every project.
func Unrestricted() Scope {
	return Scope{all: true}
}

// Visibilities returns a scope that sees projects with one of the given
// visibility classifications.
func Visibilities(vs ...string) Scope {
	var s Scope
	s.Add(vs...)
	return s
}

// Add widens the scope with more visibility classifications.
func (s *Scope) Add(vs ...string) {
	for _, v := range vs {
		if !slices.Contains(s.visibilities, v) {
			s.visibilities = append(s.visibilities, v)
		}
	}
}

// IsUnrestricted reports whether the scope sees every project.
func (s Scope) IsUnrestricted() bool {
	return s.all
}

// VisibilityList returns the visibility classifications of a restricted scope.
func (s Scope) VisibilityList() []string {
	return slices.Clone(s.visibilities)
}

// Permits reports whether a project with the given visibility is inside the scope.
func (s Scope) Permits(visibility string) bool {
	return s.all || slices.Contains(s.visibilities, visibility)
}

// Predicate renders the scope as a project predicate. An unrestricted scope
// renders as an always-true condition, an empty scope as an always-false one.
func (s Scope) Predicate() predicate.Project {
	if s.all {
		return sql.And[predicate.Project]()
	}
	return project.Visibility.In(s.visibilities...)
}
