package project

import (
	"github.com/Endeer/pontoon/dialect/sql"
	"github.com/Endeer/pontoon/predicate"
)

// Filter is a conjunction of boolean-equality conditions on the disabled and
// system-project flags. A nil field leaves that flag unconstrained.
//
// A Filter has two renderings that must agree: Predicate runs in SQL, Match
// runs in memory over already loaded rows.
type Filter struct {
	Disabled      *bool
	SystemProject *bool
}

// Predicate renders the filter as a project predicate. The zero Filter
// matches every project.
func (f Filter) Predicate() predicate.Project {
	var ps []predicate.Project
	if f.Disabled != nil {
		ps = append(ps, Disabled.EQ(*f.Disabled))
	}
	if f.SystemProject != nil {
		ps = append(ps, SystemProject.EQ(*f.SystemProject))
	}
	return sql.And(ps...)
}

// Match reports whether a project with the given flags satisfies the filter.
func (f Filter) Match(disabled, systemProject bool) bool {
	if f.Disabled != nil && *f.Disabled != disabled {
		return false
	}
	if f.SystemProject != nil && *f.SystemProject != systemProject {
		return false
	}
	return true
}

// Active matches projects that are neither disabled nor system projects.
func Active() Filter {
	return Filter{Disabled: ptr(false), SystemProject: ptr(false)}
}

// DisabledOnly matches disabled projects, regardless of the system flag.
func DisabledOnly() Filter {
	return Filter{Disabled: ptr(true)}
}

// SystemOnly matches system projects, regardless of the disabled flag.
func SystemOnly() Filter {
	return Filter{SystemProject: ptr(true)}
}

func ptr(b bool) *bool { return &b }
