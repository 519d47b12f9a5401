package graph

import (
	"github.com/Endeer/pontoon"
	"github.com/Endeer/pontoon/privacy"
	"github.com/Endeer/pontoon/project"
)

// clauses returns the project filters whose union is the result of an entry
// point with the given inclusion flags. The active clause always comes first
// so it leads the result order.
func clauses(includeDisabled, includeSystem bool) []project.Filter {
	fs := []project.Filter{project.Active()}
	if includeDisabled {
		fs = append(fs, project.DisabledOnly())
	}
	if includeSystem {
		fs = append(fs, project.SystemOnly())
	}
	return fs
}

func projectKey(p *pontoon.Project) string { return p.Slug }

func projectLocaleKey(pl *pontoon.ProjectLocale) int { return pl.ID }

// projectsLoaded reports whether every row carries its eager-loaded project.
func projectsLoaded(pls []*pontoon.ProjectLocale) bool {
	for _, pl := range pls {
		if _, err := pl.Edges.ProjectOrErr(); pontoon.IsNotLoaded(err) {
			return false
		}
	}
	return true
}

// matchLocalizations is the in-memory counterpart of filtering project-locale
// rows by scope and clause in SQL. Rows keep their order. Rows whose project
// is missing never match.
func matchLocalizations(pls []*pontoon.ProjectLocale, scope privacy.Scope, clause project.Filter) []*pontoon.ProjectLocale {
	matched := make([]*pontoon.ProjectLocale, 0, len(pls))
	for _, pl := range pls {
		p, err := pl.Edges.ProjectOrErr()
		if err != nil {
			continue
		}
		if scope.Permits(p.Visibility) && clause.Match(p.Disabled, p.SystemProject) {
			matched = append(matched, pl)
		}
	}
	return matched
}
