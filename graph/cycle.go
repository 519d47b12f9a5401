package graph

import "github.com/Endeer/pontoon"

// cyclicPaths maps each entry point to the expansion that leads back to a
// collection of its own kind.
var cyclicPaths = map[string]string{
	"projects": "projects.localizations.locale.localizations",
	"project":  "project.localizations.locale.localizations",
	"locales":  "locales.localizations.project.localizations",
	"locale":   "locale.localizations.project.localizations",
}

// checkCycles fails with a CyclicQueryError when fields expand root into
// itself through a project-locale.
func checkCycles(root string, fields FieldSet) error {
	if path, ok := cyclicPaths[root]; ok && fields.Has(path) {
		return pontoon.NewCyclicQueryError(path)
	}
	return nil
}
