// Package pontoon is the read-only store of the localization query API.
//
// It maps the projects, locales, project_locales and tags tables to entity
// views and offers typed query builders over them:
//
//	client, err := pontoon.Open(dialect.SQLite, "file:pontoon.db")
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	projects, err := client.Projects().
//	    Where(project.Disabled.EQ(false)).
//	    WithLocalizations(func(q *pontoon.ProjectLocaleQuery) {
//	        q.WithLocale()
//	    }).
//	    All(ctx)
//
// Eager-loaded edges are read with the XxxOrErr accessors of the Edges
// struct. An edge that was not requested returns a NotLoadedError and can be
// fetched with the QueryXxx methods of the entity instead.
//
// All rows are returned ordered by their primary key.
package pontoon
