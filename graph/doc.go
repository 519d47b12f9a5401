// Package graph serves the read-only GraphQL API over the pontoon store.
//
// The package has three layers:
//
//   - The field-usage inspector (fields.go) turns the selection of a root
//     field into a FieldSet of dotted paths such as "projects.localizations".
//   - The Resolver answers the four entry points (projects, project, locales,
//     locale) and the nested fields. It consults the FieldSet to reject
//     cyclic queries and to decide which relations to eager-load.
//   - The executable schema (schema.go, exec.go) binds schema.graphqls to the
//     Resolver for gqlgen's handler.
//
// # Usage
//
//	srv := handler.New(graph.NewExecutableSchema(graph.NewResolver(client)))
//	srv.AddTransport(transport.POST{})
//	srv.SetErrorPresenter(graph.ErrorPresenter)
//
// # Visibility
//
// Every project read goes through the resolver's privacy.ProjectPolicy. The
// default policy shows every project to viewers with the admin role and the
// public projects to everybody else.
//
// # Prefetching
//
// When a root field selects "localizations" (or "tags" for project roots)
// the store loads the relation with one batched query per fetch instead of
// one query per item. WithPrefetch(false) disables this; the response is
// identical either way.
package graph
