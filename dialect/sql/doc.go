// Package sql provides the database/sql backed driver used by the store,
// together with round-trip statistics, debug logging and typed column
// predicates.
//
// # Drivers
//
// Open and OpenDB wrap a *sql.DB into a dialect.Driver:
//
//	drv, err := sql.Open(dialect.SQLite, "file:pontoon.db?_pragma=foreign_keys(1)")
//	if err != nil {
//	    return err
//	}
//	client := pontoon.NewClient(pontoon.Driver(drv))
//
// StatsDriver counts queries and reports slow statements, DebugDriver logs
// every statement at debug level. Both wrap any dialect.Driver and can be
// stacked; their transactions are counted and logged the same way.
//
// # Transactions
//
// WithTx commits when the callback succeeds and rolls back otherwise:
//
//	err := sql.WithTx(ctx, drv, func(tx dialect.Tx) error {
//	    return tx.Exec(ctx, query, args, nil)
//	})
//
// # Statements
//
// Statements are built with squirrel. Builder returns a statement builder
// using the placeholder format of the dialect:
//
//	query, args, err := sql.Builder(drv.Dialect()).
//	    Select("id", "slug").
//	    From("projects").
//	    Where(project.Slug.EQ("firefox")()).
//	    ToSql()
//
// # Predicates
//
// StringField, IntField and BoolField are generic column descriptors. Each
// entity package declares its columns once and gets predicates typed to that
// entity:
//
//	var Disabled = sql.BoolField[predicate.Project]("projects.disabled")
//
//	client.Projects().Where(project.Disabled.EQ(false)).All(ctx)
package sql
