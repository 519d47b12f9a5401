// Package predicate declares the predicate types of the store entities.
package predicate

import sq "github.com/Masterminds/squirrel"

// Project is the predicate function for project builders.
type Project func() sq.Sqlizer

// Locale is the predicate function for locale builders.
type Locale func() sq.Sqlizer

// ProjectLocale is the predicate function for projectlocale builders.
type ProjectLocale func() sq.Sqlizer

// Tag is the predicate function for tag builders.
type Tag func() sq.Sqlizer
