// Package dataloader provides generic helpers for batch loading entities and
// composing keyed result sets.
//
// Eager loading of an edge runs one IN query for all parents and then
// distributes the children back:
//
//	ids := dataloader.Keys(projects, func(p *pontoon.Project) int { return p.ID })
//	tags, _ := client.Tags().Where(tag.ProjectID.In(ids...)).All(ctx)
//	byProject := dataloader.GroupByKey(tags, func(t *pontoon.Tag) int { return t.ProjectID })
//
// Union merges several fetches of the same entity into one deduplicated
// collection:
//
//	all := dataloader.Union(func(p *pontoon.Project) int { return p.ID }, active, disabled, system)
package dataloader

import (
	"errors"
)

// ErrNotFound is returned when an entity is not found in a batch result.
var ErrNotFound = errors.New("dataloader: entity not found")

// KeyFunc extracts a key from an entity.
type KeyFunc[K comparable, V any] func(V) K

// OrderByKeys reorders entities to match the order of requested keys.
// Missing entities are represented as zero values with corresponding errors.
// Keys may repeat; every occurrence receives the same entity.
//
// Example:
//
//	locales, _ := client.Locales().Where(locale.ID.In(ids...)).All(ctx)
//	ordered, errs := OrderByKeys(ids, locales, func(l *pontoon.Locale) int { return l.ID })
func OrderByKeys[K comparable, V any](keys []K, values []V, keyFn KeyFunc[K, V]) ([]V, []error) {
	lookup := IndexByKey(values, keyFn)
	result := make([]V, len(keys))
	errs := make([]error, len(keys))
	for i, key := range keys {
		if v, ok := lookup[key]; ok {
			result[i] = v
		} else {
			errs[i] = ErrNotFound
		}
	}
	return result, errs
}

// GroupByKey groups entities by a key function.
// Useful for one-to-many relationships where multiple entities share the same foreign key.
// Entities keep their relative order inside each group.
func GroupByKey[K comparable, V any](values []V, keyFn KeyFunc[K, V]) map[K][]V {
	result := make(map[K][]V)
	for _, v := range values {
		key := keyFn(v)
		result[key] = append(result[key], v)
	}
	return result
}

// IndexByKey maps every entity by its key. On duplicate keys the first
// entity wins.
func IndexByKey[K comparable, V any](values []V, keyFn KeyFunc[K, V]) map[K]V {
	result := make(map[K]V, len(values))
	for _, v := range values {
		key := keyFn(v)
		if _, ok := result[key]; !ok {
			result[key] = v
		}
	}
	return result
}

// Keys returns the distinct keys of values in first-seen order.
func Keys[K comparable, V any](values []V, keyFn KeyFunc[K, V]) []K {
	seen := make(map[K]struct{}, len(values))
	keys := make([]K, 0, len(values))
	for _, v := range values {
		key := keyFn(v)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys
}

// Union concatenates the given sets and drops every entity whose key was
// already seen. The result keeps first-seen order: all of sets[0], then the
// new members of sets[1], and so on.
func Union[K comparable, V any](keyFn KeyFunc[K, V], sets ...[]V) []V {
	var n int
	for _, s := range sets {
		n += len(s)
	}
	seen := make(map[K]struct{}, n)
	result := make([]V, 0, n)
	for _, s := range sets {
		for _, v := range s {
			key := keyFn(v)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}
