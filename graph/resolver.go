package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Endeer/pontoon"
	"github.com/Endeer/pontoon/contrib/dataloader"
	"github.com/Endeer/pontoon/locale"
	"github.com/Endeer/pontoon/privacy"
	"github.com/Endeer/pontoon/project"
)

// DefaultAdminRole is the role that sees every project under the default
// policy.
const DefaultAdminRole = "admin"

// Resolver resolves the entry points and nested fields of the schema.
type Resolver struct {
	client   *pontoon.Client
	policy   privacy.ProjectPolicy
	prefetch bool
	logger   *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithPolicy sets the policy that decides which projects a viewer sees.
func WithPolicy(policy privacy.ProjectPolicy) Option {
	return func(r *Resolver) {
		r.policy = policy
	}
}

// WithPrefetch enables or disables eager-loading of requested relations.
func WithPrefetch(enabled bool) Option {
	return func(r *Resolver) {
		r.prefetch = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver returns a resolver over client. Prefetching is on and the
// policy is privacy.DefaultProjectPolicy(DefaultAdminRole) unless configured
// otherwise.
func NewResolver(client *pontoon.Client, opts ...Option) *Resolver {
	r := &Resolver{
		client:   client,
		policy:   privacy.DefaultProjectPolicy(DefaultAdminRole),
		prefetch: true,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Projects returns the visible projects matching the inclusion flags. Active
// projects come first, followed by the disabled and then the system projects
// not listed yet.
func (r *Resolver) Projects(ctx context.Context, fields FieldSet, includeDisabled, includeSystem bool) ([]*pontoon.Project, error) {
	if err := r.checkCycles(ctx, "projects", fields); err != nil {
		return nil, err
	}
	scope, err := r.scope(ctx)
	if err != nil {
		return nil, err
	}
	query := r.client.Projects().Where(scope.Predicate())
	r.prefetchProjects(query, fields, "projects")
	sets := make([][]*pontoon.Project, 0, 3)
	for _, clause := range clauses(includeDisabled, includeSystem) {
		projects, err := query.Clone().Where(clause.Predicate()).All(ctx)
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}
		sets = append(sets, projects)
	}
	return dataloader.Union(projectKey, sets...), nil
}

// Project returns the visible project with the given slug. The inclusion
// flags do not apply: a disabled or system project is returned when asked
// for by slug.
func (r *Resolver) Project(ctx context.Context, fields FieldSet, slug string) (*pontoon.Project, error) {
	if err := r.checkCycles(ctx, "project", fields); err != nil {
		return nil, err
	}
	scope, err := r.scope(ctx)
	if err != nil {
		return nil, err
	}
	query := r.client.Projects().Where(scope.Predicate(), project.Slug.EQ(slug))
	r.prefetchProjects(query, fields, "project")
	p, err := query.Only(ctx)
	switch {
	case pontoon.IsNotFound(err):
		return nil, pontoon.NewNotFoundErrorWithKey(project.Label, slug)
	case err != nil:
		return nil, fmt.Errorf("get project %q: %w", slug, err)
	}
	return p, nil
}

// Locales returns every locale.
func (r *Resolver) Locales(ctx context.Context, fields FieldSet) ([]*pontoon.Locale, error) {
	if err := r.checkCycles(ctx, "locales", fields); err != nil {
		return nil, err
	}
	query := r.client.Locales()
	r.prefetchLocales(query, fields, "locales")
	locales, err := query.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	return locales, nil
}

// Locale returns the locale with the given code.
func (r *Resolver) Locale(ctx context.Context, fields FieldSet, code string) (*pontoon.Locale, error) {
	if err := r.checkCycles(ctx, "locale", fields); err != nil {
		return nil, err
	}
	query := r.client.Locales().Where(locale.Code.EQ(code))
	r.prefetchLocales(query, fields, "locale")
	l, err := query.Only(ctx)
	switch {
	case pontoon.IsNotFound(err):
		return nil, pontoon.NewNotFoundErrorWithKey(locale.Label, code)
	case err != nil:
		return nil, fmt.Errorf("get locale %q: %w", code, err)
	}
	return l, nil
}

// ProjectLocalizations returns every project-locale of p.
func (r *Resolver) ProjectLocalizations(ctx context.Context, p *pontoon.Project) ([]*pontoon.ProjectLocale, error) {
	pls, err := p.Edges.LocalizationsOrErr()
	if !pontoon.IsNotLoaded(err) {
		return pls, err
	}
	query := p.QueryLocalizations()
	if r.prefetch {
		query.WithLocale()
	}
	return query.All(ctx)
}

// ProjectTags returns every tag of p.
func (r *Resolver) ProjectTags(ctx context.Context, p *pontoon.Project) ([]*pontoon.Tag, error) {
	tags, err := p.Edges.TagsOrErr()
	if !pontoon.IsNotLoaded(err) {
		return tags, err
	}
	return p.QueryTags().All(ctx)
}

// LocaleLocalizations returns the project-locales of l whose project is
// visible and matches the inclusion flags. Eager-loaded rows are filtered in
// memory, otherwise each clause is fetched from the store. Both ways yield
// the same rows in the same order.
func (r *Resolver) LocaleLocalizations(ctx context.Context, l *pontoon.Locale, includeDisabled, includeSystem bool) ([]*pontoon.ProjectLocale, error) {
	scope, err := r.scope(ctx)
	if err != nil {
		return nil, err
	}
	fs := clauses(includeDisabled, includeSystem)
	sets := make([][]*pontoon.ProjectLocale, 0, len(fs))
	if pls, err := l.Edges.LocalizationsOrErr(); err == nil && projectsLoaded(pls) {
		for _, clause := range fs {
			sets = append(sets, matchLocalizations(pls, scope, clause))
		}
		return dataloader.Union(projectLocaleKey, sets...), nil
	}
	for _, clause := range fs {
		query := l.QueryLocalizations().WhereProject(clause.Predicate(), scope.Predicate())
		if r.prefetch {
			query.WithProject()
		}
		pls, err := query.All(ctx)
		if err != nil {
			return nil, fmt.Errorf("list localizations of locale %q: %w", l.Code, err)
		}
		sets = append(sets, pls)
	}
	return dataloader.Union(projectLocaleKey, sets...), nil
}

// ProjectLocaleProject returns the project of pl.
func (r *Resolver) ProjectLocaleProject(ctx context.Context, pl *pontoon.ProjectLocale) (*pontoon.Project, error) {
	p, err := pl.Edges.ProjectOrErr()
	if !pontoon.IsNotLoaded(err) {
		return p, err
	}
	return pl.QueryProject().Only(ctx)
}

// ProjectLocaleLocale returns the locale of pl.
func (r *Resolver) ProjectLocaleLocale(ctx context.Context, pl *pontoon.ProjectLocale) (*pontoon.Locale, error) {
	l, err := pl.Edges.LocaleOrErr()
	if !pontoon.IsNotLoaded(err) {
		return l, err
	}
	return pl.QueryLocale().Only(ctx)
}

func (r *Resolver) checkCycles(ctx context.Context, root string, fields FieldSet) error {
	err := checkCycles(root, fields)
	if err != nil {
		r.logger.DebugContext(ctx, "rejected cyclic query", "root", root)
	}
	return err
}

func (r *Resolver) scope(ctx context.Context) (privacy.Scope, error) {
	scope, err := r.policy.Scope(ctx)
	if err != nil {
		return privacy.Scope{}, pontoon.NewPrivacyError(project.Label, err.Error())
	}
	return scope, nil
}

func (r *Resolver) prefetchProjects(query *pontoon.ProjectQuery, fields FieldSet, root string) {
	if !r.prefetch {
		return
	}
	if fields.Has(root + ".localizations") {
		query.WithLocalizations(func(q *pontoon.ProjectLocaleQuery) {
			q.WithLocale()
		})
	}
	if fields.Has(root + ".tags") {
		query.WithTags()
	}
}

func (r *Resolver) prefetchLocales(query *pontoon.LocaleQuery, fields FieldSet, root string) {
	if !r.prefetch {
		return
	}
	if fields.Has(root + ".localizations") {
		query.WithLocalizations(func(q *pontoon.ProjectLocaleQuery) {
			q.WithProject()
		})
	}
}
