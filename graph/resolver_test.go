package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Endeer/pontoon"
	"github.com/Endeer/pontoon/pontoontest"
	"github.com/Endeer/pontoon/privacy"
)

func slugs(projects []*pontoon.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Slug
	}
	return out
}

// localizationNames renders project-locales as "project/locale".
func localizationNames(t *testing.T, pls []*pontoon.ProjectLocale) []string {
	t.Helper()
	ctx := context.Background()
	out := make([]string, len(pls))
	for i, pl := range pls {
		p, err := pl.QueryProject().Only(ctx)
		require.NoError(t, err)
		l, err := pl.QueryLocale().Only(ctx)
		require.NoError(t, err)
		out[i] = p.Slug + "/" + l.Code
	}
	return out
}

func adminContext() context.Context {
	return privacy.WithViewer(context.Background(), &privacy.SimpleViewer{UserID: "1", Roles: []string{DefaultAdminRole}})
}

func TestResolverProjects(t *testing.T) {
	t.Parallel()
	client, _ := pontoontest.Open(t, pontoontest.Sample())
	r := NewResolver(client)
	fields := Fields(Node("projects", Leaf("slug")))

	tests := []struct {
		name            string
		ctx             context.Context
		includeDisabled bool
		includeSystem   bool
		want            []string
	}{
		{name: "active", ctx: context.Background(), want: []string{"firefox"}},
		{name: "disabled", ctx: context.Background(), includeDisabled: true, want: []string{"firefox", "focus", "legacy"}},
		{name: "system", ctx: context.Background(), includeSystem: true, want: []string{"firefox", "terminology", "legacy"}},
		{name: "both", ctx: context.Background(), includeDisabled: true, includeSystem: true, want: []string{"firefox", "focus", "legacy", "terminology"}},
		{name: "admin", ctx: adminContext(), want: []string{"firefox", "secret"}},
		{name: "admin both", ctx: adminContext(), includeDisabled: true, includeSystem: true, want: []string{"firefox", "secret", "focus", "legacy", "terminology"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			projects, err := r.Projects(tt.ctx, fields, tt.includeDisabled, tt.includeSystem)
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugs(projects))
		})
	}
}

func TestResolverProjectsMonotonic(t *testing.T) {
	t.Parallel()
	client, _ := pontoontest.Open(t, pontoontest.Sample())
	r := NewResolver(client)
	ctx := adminContext()
	fields := Fields(Node("projects", Leaf("slug")))

	list := func(disabled, system bool) []string {
		projects, err := r.Projects(ctx, fields, disabled, system)
		require.NoError(t, err)
		return slugs(projects)
	}
	base := list(false, false)
	for _, flags := range [][2]bool{{true, false}, {false, true}, {true, true}} {
		wider := list(flags[0], flags[1])
		assert.Subset(t, wider, base)
		assert.ElementsMatch(t, wider, unique(wider), "duplicates in %v", wider)
	}
	assert.Subset(t, list(true, true), list(true, false))
	assert.Subset(t, list(true, true), list(false, true))
}

func unique(vs []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, v := range vs {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

func TestResolverProject(t *testing.T) {
	t.Parallel()
	client, _ := pontoontest.Open(t, pontoontest.Sample())
	r := NewResolver(client)
	fields := Fields(Node("project", Leaf("slug")))

	p, err := r.Project(context.Background(), fields, "legacy")
	require.NoError(t, err)
	assert.True(t, p.Disabled)
	assert.True(t, p.SystemProject)

	_, err = r.Project(context.Background(), fields, "secret")
	require.Error(t, err)
	assert.True(t, pontoon.IsNotFound(err))
	assert.EqualError(t, err, `pontoon: project "secret" not found`)

	p, err = r.Project(adminContext(), fields, "secret")
	require.NoError(t, err)
	assert.Equal(t, "Secret", p.Name)

	_, err = r.Project(context.Background(), fields, "FIREFOX")
	assert.True(t, pontoon.IsNotFound(err))
}

func TestResolverLocale(t *testing.T) {
	t.Parallel()
	client, _ := pontoontest.Open(t, pontoontest.Sample())
	r := NewResolver(client)

	l, err := r.Locale(context.Background(), Fields(Node("locale", Leaf("code"))), "fr")
	require.NoError(t, err)
	assert.Equal(t, "French", l.Name)

	_, err = r.Locale(context.Background(), Fields(Node("locale", Leaf("code"))), "xx")
	require.Error(t, err)
	assert.True(t, pontoon.IsNotFound(err))
	assert.EqualError(t, err, `pontoon: locale "xx" not found`)

	locales, err := r.Locales(context.Background(), Fields(Node("locales", Leaf("code"))))
	require.NoError(t, err)
	require.Len(t, locales, 3)
	assert.Equal(t, "kab", locales[2].Code)
}

func TestResolverCyclicQuery(t *testing.T) {
	t.Parallel()
	client, drv := pontoontest.Open(t, pontoontest.Sample())
	// A policy that always denies proves the guard runs before it.
	r := NewResolver(client, WithPolicy(privacy.ProjectPolicy{privacy.AlwaysDenyRule()}))
	ctx := context.Background()
	cyclic := func(root, far string) FieldSet {
		return Fields(Node(root, Node("localizations", Node(far, Node("localizations", Leaf("totalStrings"))))))
	}

	_, err := r.Projects(ctx, cyclic("projects", "locale"), true, true)
	assert.True(t, pontoon.IsCyclicQuery(err))
	_, err = r.Project(ctx, cyclic("project", "locale"), "firefox")
	assert.True(t, pontoon.IsCyclicQuery(err))
	_, err = r.Locales(ctx, cyclic("locales", "project"))
	assert.True(t, pontoon.IsCyclicQuery(err))
	_, err = r.Locale(ctx, cyclic("locale", "project"), "de")
	assert.True(t, pontoon.IsCyclicQuery(err))
	assert.Zero(t, drv.QueryStats().Stats().TotalQueries)

	_, err = r.Projects(ctx, Fields(Node("projects", Leaf("slug"))), false, false)
	assert.True(t, pontoon.IsPrivacyError(err))
}

func TestResolverLocaleLocalizations(t *testing.T) {
	t.Parallel()
	client, _ := pontoontest.Open(t, pontoontest.Sample())
	fields := Fields(Node("locale", Node("localizations", Leaf("totalStrings"))))

	tests := []struct {
		name            string
		ctx             context.Context
		code            string
		includeDisabled bool
		includeSystem   bool
		want            []string
	}{
		{name: "active", ctx: context.Background(), code: "de", want: []string{"firefox/de"}},
		{name: "disabled", ctx: context.Background(), code: "de", includeDisabled: true, want: []string{"firefox/de", "focus/de"}},
		{name: "system", ctx: context.Background(), code: "de", includeSystem: true, want: []string{"firefox/de", "terminology/de"}},
		{name: "admin", ctx: adminContext(), code: "de", want: []string{"firefox/de", "secret/de"}},
		{name: "admin both", ctx: adminContext(), code: "de", includeDisabled: true, includeSystem: true, want: []string{"firefox/de", "secret/de", "focus/de", "terminology/de"}},
		// legacy is both disabled and system, so two clauses match it.
		{name: "fr disabled", ctx: context.Background(), code: "fr", includeDisabled: true, want: []string{"firefox/fr", "legacy/fr"}},
		{name: "fr system", ctx: context.Background(), code: "fr", includeSystem: true, want: []string{"firefox/fr", "legacy/fr"}},
		{name: "fr both", ctx: context.Background(), code: "fr", includeDisabled: true, includeSystem: true, want: []string{"firefox/fr", "legacy/fr"}},
		{name: "kab", ctx: adminContext(), code: "kab", includeDisabled: true, includeSystem: true, want: []string{}},
	}
	for _, prefetch := range []bool{true, false} {
		r := NewResolver(client, WithPrefetch(prefetch))
		for _, tt := range tests {
			l, err := r.Locale(tt.ctx, fields, tt.code)
			require.NoError(t, err)
			_, err = l.Edges.LocalizationsOrErr()
			assert.Equal(t, !prefetch, pontoon.IsNotLoaded(err))

			pls, err := r.LocaleLocalizations(tt.ctx, l, tt.includeDisabled, tt.includeSystem)
			require.NoError(t, err)
			assert.Equal(t, tt.want, localizationNames(t, pls), "%s (prefetch=%t)", tt.name, prefetch)
		}
	}
}

func TestResolverProjectEdges(t *testing.T) {
	t.Parallel()
	client, drv := pontoontest.Open(t, pontoontest.Sample())
	ctx := context.Background()
	fields := Fields(Node("project", Node("localizations", Node("locale", Leaf("code"))), Node("tags", Leaf("slug"))))

	r := NewResolver(client)
	p, err := r.Project(ctx, fields, "firefox")
	require.NoError(t, err)
	// One query each for the project, its localizations, their locales and
	// its tags.
	assert.EqualValues(t, 4, drv.QueryStats().Stats().TotalQueries)

	pls, err := r.ProjectLocalizations(ctx, p)
	require.NoError(t, err)
	require.Len(t, pls, 2)
	l, err := r.ProjectLocaleLocale(ctx, pls[1])
	require.NoError(t, err)
	assert.Equal(t, "fr", l.Code)
	back, err := r.ProjectLocaleProject(ctx, pls[1])
	require.NoError(t, err)
	assert.Same(t, p, back)
	tags, err := r.ProjectTags(ctx, p)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.EqualValues(t, 4, drv.QueryStats().Stats().TotalQueries)

	drv.QueryStats().Reset()
	r = NewResolver(client, WithPrefetch(false))
	p, err = r.Project(ctx, fields, "firefox")
	require.NoError(t, err)
	pls, err = r.ProjectLocalizations(ctx, p)
	require.NoError(t, err)
	require.Len(t, pls, 2)
	l, err = r.ProjectLocaleLocale(ctx, pls[1])
	require.NoError(t, err)
	assert.Equal(t, "fr", l.Code)
	back, err = r.ProjectLocaleProject(ctx, pls[1])
	require.NoError(t, err)
	assert.Equal(t, p.ID, back.ID)
	tags, err = r.ProjectTags(ctx, p)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.EqualValues(t, 5, drv.QueryStats().Stats().TotalQueries)
}

func TestClauses(t *testing.T) {
	t.Parallel()
	assert.Len(t, clauses(false, false), 1)
	assert.Len(t, clauses(true, false), 2)
	assert.Len(t, clauses(false, true), 2)
	fs := clauses(true, true)
	require.Len(t, fs, 3)
	assert.True(t, fs[0].Match(false, false))
	assert.False(t, fs[0].Match(true, false))
	assert.True(t, fs[1].Match(true, true))
	assert.True(t, fs[2].Match(false, true))
}
