package pontoon_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Endeer/pontoon"
	"github.com/Endeer/pontoon/locale"
	"github.com/Endeer/pontoon/pontoontest"
	"github.com/Endeer/pontoon/privacy"
	"github.com/Endeer/pontoon/project"
	"github.com/Endeer/pontoon/projectlocale"
)

func slugs(projects []*pontoon.Project) []string {
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Slug
	}
	return out
}

func TestProjectQuery(t *testing.T) {
	t.Parallel()
	client, _ := pontoontest.Open(t, pontoontest.Sample())
	ctx := context.Background()

	t.Run("all ordered by id", func(t *testing.T) {
		projects, err := client.Projects().All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"firefox", "focus", "terminology", "legacy", "secret"}, slugs(projects))
	})

	t.Run("fields", func(t *testing.T) {
		p, err := client.Projects().Where(project.Slug.EQ("firefox")).Only(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Firefox", p.Name)
		assert.Equal(t, project.VisibilityPublic, p.Visibility)
		assert.Equal(t, "The browser.", p.Info)
		assert.Equal(t, 5, p.Priority)
		require.NotNil(t, p.Deadline)
		assert.Equal(t, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC), *p.Deadline)
		require.NotNil(t, p.Contact)
		assert.Equal(t, "l10n-drivers", *p.Contact)
		assert.Equal(t, pontoon.Stats{
			TotalStrings:         100,
			ApprovedStrings:      60,
			PretranslatedStrings: 10,
			StringsWithErrors:    5,
			StringsWithWarnings:  5,
			UnreviewedStrings:    12,
		}, p.Stats)
		assert.Equal(t, 20, p.MissingStrings())
	})

	t.Run("nullable fields", func(t *testing.T) {
		p, err := client.Projects().Where(project.Slug.EQ("secret")).Only(ctx)
		require.NoError(t, err)
		assert.Nil(t, p.Deadline)
		assert.Nil(t, p.Contact)
		assert.True(t, p.PretranslationEnabled)
	})

	t.Run("filters", func(t *testing.T) {
		projects, err := client.Projects().Where(project.Active().Predicate()).All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"firefox", "secret"}, slugs(projects))

		projects, err = client.Projects().Where(project.DisabledOnly().Predicate()).All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"focus", "legacy"}, slugs(projects))

		projects, err = client.Projects().Where(project.SystemOnly().Predicate()).All(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"terminology", "legacy"}, slugs(projects))
	})

	t.Run("scope", func(t *testing.T) {
		projects, err := client.Projects().Where(privacy.Visibilities(project.VisibilityPublic).Predicate()).All(ctx)
		require.NoError(t, err)
		assert.NotContains(t, slugs(projects), "secret")
		assert.Len(t, projects, 4)

		projects, err = client.Projects().Where(privacy.Scope{}.Predicate()).All(ctx)
		require.NoError(t, err)
		assert.Empty(t, projects)
	})

	t.Run("slug match is case sensitive", func(t *testing.T) {
		_, err := client.Projects().Where(project.Slug.EQ("Firefox")).Only(ctx)
		assert.True(t, pontoon.IsNotFound(err))
	})

	t.Run("not singular", func(t *testing.T) {
		_, err := client.Projects().Where(project.Disabled.EQ(true)).Only(ctx)
		assert.True(t, pontoon.IsNotSingular(err))
	})

	t.Run("empty result is not nil", func(t *testing.T) {
		projects, err := client.Projects().Where(project.Slug.In()).All(ctx)
		require.NoError(t, err)
		assert.NotNil(t, projects)
		assert.Empty(t, projects)
	})
}

func TestProjectEagerLoading(t *testing.T) {
	t.Parallel()
	client, drv := pontoontest.Open(t, pontoontest.Sample())
	ctx := context.Background()

	projects, err := client.Projects().
		Where(project.Slug.In("firefox", "legacy", "secret")).
		WithLocalizations(func(q *pontoon.ProjectLocaleQuery) {
			q.WithLocale()
		}).
		WithTags().
		All(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.EqualValues(t, 4, drv.QueryStats().Stats().TotalQueries)

	firefox := projects[0]
	localizations, err := firefox.Edges.LocalizationsOrErr()
	require.NoError(t, err)
	require.Len(t, localizations, 2)
	for _, pl := range localizations {
		p, err := pl.Edges.ProjectOrErr()
		require.NoError(t, err)
		assert.Same(t, firefox, p)
	}
	de, err := localizations[0].Edges.LocaleOrErr()
	require.NoError(t, err)
	assert.Equal(t, "de", de.Code)

	tags, err := firefox.Edges.TagsOrErr()
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "browser", tags[0].Slug)
	require.NotNil(t, tags[0].Priority)
	assert.Equal(t, 3, *tags[0].Priority)
	assert.Nil(t, tags[1].Priority)

	secretTags, err := projects[2].Edges.TagsOrErr()
	require.NoError(t, err)
	assert.NotNil(t, secretTags)
	assert.Empty(t, secretTags)
	assert.Equal(t, 4, int(drv.QueryStats().Stats().TotalQueries))
}

func TestProjectEdgesNotLoaded(t *testing.T) {
	t.Parallel()
	client, drv := pontoontest.Open(t, pontoontest.Sample())
	ctx := context.Background()

	firefox, err := client.Projects().Where(project.Slug.EQ("firefox")).Only(ctx)
	require.NoError(t, err)

	_, err = firefox.Edges.LocalizationsOrErr()
	assert.True(t, pontoon.IsNotLoaded(err))
	_, err = firefox.Edges.TagsOrErr()
	assert.True(t, pontoon.IsNotLoaded(err))

	drv.QueryStats().Reset()
	localizations, err := firefox.QueryLocalizations().All(ctx)
	require.NoError(t, err)
	require.Len(t, localizations, 2)
	_, err = localizations[0].Edges.LocaleOrErr()
	assert.True(t, pontoon.IsNotLoaded(err))

	l, err := localizations[1].QueryLocale().Only(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fr", l.Code)
	p, err := localizations[1].QueryProject().Only(ctx)
	require.NoError(t, err)
	assert.Equal(t, "firefox", p.Slug)

	tags, err := firefox.QueryTags().All(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
	assert.EqualValues(t, 4, drv.QueryStats().Stats().TotalQueries)
}

func TestLocaleQuery(t *testing.T) {
	t.Parallel()
	client, drv := pontoontest.Open(t, pontoontest.Sample())
	ctx := context.Background()

	locales, err := client.Locales().All(ctx)
	require.NoError(t, err)
	require.Len(t, locales, 3)
	assert.Equal(t, "de", locales[0].Code)

	de := locales[0]
	assert.Equal(t, "German", de.Name)
	assert.Equal(t, "ltr", de.Direction)
	assert.Equal(t, "Latin", de.Script)
	assert.Equal(t, "1,5", de.CldrPlurals)
	assert.Equal(t, "(n != 1)", de.PluralRule)
	assert.Equal(t, 100000000, de.Population)
	assert.Equal(t, "de-de", de.MsTerminologyCode)
	assert.Equal(t, 158, de.TotalStrings)

	_, err = client.Locales().Where(locale.Code.EQ("DE")).Only(ctx)
	assert.True(t, pontoon.IsNotFound(err))

	drv.QueryStats().Reset()
	locales, err = client.Locales().
		WithLocalizations(func(q *pontoon.ProjectLocaleQuery) {
			q.WithProject()
		}).
		All(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, drv.QueryStats().Stats().TotalQueries)

	localizations, err := locales[0].Edges.LocalizationsOrErr()
	require.NoError(t, err)
	assert.Len(t, localizations, 4)
	for _, pl := range localizations {
		l, err := pl.Edges.LocaleOrErr()
		require.NoError(t, err)
		assert.Same(t, locales[0], l)
		_, err = pl.Edges.ProjectOrErr()
		require.NoError(t, err)
	}
	kab, err := locales[2].Edges.LocalizationsOrErr()
	require.NoError(t, err)
	assert.Empty(t, kab)
}

func TestProjectLocaleWhereProject(t *testing.T) {
	t.Parallel()
	client, _ := pontoontest.Open(t, pontoontest.Sample())
	ctx := context.Background()

	de, err := client.Locales().Where(locale.Code.EQ("de")).Only(ctx)
	require.NoError(t, err)

	pls, err := client.ProjectLocales().
		Where(projectlocale.LocaleID.EQ(de.ID)).
		WhereProject(project.Active().Predicate(), privacy.Visibilities(project.VisibilityPublic).Predicate()).
		WithProject().
		All(ctx)
	require.NoError(t, err)
	require.Len(t, pls, 1)
	p, err := pls[0].Edges.ProjectOrErr()
	require.NoError(t, err)
	assert.Equal(t, "firefox", p.Slug)

	pls, err = client.ProjectLocales().
		Where(projectlocale.LocaleID.EQ(de.ID)).
		WhereProject(project.Active().Predicate(), privacy.Unrestricted().Predicate()).
		All(ctx)
	require.NoError(t, err)
	assert.Len(t, pls, 2)
}

func TestQueryClone(t *testing.T) {
	t.Parallel()
	client, _ := pontoontest.Open(t, pontoontest.Sample())
	ctx := context.Background()

	base := client.Projects().Where(project.Visibility.EQ(project.VisibilityPublic)).WithTags()
	disabled, err := base.Clone().Where(project.Disabled.EQ(true)).All(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"focus", "legacy"}, slugs(disabled))

	all, err := base.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	_, err = all[0].Edges.TagsOrErr()
	assert.NoError(t, err)
}

func TestQueryError(t *testing.T) {
	t.Parallel()
	client, _ := pontoontest.Open(t)
	require.NoError(t, client.Close())

	_, err := client.Projects().All(context.Background())
	require.Error(t, err)
	assert.True(t, pontoon.IsQueryError(err))
}

func TestClientDebug(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	client, drv := pontoontest.Open(t, pontoontest.Sample())
	client = pontoon.NewClient(pontoon.Driver(drv), pontoon.Logger(logger))

	debug := client.Debug()
	assert.Same(t, debug, debug.Debug())
	_, err := debug.Locales().All(context.Background())
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "FROM locales")
	assert.NoError(t, debug.Ping(context.Background()))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	t.Parallel()
	_, err := pontoon.Open("oracle", "")
	assert.EqualError(t, err, `unsupported driver: "oracle"`)
}
