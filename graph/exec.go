package graph

import (
	"context"
	"strconv"
	"time"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2/ast"

	"github.com/Endeer/pontoon"
)

var (
	queryImplementors         = []string{"Query"}
	projectImplementors       = []string{"Project"}
	localeImplementors        = []string{"Locale"}
	projectLocaleImplementors = []string{"ProjectLocale"}
	tagImplementors           = []string{"Tag"}
)

// executionContext marshals one operation. Fields resolve in selection
// order, list items one after the other.
type executionContext struct {
	*graphql.OperationContext
	resolver *Resolver
}

func (ec *executionContext) query(ctx context.Context, sel ast.SelectionSet) graphql.Marshaler {
	fields := graphql.CollectFields(ec.OperationContext, sel, queryImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Query")
		case "projects":
			out.Values[i] = ec.root(ctx, field, ec.queryProjects)
		case "project":
			out.Values[i] = ec.root(ctx, field, ec.queryProject)
		case "locales":
			out.Values[i] = ec.root(ctx, field, ec.queryLocales)
		case "locale":
			out.Values[i] = ec.root(ctx, field, ec.queryLocale)
		case "__schema", "__type":
			out.Values[i] = ec.root(ctx, field, func(ctx context.Context, _ graphql.CollectedField) graphql.Marshaler {
				return ec.fail(ctx, errIntrospection)
			})
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	}
	return out
}

// root resolves an entry point. A failure, panics included, nulls the field
// and records one error.
func (ec *executionContext) root(ctx context.Context, field graphql.CollectedField, resolve func(context.Context, graphql.CollectedField) graphql.Marshaler) (ret graphql.Marshaler) {
	ctx = ec.fieldContext(ctx, "Query", field)
	defer func() {
		if r := recover(); r != nil {
			graphql.AddError(ctx, ec.Recover(ctx, r))
			ret = graphql.Null
		}
	}()
	return resolve(ctx, field)
}

func (ec *executionContext) queryProjects(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	args := graphql.GetFieldContext(ctx).Args
	projects, err := ec.resolver.Projects(ctx, Fields(Shape(ec.OperationContext, field)), boolArg(args, "includeDisabled"), boolArg(args, "includeSystem"))
	if err != nil {
		return ec.fail(ctx, err)
	}
	return ec.projects(ctx, field.Selections, projects)
}

func (ec *executionContext) queryProject(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	args := graphql.GetFieldContext(ctx).Args
	p, err := ec.resolver.Project(ctx, Fields(Shape(ec.OperationContext, field)), stringArg(args, "slug"))
	if err != nil {
		return ec.fail(ctx, err)
	}
	return ec.project(ctx, field.Selections, p)
}

func (ec *executionContext) queryLocales(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	locales, err := ec.resolver.Locales(ctx, Fields(Shape(ec.OperationContext, field)))
	if err != nil {
		return ec.fail(ctx, err)
	}
	return ec.locales(ctx, field.Selections, locales)
}

func (ec *executionContext) queryLocale(ctx context.Context, field graphql.CollectedField) graphql.Marshaler {
	args := graphql.GetFieldContext(ctx).Args
	l, err := ec.resolver.Locale(ctx, Fields(Shape(ec.OperationContext, field)), stringArg(args, "code"))
	if err != nil {
		return ec.fail(ctx, err)
	}
	return ec.locale(ctx, field.Selections, l)
}

func (ec *executionContext) project(ctx context.Context, sel ast.SelectionSet, p *pontoon.Project) graphql.Marshaler {
	if p == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, projectImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		if v, ok := marshalStats(field.Name, p.Stats); ok {
			out.Values[i] = v
			continue
		}
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Project")
		case "name":
			out.Values[i] = graphql.MarshalString(p.Name)
		case "slug":
			out.Values[i] = graphql.MarshalString(p.Slug)
		case "disabled":
			out.Values[i] = graphql.MarshalBoolean(p.Disabled)
		case "syncDisabled":
			out.Values[i] = graphql.MarshalBoolean(p.SyncDisabled)
		case "pretranslationEnabled":
			out.Values[i] = graphql.MarshalBoolean(p.PretranslationEnabled)
		case "visibility":
			out.Values[i] = graphql.MarshalString(p.Visibility)
		case "systemProject":
			out.Values[i] = graphql.MarshalBoolean(p.SystemProject)
		case "info":
			out.Values[i] = graphql.MarshalString(p.Info)
		case "deadline":
			out.Values[i] = marshalDate(p.Deadline)
		case "priority":
			out.Values[i] = graphql.MarshalInt(p.Priority)
		case "contact":
			out.Values[i] = marshalOptionalString(p.Contact)
		case "localizations":
			ctx := ec.fieldContext(ctx, "Project", field)
			pls, err := ec.resolver.ProjectLocalizations(ctx, p)
			if err != nil {
				out.Values[i] = ec.fail(ctx, err)
				continue
			}
			out.Values[i] = ec.projectLocales(ctx, field.Selections, pls)
		case "tags":
			ctx := ec.fieldContext(ctx, "Project", field)
			tags, err := ec.resolver.ProjectTags(ctx, p)
			if err != nil {
				out.Values[i] = ec.fail(ctx, err)
				continue
			}
			out.Values[i] = ec.tags(ctx, field.Selections, tags)
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	}
	return out
}

func (ec *executionContext) locale(ctx context.Context, sel ast.SelectionSet, l *pontoon.Locale) graphql.Marshaler {
	if l == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, localeImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		if v, ok := marshalStats(field.Name, l.Stats); ok {
			out.Values[i] = v
			continue
		}
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Locale")
		case "name":
			out.Values[i] = graphql.MarshalString(l.Name)
		case "code":
			out.Values[i] = graphql.MarshalString(l.Code)
		case "direction":
			out.Values[i] = graphql.MarshalString(l.Direction)
		case "cldrPlurals":
			out.Values[i] = graphql.MarshalString(l.CldrPlurals)
		case "pluralRule":
			out.Values[i] = graphql.MarshalString(l.PluralRule)
		case "script":
			out.Values[i] = graphql.MarshalString(l.Script)
		case "population":
			out.Values[i] = graphql.MarshalInt(l.Population)
		case "googleTranslateCode":
			out.Values[i] = graphql.MarshalString(l.GoogleTranslateCode)
		case "msTranslatorCode":
			out.Values[i] = graphql.MarshalString(l.MsTranslatorCode)
		case "systranTranslateCode":
			out.Values[i] = graphql.MarshalString(l.SystranTranslateCode)
		case "msTerminologyCode":
			out.Values[i] = graphql.MarshalString(l.MsTerminologyCode)
		case "localizations":
			ctx := ec.fieldContext(ctx, "Locale", field)
			args := graphql.GetFieldContext(ctx).Args
			pls, err := ec.resolver.LocaleLocalizations(ctx, l, boolArg(args, "includeDisabled"), boolArg(args, "includeSystem"))
			if err != nil {
				out.Values[i] = ec.fail(ctx, err)
				continue
			}
			out.Values[i] = ec.projectLocales(ctx, field.Selections, pls)
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	}
	return out
}

func (ec *executionContext) projectLocale(ctx context.Context, sel ast.SelectionSet, pl *pontoon.ProjectLocale) graphql.Marshaler {
	if pl == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, projectLocaleImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		if v, ok := marshalStats(field.Name, pl.Stats); ok {
			out.Values[i] = v
			continue
		}
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("ProjectLocale")
		case "project":
			ctx := ec.fieldContext(ctx, "ProjectLocale", field)
			p, err := ec.resolver.ProjectLocaleProject(ctx, pl)
			if err != nil {
				out.Values[i] = ec.fail(ctx, err)
				continue
			}
			out.Values[i] = ec.project(ctx, field.Selections, p)
		case "locale":
			ctx := ec.fieldContext(ctx, "ProjectLocale", field)
			l, err := ec.resolver.ProjectLocaleLocale(ctx, pl)
			if err != nil {
				out.Values[i] = ec.fail(ctx, err)
				continue
			}
			out.Values[i] = ec.locale(ctx, field.Selections, l)
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	}
	return out
}

func (ec *executionContext) tag(_ context.Context, sel ast.SelectionSet, t *pontoon.Tag) graphql.Marshaler {
	if t == nil {
		return graphql.Null
	}
	fields := graphql.CollectFields(ec.OperationContext, sel, tagImplementors)
	out := graphql.NewFieldSet(fields)
	for i, field := range fields {
		switch field.Name {
		case "__typename":
			out.Values[i] = graphql.MarshalString("Tag")
		case "slug":
			out.Values[i] = graphql.MarshalString(t.Slug)
		case "name":
			out.Values[i] = graphql.MarshalString(t.Name)
		case "priority":
			if t.Priority == nil {
				out.Values[i] = graphql.Null
			} else {
				out.Values[i] = graphql.MarshalInt(*t.Priority)
			}
		default:
			panic("unknown field " + strconv.Quote(field.Name))
		}
	}
	return out
}

func (ec *executionContext) projects(ctx context.Context, sel ast.SelectionSet, v []*pontoon.Project) graphql.Marshaler {
	return marshalList(ctx, v, func(ctx context.Context, p *pontoon.Project) graphql.Marshaler {
		return ec.project(ctx, sel, p)
	})
}

func (ec *executionContext) locales(ctx context.Context, sel ast.SelectionSet, v []*pontoon.Locale) graphql.Marshaler {
	return marshalList(ctx, v, func(ctx context.Context, l *pontoon.Locale) graphql.Marshaler {
		return ec.locale(ctx, sel, l)
	})
}

func (ec *executionContext) projectLocales(ctx context.Context, sel ast.SelectionSet, v []*pontoon.ProjectLocale) graphql.Marshaler {
	return marshalList(ctx, v, func(ctx context.Context, pl *pontoon.ProjectLocale) graphql.Marshaler {
		return ec.projectLocale(ctx, sel, pl)
	})
}

func (ec *executionContext) tags(ctx context.Context, sel ast.SelectionSet, v []*pontoon.Tag) graphql.Marshaler {
	return marshalList(ctx, v, func(ctx context.Context, t *pontoon.Tag) graphql.Marshaler {
		return ec.tag(ctx, sel, t)
	})
}

func (ec *executionContext) fieldContext(ctx context.Context, object string, field graphql.CollectedField) context.Context {
	return graphql.WithFieldContext(ctx, &graphql.FieldContext{
		Object:     object,
		Field:      field,
		Args:       field.ArgumentMap(ec.Variables),
		IsMethod:   true,
		IsResolver: true,
	})
}

func (ec *executionContext) fail(ctx context.Context, err error) graphql.Marshaler {
	graphql.AddError(ctx, err)
	return graphql.Null
}

// marshalList marshals every item under its own index in the error path.
func marshalList[T any](ctx context.Context, v []T, marshal func(context.Context, T) graphql.Marshaler) graphql.Marshaler {
	if v == nil {
		return graphql.Null
	}
	out := make(graphql.Array, len(v))
	for i := range v {
		ctx := graphql.WithFieldContext(ctx, &graphql.FieldContext{Index: &i, Result: v[i]})
		out[i] = marshal(ctx, v[i])
	}
	return out
}

// marshalStats marshals the counter fields shared by projects, locales and
// project-locales.
func marshalStats(name string, s pontoon.Stats) (graphql.Marshaler, bool) {
	switch name {
	case "totalStrings":
		return graphql.MarshalInt(s.TotalStrings), true
	case "approvedStrings":
		return graphql.MarshalInt(s.ApprovedStrings), true
	case "pretranslatedStrings":
		return graphql.MarshalInt(s.PretranslatedStrings), true
	case "stringsWithErrors":
		return graphql.MarshalInt(s.StringsWithErrors), true
	case "stringsWithWarnings":
		return graphql.MarshalInt(s.StringsWithWarnings), true
	case "unreviewedStrings":
		return graphql.MarshalInt(s.UnreviewedStrings), true
	case "missingStrings":
		return graphql.MarshalInt(s.MissingStrings()), true
	case "complete":
		return graphql.MarshalBoolean(s.Complete()), true
	}
	return nil, false
}

func marshalDate(t *time.Time) graphql.Marshaler {
	if t == nil {
		return graphql.Null
	}
	return graphql.MarshalString(t.Format(pontoon.DateLayout))
}

func marshalOptionalString(s *string) graphql.Marshaler {
	if s == nil {
		return graphql.Null
	}
	return graphql.MarshalString(*s)
}

func boolArg(args map[string]any, name string) bool {
	b, _ := args[name].(bool)
	return b
}

func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}
