package graph

import (
	"bytes"
	"context"
	_ "embed"
	"errors"

	"github.com/99designs/gqlgen/graphql"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"

	"github.com/Endeer/pontoon"
)

//go:embed schema.graphqls
var sdl string

var parsedSchema = gqlparser.MustLoadSchema(&ast.Source{Name: "schema.graphqls", Input: sdl})

// Error codes reported in the extensions of domain errors.
const (
	CodeNotFound    = "NOT_FOUND"
	CodeCyclicQuery = "CYCLIC_QUERY"
	CodeForbidden   = "FORBIDDEN"
)

// listWeight multiplies the complexity of the selection under list fields.
const listWeight = 2

var errIntrospection = errors.New("introspection is not supported")

// NewExecutableSchema binds the schema to r.
func NewExecutableSchema(r *Resolver) graphql.ExecutableSchema {
	return &executableSchema{resolver: r}
}

type executableSchema struct {
	resolver *Resolver
}

func (e *executableSchema) Schema() *ast.Schema {
	return parsedSchema
}

// Complexity charges one point per field, and list fields their selection
// listWeight times.
func (e *executableSchema) Complexity(_ context.Context, typeName, field string, childComplexity int, _ map[string]any) (int, bool) {
	switch typeName + "." + field {
	case "Query.projects", "Query.locales", "Project.localizations", "Project.tags", "Locale.localizations":
		return 1 + listWeight*childComplexity, true
	}
	return 0, false
}

func (e *executableSchema) Exec(ctx context.Context) graphql.ResponseHandler {
	opCtx := graphql.GetOperationContext(ctx)
	if opCtx.Operation.Operation != ast.Query {
		return graphql.OneShot(graphql.ErrorResponse(ctx, "unsupported GraphQL operation"))
	}
	ec := &executionContext{OperationContext: opCtx, resolver: e.resolver}
	first := true
	return func(ctx context.Context) *graphql.Response {
		if !first {
			return nil
		}
		first = false
		data := ec.query(ctx, opCtx.Operation.SelectionSet)
		var buf bytes.Buffer
		data.MarshalGQL(&buf)
		return &graphql.Response{Data: buf.Bytes()}
	}
}

// ErrorPresenter presents errors the way graphql.DefaultErrorPresenter does
// and tags the domain errors with a code extension.
func ErrorPresenter(ctx context.Context, err error) *gqlerror.Error {
	gqlErr := graphql.DefaultErrorPresenter(ctx, err)
	var code string
	switch {
	case pontoon.IsCyclicQuery(err):
		code = CodeCyclicQuery
	case pontoon.IsNotFound(err):
		code = CodeNotFound
	case pontoon.IsPrivacyError(err):
		code = CodeForbidden
	default:
		return gqlErr
	}
	if gqlErr.Extensions == nil {
		gqlErr.Extensions = make(map[string]any)
	}
	gqlErr.Extensions["code"] = code
	return gqlErr
}
