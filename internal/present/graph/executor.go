package graph

import (
	"context"
	_ "embed"
	"strings"
	"time"

	"github.com/graph-gophers/graphql-go"
	qerrors "github.com/graph-gophers/graphql-go/errors"
	gqltrace "github.com/graph-gophers/graphql-go/trace/otel"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

//go:embed schema.graphql
var schemaSource string

var tracer = otel.Tracer("graph")

const defaultParallelism = 16

// Request is a graph query as posted by clients.
type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`

	// ReadOnly rejects mutations, for requests arriving over GET.
	ReadOnly bool `json:"-"`
}

type Response = graphql.Response

type tokenKey struct{}

func withToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// tokenFrom returns the caller's bearer token, or "".
func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Executor runs queries against the embedded schema.
type Executor struct {
	schema *graphql.Schema
	docs   *cache.Cache
}

// New binds the schema to the usecases. parallelism bounds how many
// resolvers of one request run at once.
func New(u Usecases, parallelism int) (*Executor, error) {
	if parallelism < 1 {
		parallelism = defaultParallelism
	}
	schema, err := graphql.ParseSchema(
		schemaSource,
		newRootResolver(u),
		graphql.MaxParallelism(parallelism),
		graphql.DisableIntrospection(),
		graphql.Tracer(&gqltrace.Tracer{Tracer: tracer}),
		graphql.Logger(panicLogger{}),
	)
	if err != nil {
		return nil, errors.Wrap(err, "graph.New")
	}
	return &Executor{
		schema: schema,
		docs:   cache.New(30*time.Minute, 10*time.Minute),
	}, nil
}

// Execute runs one request. Field failures become entries of Errors and
// never abort sibling fields.
func (e *Executor) Execute(ctx context.Context, req Request, token string) *Response {
	ctx, span := tracer.Start(ctx, "Graph.Executor.Execute", trace.WithSpanKind(trace.SpanKindServer))
	defer span.End()

	if strings.TrimSpace(req.Query) == "" {
		return rejected("query must not be empty")
	}

	if op := e.operation(req.Query, req.OperationName); op != nil {
		span.SetAttributes(
			attribute.String("graph.operation", string(op.Operation)),
			attribute.String("graph.name", op.Name),
		)
		if introspects(op) {
			return rejected("introspection is not supported")
		}
		if op.Operation == ast.Mutation && req.ReadOnly {
			return rejected("mutations are not allowed over GET")
		}
	}

	resp := e.schema.Exec(withToken(ctx, token), req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 {
		span.SetAttributes(attribute.Int("graph.errors", len(resp.Errors)))
	}
	return resp
}

// operation finds the operation a request will run. Documents that do not
// parse return nil and are left to the engine to report.
func (e *Executor) operation(query, name string) *ast.OperationDefinition {
	var doc *ast.QueryDocument
	if v, ok := e.docs.Get(query); ok {
		doc = v.(*ast.QueryDocument)
	} else {
		parsed, err := parser.ParseQuery(&ast.Source{Name: "request", Input: query})
		if err != nil {
			return nil
		}
		e.docs.SetDefault(query, parsed)
		doc = parsed
	}
	return doc.Operations.ForName(name)
}

func introspects(op *ast.OperationDefinition) bool {
	for _, sel := range op.SelectionSet {
		if f, ok := sel.(*ast.Field); ok && (f.Name == "__schema" || f.Name == "__type") {
			return true
		}
	}
	return false
}

func rejected(msg string) *Response {
	return &Response{Errors: []*qerrors.QueryError{{Message: msg}}}
}
