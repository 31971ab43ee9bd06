package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	graphql "github.com/graph-gophers/graphql-go"

	"github.com/eventsplanner/events-api/internal/graph"
	"github.com/eventsplanner/events-api/internal/view"
)

const maxBodyBytes = 1 << 20 // 1MB

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// GraphQLHandler serves the GraphQL endpoint over GET and POST, and the
// GraphiQL explorer to browsers that GET it without a query.
type GraphQLHandler struct {
	schema   *graphql.Schema
	explorer templ.Component
	metrics  *Metrics
}

// NewGraphQLHandler creates a handler for schema. metrics may be nil.
func NewGraphQLHandler(schema *graphql.Schema, metrics *Metrics) *GraphQLHandler {
	return &GraphQLHandler{
		schema:   schema,
		explorer: view.Explorer("Events API", "/graphql"),
		metrics:  metrics,
	}
}

func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var (
		req graphQLRequest
		err error
	)

	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		if r.URL.Query().Get("query") == "" && acceptsHTML(r) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			if err := h.explorer.Render(ctx, w); err != nil {
				writeError(w, http.StatusInternalServerError, "render explorer")
			}
			return
		}
		req, err = requestFromQuery(r)
		ctx = graph.WithReadOnly(ctx)
	case http.MethodPost:
		req, err = requestFromBody(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "GraphQL only supports GET and POST requests.")
		return
	}

	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "Request body too large.")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "Must provide query string.")
		return
	}

	resp := h.schema.Exec(ctx, req.Query, req.OperationName, req.Variables)
	if len(resp.Errors) > 0 && isEmptyObject(resp.Data) {
		resp.Data = nil
	}
	h.metrics.observeOperation(resp)
	if graph.MutationRefused(ctx) {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, &graphql.Response{Errors: resp.Errors})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// isEmptyObject reports whether data is the "{}" the executor leaves behind
// when it failed before resolving any field.
func isEmptyObject(data json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(data), []byte("{}"))
}

func requestFromQuery(r *http.Request) (graphQLRequest, error) {
	q := r.URL.Query()
	req := graphQLRequest{
		Query:         q.Get("query"),
		OperationName: q.Get("operationName"),
	}
	if vars := q.Get("variables"); vars != "" {
		if err := json.Unmarshal([]byte(vars), &req.Variables); err != nil {
			return req, errors.New("Variables are invalid JSON.")
		}
	}
	return req, nil
}

func requestFromBody(w http.ResponseWriter, r *http.Request) (graphQLRequest, error) {
	var req graphQLRequest
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/graphql" {
		raw, err := io.ReadAll(body)
		if err != nil {
			return req, err
		}
		req.Query = string(raw)
		return req, nil
	}

	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, err
		}
		return req, errors.New("POST body sent invalid JSON.")
	}
	return req, nil
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
