// Package dispatch routes one-shot function invocations to domain
// operations. Serverless platforms map one file to one URL, so a single
// entry point must multiplex on method, id and an action query parameter.
// The dispatcher is stateless and re-entrant: it assumes nothing about
// prior handlers in the process lifetime.
package dispatch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	appErrors "github.com/newsphere/newsphere-api/pkg/errors"
	"github.com/newsphere/newsphere-api/pkg/middleware/cors"
	"github.com/newsphere/newsphere-api/pkg/response"
)

// Request is the method/id/action/query/body slice of an invocation that
// domain operations consume.
type Request struct {
	Method string
	ID     string
	Flag   string
	Action string
	Query  url.Values
	Header http.Header
	Body   io.Reader
}

// Result pairs a status code with the response envelope.
type Result struct {
	Status   int
	Envelope response.Envelope
}

// Handler is one domain operation.
type Handler func(ctx context.Context, req *Request) *Result

// OK returns a 200 success result.
func OK(data interface{}) *Result {
	return &Result{Status: http.StatusOK, Envelope: response.Envelope{Success: true, Data: data}}
}

// Page returns a 200 success result with pagination metadata.
func Page(data interface{}, pagination *response.Pagination) *Result {
	return &Result{Status: http.StatusOK, Envelope: response.Envelope{Success: true, Data: data, Pagination: pagination}}
}

// Created returns a 201 success result.
func Created(data interface{}) *Result {
	return &Result{Status: http.StatusCreated, Envelope: response.Envelope{Success: true, Data: data}}
}

// Message returns a success result with a state-describing message.
func Message(data interface{}, message string) *Result {
	return &Result{Status: http.StatusOK, Envelope: response.Envelope{Success: true, Data: data, Message: message}}
}

// Fail converts an error into its envelope form.
func Fail(err error) *Result {
	appErr := appErrors.FromError(err)
	return &Result{
		Status:   appErr.Status,
		Envelope: response.Envelope{Success: false, Error: appErr.Message, Errors: appErr.Details},
	}
}

// Resource wires the operations of one entity into a single entry point.
// Nil slots mean the method is not supported.
type Resource struct {
	// Mount is the URL prefix the entry point is bound to, e.g. "/api/news";
	// path segments beyond it are read as /{id} and /{id}/{flag}.
	Mount string

	List   Handler
	Get    Handler
	Create Handler
	Update Handler
	Delete Handler

	// Actions are named non-CRUD operations selected by the action query
	// parameter; they win over method-based defaults.
	Actions map[string]Handler

	// Toggles are PATCH flag operations selected by the second path segment
	// or the flag query parameter.
	Toggles map[string]Handler

	AllowedOrigins []string
	Logger         *zap.Logger
}

// HandlerFunc compiles the resource into a plain net/http handler. Every
// branch, including panics, resolves through the response envelope.
func (rs *Resource) HandlerFunc() http.HandlerFunc {
	logger := rs.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("handler panic",
					zap.Any("panic", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)
				response.WriteError(w, appErrors.ErrInternal)
			}
		}()

		cors.Headers(w, r.Header.Get("Origin"), rs.AllowedOrigins)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		req := rs.parse(r)
		result := rs.dispatch(r.Context(), req)
		if result.Status == http.StatusMethodNotAllowed {
			w.Header().Set("Allow", rs.allowHeader())
		}
		response.Write(w, result.Status, result.Envelope)
	}
}

func (rs *Resource) parse(r *http.Request) *Request {
	query := r.URL.Query()
	req := &Request{
		Method: r.Method,
		ID:     query.Get("id"),
		Flag:   query.Get("flag"),
		Action: query.Get("action"),
		Query:  query,
		Header: r.Header,
		Body:   r.Body,
	}

	rest := strings.Trim(strings.TrimPrefix(r.URL.Path, rs.Mount), "/")
	if rest != "" {
		segments := strings.SplitN(rest, "/", 2)
		if req.ID == "" {
			req.ID = segments[0]
		}
		if len(segments) == 2 && req.Flag == "" {
			req.Flag = segments[1]
		}
	}

	return req
}

func (rs *Resource) dispatch(ctx context.Context, req *Request) *Result {
	// Named actions override method-based defaults.
	if req.Action != "" {
		if handler, ok := rs.Actions[req.Action]; ok {
			return run(handler, ctx, req)
		}
	}

	switch req.Method {
	case http.MethodGet:
		if req.ID == "" {
			return handle(rs.List, ctx, req, false)
		}
		return handle(rs.Get, ctx, req, true)
	case http.MethodPost:
		return handle(rs.Create, ctx, req, false)
	case http.MethodPut:
		return handle(rs.Update, ctx, req, true)
	case http.MethodPatch:
		if len(rs.Toggles) == 0 {
			return Fail(appErrors.ErrMethodNotAllowed)
		}
		if req.ID == "" {
			return Fail(appErrors.Clone(appErrors.ErrValidation, "id is required"))
		}
		handler, ok := rs.Toggles[req.Flag]
		if !ok {
			return Fail(appErrors.Clone(appErrors.ErrValidation, "unknown toggle flag"))
		}
		return run(handler, ctx, req)
	case http.MethodDelete:
		return handle(rs.Delete, ctx, req, true)
	}

	return Fail(appErrors.ErrMethodNotAllowed)
}

// handle rejects unsupported methods and id-scoped calls without an id
// before any store access is attempted.
func handle(handler Handler, ctx context.Context, req *Request, needsID bool) *Result {
	if handler == nil {
		return Fail(appErrors.ErrMethodNotAllowed)
	}
	if needsID && req.ID == "" {
		return Fail(appErrors.Clone(appErrors.ErrValidation, "id is required"))
	}
	return run(handler, ctx, req)
}

func run(handler Handler, ctx context.Context, req *Request) *Result {
	result := handler(ctx, req)
	if result == nil {
		return Fail(appErrors.ErrInternal)
	}
	return result
}

func (rs *Resource) allowHeader() string {
	allowed := []string{http.MethodOptions}
	if rs.List != nil || rs.Get != nil {
		allowed = append(allowed, http.MethodGet)
	}
	if rs.Create != nil {
		allowed = append(allowed, http.MethodPost)
	}
	if rs.Update != nil {
		allowed = append(allowed, http.MethodPut)
	}
	if len(rs.Toggles) > 0 {
		allowed = append(allowed, http.MethodPatch)
	}
	if rs.Delete != nil {
		allowed = append(allowed, http.MethodDelete)
	}
	return strings.Join(allowed, ", ")
}

// WithAuth guards a handler with bearer-token verification. The check runs
// before any domain logic.
func WithAuth(verify func(ctx context.Context, token string) error, handler Handler) Handler {
	return func(ctx context.Context, req *Request) *Result {
		token := bearerToken(req.Header.Get("Authorization"))
		if token == "" {
			return Fail(appErrors.ErrUnauthorized)
		}
		if err := verify(ctx, token); err != nil {
			return Fail(err)
		}
		return handler(ctx, req)
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
