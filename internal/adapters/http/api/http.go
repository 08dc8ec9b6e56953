// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/crm/pkg/logger"
	"github.com/rs/cors"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the storage implementation.
type Dependencies interface {
	ContactDependencies
	CommentDependencies
	TaskDependencies
	LookupDependencies
	UserDependencies
	Pinger
}

const defaultRequestTimeout = 15 * time.Second

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for access logs and internal errors.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRequestTimeout bounds each request. Non-positive values keep the default.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithCORS replaces the cross-origin policy.
func WithCORS(opts cors.Options) Option {
	return func(s *Server) {
		s.cors = opts
	}
}

// Server wires HTTP routes for the CRM API.
type Server struct {
	logger         logger.Logger
	requestTimeout time.Duration
	cors           cors.Options

	healthHandler   *HealthHandler
	readyHandler    *ReadyHandler
	statsHandler    *StatsHandler
	contactsHandler *ContactsHandler
	commentsHandler *CommentsHandler
	tasksHandler    *TasksHandler
	lookupsHandler  *LookupsHandler
	usersHandler    *UsersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		requestTimeout: defaultRequestTimeout,
		cors:           PermissiveCORS(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}
	rs := responder{logger: s.logger}

	s.healthHandler = NewHealthHandler()
	s.readyHandler = NewReadyHandler(deps)
	s.statsHandler = NewStatsHandler(statsProvider)
	s.contactsHandler = NewContactsHandler(deps, rs)
	s.commentsHandler = NewCommentsHandler(deps, rs)
	s.tasksHandler = NewTasksHandler(deps, rs)
	s.lookupsHandler = NewLookupsHandler(deps, rs)
	s.usersHandler = NewUsersHandler(deps, rs)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Operational endpoints
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /readyz", MetricsMiddleware(s.readyHandler.HandleReady, "readyz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	// Contacts
	route(mux, http.MethodGet, "/contacts/", "contacts", s.contactsHandler.HandleList)
	route(mux, http.MethodGet, "/contact/", "contact", s.contactsHandler.HandleGet)
	route(mux, http.MethodPost, "/contacts/", "contacts", s.contactsHandler.HandleCreate)
	route(mux, http.MethodPut, "/contacts/", "contacts", s.contactsHandler.HandleUpdate)
	mux.HandleFunc("DELETE /contacts/{contact_id}", MetricsMiddleware(s.contactsHandler.HandleDelete, "contacts"))

	// Comments
	route(mux, http.MethodGet, "/comments/", "comments", s.commentsHandler.HandleList)
	route(mux, http.MethodGet, "/comment/", "comment", s.commentsHandler.HandleGet)
	route(mux, http.MethodPost, "/comments/", "comments", s.commentsHandler.HandleCreate)
	route(mux, http.MethodPut, "/comments/", "comments", s.commentsHandler.HandleUpdate)
	mux.HandleFunc("DELETE /comments/{id_comment}", MetricsMiddleware(s.commentsHandler.HandleDelete, "comments"))

	// Tasks
	route(mux, http.MethodGet, "/tasks/", "tasks", s.tasksHandler.HandleList)
	route(mux, http.MethodGet, "/task/", "task", s.tasksHandler.HandleGet)
	route(mux, http.MethodPost, "/tasks/", "tasks", s.tasksHandler.HandleCreate)
	route(mux, http.MethodPut, "/tasks/", "tasks", s.tasksHandler.HandleUpdate)
	mux.HandleFunc("DELETE /tasks/{task_id}", MetricsMiddleware(s.tasksHandler.HandleDelete, "tasks"))

	// Lookups
	route(mux, http.MethodGet, "/genders/", "genders", s.lookupsHandler.HandleListGenders)
	route(mux, http.MethodGet, "/gender/", "gender", s.lookupsHandler.HandleGetGender)
	route(mux, http.MethodPost, "/gender/", "gender", s.lookupsHandler.HandleCreateGender)
	route(mux, http.MethodGet, "/contact_types/", "contact_types", s.lookupsHandler.HandleListContactTypes)
	route(mux, http.MethodGet, "/origins/", "origins", s.lookupsHandler.HandleListOrigins)
	route(mux, http.MethodGet, "/status/", "status", s.lookupsHandler.HandleListStatuses)

	// Users
	route(mux, http.MethodGet, "/users/", "users", s.usersHandler.HandleList)
	route(mux, http.MethodGet, "/user/", "user", s.usersHandler.HandleGet)
}

// Handler wraps h with the middleware every request goes through:
// request logging, panic recovery, CORS and the request deadline.
func (s *Server) Handler(h http.Handler) http.Handler {
	return Chain(h,
		RequestLogger(s.logger),
		Recoverer(s.logger),
		CORS(s.cors),
		Timeout(s.requestTimeout),
	)
}

// route registers path both with and without its trailing slash so that
// "/contacts" and "/contacts/" reach the same handler.
func route(mux *http.ServeMux, method, path, endpoint string, h http.HandlerFunc) {
	wrapped := MetricsMiddleware(h, endpoint)
	mux.HandleFunc(method+" "+path+"{$}", wrapped)
	if trimmed := path[:len(path)-1]; trimmed != "" {
		mux.HandleFunc(method+" "+trimmed, wrapped)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// responder holds what every resource handler needs to answer requests.
type responder struct {
	logger logger.Logger
}

func (rs responder) ok(w http.ResponseWriter, v any) {
	writeJSON(w, http.StatusOK, v)
}

// fail writes err as a JSON error body. Internal errors are logged with
// their cause; clients only see a generic message.
func (rs responder) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body, e := classify(err)
	if status >= http.StatusInternalServerError {
		rs.logger.Error(r.Context(), "request failed",
			logger.String("op", e.Op),
			logger.String("request_id", RequestID(r.Context())),
			logger.Error(err),
		)
	} else {
		rs.logger.Debug(r.Context(), "request rejected",
			logger.String("op", e.Op),
			logger.Int("status", status),
			logger.Error(err),
		)
	}
	writeJSON(w, status, body)
}
