package mockd

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/fleetdeck/fleetdeck/internal/api"
	"github.com/fleetdeck/fleetdeck/internal/schema"
)

// Server serves the mock backend over HTTP.
type Server struct {
	store  *Store
	token  string // when non-empty, every request must carry it as a bearer token
	logger *log.Logger
	router *mux.Router
}

// NewServer builds the server around a store. token, when non-empty, turns
// on bearer-token enforcement.
func NewServer(store *Store, token string, logger *log.Logger) *Server {
	s := &Server{store: store, token: token, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.authenticate)
	for _, kind := range api.Kinds() {
		kind := kind
		r.HandleFunc(kind.Path(), s.handleList(kind)).Methods(http.MethodGet)
		r.HandleFunc(kind.Path(), s.handleCreate(kind)).Methods(http.MethodPost)
		r.HandleFunc(kind.Path()+"/{id}", s.handleGet(kind)).Methods(http.MethodGet)
		r.HandleFunc(kind.Path()+"/{id}", s.handlePatch(kind)).Methods(http.MethodPatch)
		r.HandleFunc(kind.Path()+"/{id}", s.handleDelete(kind)).Methods(http.MethodDelete)
	}
	return r
}

// ServeHTTP implements http.Handler for tests and embedding.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is canceled, then drains connections.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logf("mockd listening on %s", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.token != "" {
			header := r.Header.Get("Authorization")
			if header != "Bearer "+s.token {
				writeError(w, http.StatusUnauthorized, "UNAUTHORIZED")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(kind api.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		q := ListQuery{Search: map[string]string{}}
		q.Page, _ = strconv.Atoi(query.Get("page"))
		q.Size, _ = strconv.Atoi(query.Get("size"))
		for _, field := range kind.SearchFields() {
			if text := strings.TrimSpace(query.Get(field)); text != "" {
				q.Search[field] = text
			}
		}
		if raw := query.Get("status"); raw != "" {
			q.Status = strings.Split(raw, ",")
		}

		records, paginator := s.store.List(kind, q)
		writeJSON(w, http.StatusOK, map[string]any{
			"status":             "success",
			kind.CollectionKey(): records,
			"paginator":          paginator,
		})
	}
}

func (s *Server) handleGet(kind api.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		record, ok := s.store.Get(kind, mux.Vars(r)["id"])
		if !ok {
			writeError(w, http.StatusNotFound, notFoundCode(kind))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":           "success",
			kind.SingularKey(): record,
		})
	}
}

func (s *Server) handleCreate(kind api.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := s.decodeAndValidate(w, r, kind)
		if !ok {
			return
		}
		if email, _ := payload["email"].(string); s.store.EmailTaken(kind, email, "") {
			writeError(w, http.StatusConflict, "DUPLICATE_EMAIL")
			return
		}
		record := s.store.Insert(kind, Record(payload))
		s.logf("created %s %v", kind.SingularKey(), record["id"])
		writeJSON(w, http.StatusCreated, map[string]any{
			"status":  "success",
			"message": kind.Label() + " created.",
		})
	}
}

func (s *Server) handlePatch(kind api.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if _, ok := s.store.Get(kind, id); !ok {
			writeError(w, http.StatusNotFound, notFoundCode(kind))
			return
		}
		// Patches are sparse: validate the merged record, not the patch, so
		// required-field rules still hold.
		var changed map[string]any
		if err := json.NewDecoder(r.Body).Decode(&changed); err != nil {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED")
			return
		}
		current, _ := s.store.Get(kind, id)
		merged := current.clone()
		delete(merged, "id")
		for k, v := range changed {
			merged[k] = v
		}
		if errs, err := schema.Validate(kind, map[string]any(merged)); err != nil || !errs.Valid() {
			writeError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED")
			return
		}
		if email, _ := changed["email"].(string); s.store.EmailTaken(kind, email, id) {
			writeError(w, http.StatusConflict, "DUPLICATE_EMAIL")
			return
		}
		s.store.Patch(kind, id, Record(changed))
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "success",
			"message": kind.Label() + " updated.",
		})
	}
}

func (s *Server) handleDelete(kind api.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.store.Delete(kind, mux.Vars(r)["id"]) {
			writeError(w, http.StatusNotFound, notFoundCode(kind))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status":  "success",
			"message": kind.Label() + " deleted.",
		})
	}
}

func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, kind api.Kind) (map[string]any, bool) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED")
		return nil, false
	}
	errs, err := schema.Validate(kind, payload)
	if err != nil || !errs.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "VALIDATION_FAILED")
		return nil, false
	}
	return payload, true
}

func (s *Server) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

func notFoundCode(kind api.Kind) string {
	return strings.ToUpper(kind.SingularKey()) + "_NOT_FOUND"
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, code string) {
	message, _ := api.MessageFor(code)
	writeJSON(w, status, map[string]any{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}
