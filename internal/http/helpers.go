package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shivthakur007/expense/internal/auth"
	"github.com/shivthakur007/expense/internal/core"
	"github.com/shivthakur007/expense/internal/engine"
	"github.com/shivthakur007/expense/internal/repository"
	"github.com/shivthakur007/expense/internal/store"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	sessionKey   contextKey = "session"
)

// sessionCookie is the name of the client-held session token cookie.
const sessionCookie = "session"

// requireSession resolves the caller's identity before the handler runs.
// With auth disabled every request maps to the shared collection; with auth
// enabled a missing or invalid token ends the request with 401.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.tokens == nil {
			next(w, r)
			return
		}

		token := bearerToken(r)
		if token == "" {
			if c, err := r.Cookie(sessionCookie); err == nil {
				token = c.Value
			}
		}
		if token == "" {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		session, err := s.tokens.Parse(token)
		if err != nil {
			slog.WarnContext(r.Context(), "Session token rejected", "error", err)
			respondError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}

		ctx := auth.WithSession(r.Context(), session)
		next(w, r.WithContext(ctx))
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

// sessionFrom returns the request's session. The zero session selects the
// shared single-user collection.
func sessionFrom(r *http.Request) auth.Session {
	return auth.SessionFrom(r.Context())
}

// repo scopes a repository to the given user's collection.
func (s *Server) repo(uid string) *repository.ExpenseRepository {
	return repository.New(s.store, uid)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondStoreError maps domain failures onto HTTP statuses: validation
// errors to 422, auth rejections to 401, missing documents to 404,
// everything else to 500.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *auth.Error
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "expense not found")
	case errors.As(err, &authErr):
		respondError(w, http.StatusUnauthorized, authErr.Message)
	case errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrDescriptionTooLong),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed", "error", err, "url", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseFilter builds the record filter from query parameters. Absent
// parameters widen to everything: no parameters at all (or all=true) keeps
// the full snapshot, including records without a parseable date.
func parseFilter(r *http.Request, records []core.Expense) engine.Filter {
	q := r.URL.Query()

	hasNarrowing := q.Get("categories") != "" || q.Get("modes") != "" ||
		q.Get("from") != "" || q.Get("to") != ""
	if q.Get("all") == "true" || !hasNarrowing {
		return engine.Filter{ShowAll: true}
	}

	f := engine.DefaultFilter(records)
	if v := q.Get("categories"); v != "" {
		f.Categories = splitList(v)
	}
	if v := q.Get("modes"); v != "" {
		f.PaymentModes = splitList(v)
	}
	if v := q.Get("from"); v != "" {
		if t, err := core.ParseDate(v); err == nil {
			f.From = t
		}
	}
	if v := q.Get("to"); v != "" {
		if t, err := core.ParseDate(v); err == nil {
			f.To = t
		}
	}
	return f
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	// Remove control characters except tab, newline, carriage return
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
