package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/shivthakur007/expense/internal/auth"
)

// oauthStateCookie holds the CSRF state nonce between the redirect to the
// provider and the callback.
const oauthStateCookie = "oauth_state"

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token string `json:"token"`
	UID   string `json:"uid"`
	Email string `json:"email"`
}

func (s *Server) handleSignUp(w http.ResponseWriter, r *http.Request) {
	s.handleCredentials(w, r, s.identity.SignUp)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.handleCredentials(w, r, s.identity.Login)
}

func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request, call func(ctx context.Context, email, password string) (auth.Identity, error)) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = sanitizeInput(req.Email)
	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}

	id, err := call(r.Context(), req.Email, req.Password)
	if err != nil {
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			respondError(w, http.StatusUnauthorized, authErr.Message)
			return
		}
		respondStoreError(w, r, err)
		return
	}

	s.establishSession(w, r, id)
}

// establishSession issues a token for the identity, sets the session cookie
// and responds with the token body.
func (s *Server) establishSession(w http.ResponseWriter, r *http.Request, id auth.Identity) {
	token, err := s.tokens.Issue(id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.InfoContext(r.Context(), "Session established", "uid", id.UID)
	respondJSON(w, http.StatusOK, sessionResponse{Token: token, UID: id.UID, Email: id.Email})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleGoogleStart(w http.ResponseWriter, r *http.Request) {
	state := generateState()
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int((10 * time.Minute).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.oauth.AuthURL(state), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		respondError(w, http.StatusUnauthorized, "oauth state mismatch")
		return
	}
	// The state nonce is single-use.
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusUnauthorized, "authorization code missing")
		return
	}

	id, err := s.oauth.Complete(r.Context(), code)
	if err != nil {
		var authErr *auth.Error
		if errors.As(err, &authErr) {
			respondError(w, http.StatusUnauthorized, authErr.Message)
			return
		}
		respondStoreError(w, r, err)
		return
	}

	s.establishSession(w, r, id)
}

func generateState() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return generateRequestID()
	}
	return hex.EncodeToString(b)
}
