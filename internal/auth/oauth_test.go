package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

func TestAuthURL(t *testing.T) {
	flow := NewOAuthFlow("client-id", "client-secret", "http://localhost:8081/api/v1/auth/google/callback", nil)
	raw := flow.AuthURL("state-token")

	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("parse auth url: %v", err)
	}
	q := u.Query()
	if q.Get("client_id") != "client-id" {
		t.Fatalf("client_id missing: %s", raw)
	}
	if q.Get("state") != "state-token" {
		t.Fatalf("state missing: %s", raw)
	}
	if q.Get("access_type") != "offline" {
		t.Fatalf("offline access not requested: %s", raw)
	}
	if q.Get("prompt") != "consent" {
		t.Fatalf("consent not forced: %s", raw)
	}
	scopes := q.Get("scope")
	for _, want := range []string{"openid", "email", "profile"} {
		if !strings.Contains(scopes, want) {
			t.Fatalf("scope %q missing from %q", want, scopes)
		}
	}
}

func TestCompleteExchangesAndFederates(t *testing.T) {
	identity := fakeIdentityAPI(t)
	defer identity.Close()

	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse token request: %v", err)
		}
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid_grant"})
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "at",
			"token_type":   "Bearer",
			"id_token":     "raw-google-id-token",
		})
	}))
	defer tokenSrv.Close()

	flow := NewOAuthFlow("client-id", "client-secret", "http://localhost/callback", NewService("test-key", identity.URL))
	flow.cfg.Endpoint = oauth2.Endpoint{AuthURL: tokenSrv.URL + "/auth", TokenURL: tokenSrv.URL + "/token"}
	flow.validate = func(_ context.Context, token, audience string) (*idtoken.Payload, error) {
		if token != "raw-google-id-token" || audience != "client-id" {
			t.Fatalf("validator got token=%q audience=%q", token, audience)
		}
		return &idtoken.Payload{Audience: audience}, nil
	}

	id, err := flow.Complete(context.Background(), "good-code")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if id.UID != "uid-g" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestCompleteBadCode(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": "invalid_grant"})
	}))
	defer tokenSrv.Close()

	flow := NewOAuthFlow("client-id", "client-secret", "http://localhost/callback", nil)
	flow.cfg.Endpoint = oauth2.Endpoint{AuthURL: tokenSrv.URL + "/auth", TokenURL: tokenSrv.URL + "/token"}

	if _, err := flow.Complete(context.Background(), "bad-code"); err == nil {
		t.Fatal("expected error for rejected code")
	}
}
