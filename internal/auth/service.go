package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the identity provider's accounts API root.
const DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// Service is the REST client for the identity provider. Calls are single
// blocking round-trips; nothing is retried and no tokens are stored.
type Service struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewService builds a client for the given API key. An empty baseURL
// selects the production endpoint; tests point it at a fake server.
func NewService(apiKey, baseURL string) *Service {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Service{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// SignUp registers a new email/password account and returns its identity.
func (s *Service) SignUp(ctx context.Context, email, password string) (Identity, error) {
	return s.credentialCall(ctx, "accounts:signUp", email, password)
}

// Login verifies an email/password pair and returns the account identity.
func (s *Service) Login(ctx context.Context, email, password string) (Identity, error) {
	return s.credentialCall(ctx, "accounts:signInWithPassword", email, password)
}

// SignInWithIDP exchanges a Google identity token for a provider identity
// via the federated sign-in endpoint.
func (s *Service) SignInWithIDP(ctx context.Context, idToken, requestURI string) (Identity, error) {
	return s.post(ctx, "accounts:signInWithIdp", map[string]any{
		"postBody":            "id_token=" + url.QueryEscape(idToken) + "&providerId=google.com",
		"requestUri":          requestURI,
		"returnIdpCredential": true,
		"returnSecureToken":   true,
	})
}

func (s *Service) credentialCall(ctx context.Context, action, email, password string) (Identity, error) {
	return s.post(ctx, action, map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
}

type accountsResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	Error   *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Service) post(ctx context.Context, action string, body map[string]any) (Identity, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return Identity{}, fmt.Errorf("encode %s request: %w", action, err)
	}

	endpoint := fmt.Sprintf("%s/%s?key=%s", s.baseURL, action, url.QueryEscape(s.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return Identity{}, fmt.Errorf("build %s request: %w", action, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return Identity{}, &Error{Message: fmt.Sprintf("identity provider unreachable: %v", err)}
	}
	defer resp.Body.Close()

	var decoded accountsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Identity{}, &Error{Message: fmt.Sprintf("malformed identity response: %v", err)}
	}

	if decoded.Error != nil {
		slog.WarnContext(ctx, "Identity provider rejected request",
			"action", action, "message", decoded.Error.Message)
		return Identity{}, &Error{Message: decoded.Error.Message}
	}
	if resp.StatusCode != http.StatusOK || decoded.LocalID == "" {
		return Identity{}, &Error{Message: fmt.Sprintf("identity request failed with status %d", resp.StatusCode)}
	}

	return Identity{UID: decoded.LocalID, Email: decoded.Email}, nil
}
