package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// OAuthFlow runs the Google authorization-code grant and hands the
// resulting identity token to the federated sign-in endpoint.
type OAuthFlow struct {
	cfg *oauth2.Config
	svc *Service

	// validate checks the identity token's signature and audience. Swapped
	// out in tests; defaults to idtoken.Validate against Google's certs.
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewOAuthFlow(clientID, clientSecret, redirectURL string, svc *Service) *OAuthFlow {
	return &OAuthFlow{
		cfg: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		svc:      svc,
		validate: idtoken.Validate,
	}
}

// AuthURL builds the authorization URL. Offline access and a forced consent
// prompt are requested so the provider issues a refresh token.
func (f *OAuthFlow) AuthURL(state string) string {
	return f.cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

// Complete exchanges the authorization code for tokens, validates the
// identity token, and signs the user in with the identity provider.
func (f *OAuthFlow) Complete(ctx context.Context, code string) (Identity, error) {
	tok, err := f.cfg.Exchange(ctx, code)
	if err != nil {
		return Identity{}, &Error{Message: fmt.Sprintf("authorization code exchange failed: %v", err)}
	}

	rawID, ok := tok.Extra("id_token").(string)
	if !ok || rawID == "" {
		return Identity{}, &Error{Message: "token response carried no identity token"}
	}

	if _, err := f.validate(ctx, rawID, f.cfg.ClientID); err != nil {
		return Identity{}, &Error{Message: fmt.Sprintf("identity token rejected: %v", err)}
	}

	return f.svc.SignInWithIDP(ctx, rawID, f.cfg.RedirectURL)
}
