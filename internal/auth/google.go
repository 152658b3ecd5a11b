package auth

import (
	"context"
	"errors"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

const googleIssuer = "https://accounts.google.com"

// Profile is the identity extracted from a verified Google ID token.
type Profile struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Subject       string `json:"-"`
}

// GoogleAuthenticator verifies Google ID tokens and exchanges
// authorization codes for the sign-in flow. Construct it with New; a nil
// authenticator means Google sign-in is not configured.
type GoogleAuthenticator struct {
	provider *oidc.Provider
	oauth    oauth2.Config
	clientID string
}

// New builds a GoogleAuthenticator for the given OAuth client. Returns
// (nil, nil) when clientID is empty so callers can treat Google sign-in
// as disabled without a sentinel.
func New(ctx context.Context, clientID, clientSecret, redirectURL string) (*GoogleAuthenticator, error) {
	if clientID == "" {
		return nil, nil
	}

	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, err
	}

	return &GoogleAuthenticator{
		provider: provider,
		oauth: oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoints.Google,
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
		clientID: clientID,
	}, nil
}

// VerifyCredential verifies a raw Google ID token (the "credential" from
// Google Identity Services) and returns the profile it carries.
func (a *GoogleAuthenticator) VerifyCredential(ctx context.Context, rawIDToken string) (*Profile, error) {
	verifier := a.provider.Verifier(&oidc.Config{ClientID: a.clientID})

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := idToken.Claims(&profile); err != nil {
		return nil, err
	}
	profile.Subject = idToken.Subject

	return &profile, nil
}

// ExchangeCode exchanges an authorization code from the popup flow and
// verifies the ID token returned with it.
func (a *GoogleAuthenticator) ExchangeCode(ctx context.Context, code string) (*Profile, error) {
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("no id_token field in oauth2 token")
	}

	return a.VerifyCredential(ctx, rawIDToken)
}
