package adapthttp

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"petcare/internal/config"
)

// SSO holds the OIDC provider used for single sign-on.
type SSO struct {
	oauth2   oauth2.Config
	verifier *oidc.IDTokenVerifier
}

// NewSSO discovers the provider at cfg.Issuer.
func NewSSO(ctx context.Context, cfg config.OIDCConfig) (*SSO, error) {
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery: %w", err)
	}
	return &SSO{
		oauth2: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

// AuthCodeURL returns the provider login URL for state.
func (s *SSO) AuthCodeURL(state string) string {
	return s.oauth2.AuthCodeURL(state)
}

// Email exchanges the authorization code and returns the verified email
// claim of the ID token.
func (s *SSO) Email(ctx context.Context, code string) (string, error) {
	token, err := s.oauth2.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange token: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return "", errors.New("no id_token in response")
	}

	idToken, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return "", fmt.Errorf("verify id_token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified *bool  `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return "", fmt.Errorf("parse claims: %w", err)
	}
	if claims.Email == "" {
		return "", errors.New("id_token has no email")
	}
	if claims.EmailVerified != nil && !*claims.EmailVerified {
		return "", errors.New("email not verified by provider")
	}
	return claims.Email, nil
}

func generateState() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}
