package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/tu-usuario/marketplace-api/internal/application/ports"
	"github.com/tu-usuario/marketplace-api/pkg/config"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

var _ ports.IdentityProvider = (*GoogleProvider)(nil)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleProvider verifica identidades federadas de Google: intercambia el
// authorization code por tokens y valida id_tokens contra el endpoint
// tokeninfo (audiencia = client_id propio).
type GoogleProvider struct {
	oauth  *oauth2.Config
	client *http.Client
}

// NewGoogleProvider crea el adaptador OAuth de Google.
func NewGoogleProvider(cfg config.OAuthConfig) *GoogleProvider {
	return &GoogleProvider{
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// ExchangeCode intercambia el authorization code por el id_token.
func (g *GoogleProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	tok, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("intercambiar code: %w", err)
	}
	idToken, ok := tok.Extra("id_token").(string)
	if !ok || idToken == "" {
		return "", fmt.Errorf("respuesta sin id_token")
	}
	return idToken, nil
}

// VerifyIDToken valida el id_token y devuelve la identidad externa.
func (g *GoogleProvider) VerifyIDToken(ctx context.Context, idToken string) (*ports.ExternalIdentity, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		tokenInfoURL+"?id_token="+url.QueryEscape(idToken), nil)
	if err != nil {
		return nil, fmt.Errorf("crear request tokeninfo: %w", err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultar tokeninfo: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("id_token inválido (status %d)", resp.StatusCode)
	}

	var info struct {
		Sub           string `json:"sub"`
		Aud           string `json:"aud"`
		Email         string `json:"email"`
		EmailVerified string `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decodificar tokeninfo: %w", err)
	}
	if info.Aud != g.oauth.ClientID {
		return nil, fmt.Errorf("audiencia del id_token no coincide")
	}
	return &ports.ExternalIdentity{
		ExternalID:    info.Sub,
		Email:         info.Email,
		EmailVerified: info.EmailVerified == "true",
		Name:          info.Name,
	}, nil
}
