package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/xcoobee/xcoobee-go-sdk/internal/auth"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

type tokenRequest struct {
	Key    string `json:"key"`
	Secret string `json:"secret"`
}

// ExchangeToken posts the API key and secret to {urlRoot}/get_token.
func (a *API) ExchangeToken(ctx context.Context, creds xcoobee.Credentials) (*auth.Token, error) {
	resp, err := a.http.Post(ctx, creds.URLRoot, constants.TokenPath, tokenRequest{
		Key:    creds.Key,
		Secret: creds.Secret,
	})
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", err)
	}

	var token auth.Token

	err = json.Unmarshal(resp.Body, &token)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, constants.ErrEmptyToken
	}

	return &token, nil
}
