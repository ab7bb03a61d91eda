package auth_test

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcoobee/xcoobee-go-sdk/internal/auth"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
)

func jwtWithExp(exp int64) string {
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"sub":"user","exp":%d}`, exp)))

	return header + "." + payload + ".signature"
}

func TestToken_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	reported := now.Add(2 * time.Hour)
	claimed := now.Add(3 * time.Hour)

	tests := []struct {
		name     string
		token    *auth.Token
		expected time.Time
	}{
		{
			name:     "expires_at wins",
			token:    &auth.Token{AccessToken: jwtWithExp(claimed.Unix()), ExpiresIn: 60, ExpiresAt: reported},
			expected: reported,
		},
		{
			name:     "expires_in over jwt claim",
			token:    &auth.Token{AccessToken: jwtWithExp(claimed.Unix()), ExpiresIn: 60},
			expected: now.Add(time.Minute),
		},
		{
			name:     "jwt exp claim",
			token:    &auth.Token{AccessToken: jwtWithExp(claimed.Unix())},
			expected: claimed,
		},
		{
			name:     "opaque token falls back to default lifetime",
			token:    &auth.Token{AccessToken: "opaque-token"},
			expected: now.Add(constants.DefaultTokenLifetime),
		},
		{
			name:     "jwt without exp falls back to default lifetime",
			token:    &auth.Token{AccessToken: "e30.e30.sig"},
			expected: now.Add(constants.DefaultTokenLifetime),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tt.expected.Equal(tt.token.Expiry(now)), "got %s", tt.token.Expiry(now))
		})
	}
}

func TestToken_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		expiresIn int
		expiresAt time.Time
		wantErr   bool
	}{
		{name: "integer expires_in", body: `{"token":"abc","expires_in":3600}`, expiresIn: 3600},
		{name: "float expires_in", body: `{"token":"abc","expires_in":3600.0}`, expiresIn: 3600},
		{name: "quoted expires_in", body: `{"token":"abc","expires_in":"120"}`, expiresIn: 120},
		{name: "epoch expires_at", body: `{"token":"abc","expires_at":1900000000}`, expiresAt: time.Unix(1900000000, 0)},
		{name: "fractional epoch expires_at", body: `{"token":"abc","expires_at":1900000000.5}`, expiresAt: time.Unix(1900000000, int64(500*time.Millisecond))},
		{name: "quoted epoch expires_at", body: `{"token":"abc","expires_at":"1900000000"}`, expiresAt: time.Unix(1900000000, 0)},
		{name: "rfc3339 expires_at", body: `{"token":"abc","expires_at":"2030-03-17T17:46:40Z"}`, expiresAt: time.Date(2030, 3, 17, 17, 46, 40, 0, time.UTC)},
		{name: "null expires_at", body: `{"token":"abc","expires_at":null}`},
		{name: "token only", body: `{"token":"abc"}`},
		{name: "garbage expires_at", body: `{"token":"abc","expires_at":"tomorrow"}`, wantErr: true},
		{name: "garbage expires_in", body: `{"token":"abc","expires_in":"soon"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var token auth.Token

			err := json.Unmarshal([]byte(tt.body), &token)
			if tt.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "abc", token.AccessToken)
			assert.Equal(t, tt.expiresIn, token.ExpiresIn)
			assert.True(t, tt.expiresAt.Equal(token.ExpiresAt), "got %s", token.ExpiresAt)
		})
	}
}
