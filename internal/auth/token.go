package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
)

// Token is the result of a key/secret exchange.
type Token struct {
	AccessToken string    `json:"token"`
	ExpiresIn   int       `json:"expires_in,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// UnmarshalJSON accepts expires_in as any JSON number, and expires_at as
// epoch seconds or an RFC 3339 string.
func (t *Token) UnmarshalJSON(data []byte) error {
	var raw struct {
		AccessToken string          `json:"token"`
		ExpiresIn   json.Number     `json:"expires_in"`
		ExpiresAt   json.RawMessage `json:"expires_at"`
	}

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	*t = Token{AccessToken: raw.AccessToken}

	if raw.ExpiresIn != "" {
		seconds, err := raw.ExpiresIn.Float64()
		if err != nil {
			return fmt.Errorf("invalid expires_in %q: %w", raw.ExpiresIn, err)
		}

		t.ExpiresIn = int(seconds)
	}

	t.ExpiresAt, err = parseExpiresAt(raw.ExpiresAt)

	return err
}

func parseExpiresAt(raw json.RawMessage) (time.Time, error) {
	value := strings.TrimSpace(string(raw))
	if value == "" || value == "null" {
		return time.Time{}, nil
	}

	if strings.HasPrefix(value, `"`) {
		var text string

		err := json.Unmarshal(raw, &text)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid expires_at: %w", err)
		}

		if text == "" {
			return time.Time{}, nil
		}

		parsed, err := time.Parse(time.RFC3339, text)
		if err == nil {
			return parsed, nil
		}

		value = text
	}

	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", constants.ErrInvalidExpiry, value)
	}

	whole, frac := math.Modf(seconds)

	return time.Unix(int64(whole), int64(frac*float64(time.Second))), nil
}

// Expiry returns the absolute expiry of the token as seen at now. A reported
// expires_at wins over expires_in, which wins over the JWT exp claim; when
// none is available the default lifetime applies.
func (t *Token) Expiry(now time.Time) time.Time {
	if !t.ExpiresAt.IsZero() {
		return t.ExpiresAt
	}

	if t.ExpiresIn > 0 {
		return now.Add(time.Duration(t.ExpiresIn) * time.Second)
	}

	if exp, err := decodeJWTExpiration(t.AccessToken); err == nil {
		return *exp
	}

	return now.Add(constants.DefaultTokenLifetime)
}

// decodeJWTExpiration extracts expiration time from a JWT token.
func decodeJWTExpiration(token string) (*time.Time, error) {
	parts := strings.Split(token, ".")
	if len(parts) != constants.TokenPartsCount {
		return nil, constants.ErrInvalidJWTFormat
	}

	payload := parts[1]

	// Add padding if necessary
	if len(payload)%4 != 0 {
		payload += strings.Repeat("=", constants.Base64PaddingLength-len(payload)%constants.Base64PaddingLength)
	}

	payloadBytes, err := base64.URLEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode JWT payload: %w", err)
	}

	var claims struct {
		Exp int64 `json:"exp"`
	}

	err = json.Unmarshal(payloadBytes, &claims)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT claims: %w", err)
	}

	if claims.Exp == 0 {
		return nil, constants.ErrNoExpirationClaim
	}

	expTime := time.Unix(claims.Exp, 0)

	return &expTime, nil
}
