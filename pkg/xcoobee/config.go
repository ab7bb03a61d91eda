package xcoobee

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// Static errors for err113 compliance.
var (
	ErrCampaignIDRequired = errors.New("Campaign ID is required")                             //nolint:staticcheck // message is part of the public contract
	ErrNoDefaultConfig    = errors.New("Illegal State: Default config has not been set yet.") //nolint:staticcheck // message is part of the public contract
)

// Config is one layer of configuration. Every field is optional; the empty
// string means "unset" and defers to the next layer.
//
// # Precedence
//
// Operations accept an optional per-call *Config that overrides the client's
// default *Config field by field (not wholesale):
//  1. a non-empty field on the per-call override wins;
//  2. otherwise the default config's field is used;
//  3. otherwise the field stays empty.
//
// The campaign id has one more layer in front: an explicit argument passed to
// the operation wins over both configs (see ResolveCampaignID).
//
// Config values are never mutated by the SDK.
type Config struct {
	// APIURLRoot: root of the platform API, e.g. "https://api.xcoobee.net".
	APIURLRoot string `json:"api_url_root,omitempty" yaml:"api_url_root,omitempty" mapstructure:"api_url_root"`
	// APIKey: the API key half of the key/secret pair exchanged for a token.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`
	// APISecret: the API secret half of the key/secret pair.
	APISecret string `json:"api_secret,omitempty" yaml:"api_secret,omitempty" mapstructure:"api_secret"`
	// CampaignID: default campaign for operations that require one.
	CampaignID string `json:"campaign_id,omitempty" yaml:"campaign_id,omitempty" mapstructure:"campaign_id"`
}

// EffectiveConfig is the resolved configuration for a single call.
type EffectiveConfig struct {
	APIURLRoot string
	APIKey     string
	APISecret  string
	CampaignID string
}

// Credentials returns the cache identity of the effective config.
func (c EffectiveConfig) Credentials() Credentials {
	return Credentials{URLRoot: c.APIURLRoot, Key: c.APIKey, Secret: c.APISecret}
}

// Credentials identifies a connection: the (url root, key, secret) triple.
type Credentials struct {
	URLRoot string
	Key     string
	Secret  string
}

// CacheKey returns a digest of the triple suitable for use as a map key.
// Triples differing in any component never share a key.
func (c Credentials) CacheKey() string {
	sum := sha256.Sum256([]byte(c.URLRoot + "\x00" + c.Key + "\x00" + c.Secret))

	return hex.EncodeToString(sum[:])
}

// ConfigError reports a usage error found while resolving configuration.
// It is returned directly to the caller and never wrapped in a Response.
type ConfigError struct {
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the underlying sentinel.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError checks if the error is a usage error.
func IsConfigError(err error) bool {
	cfgErr := &ConfigError{}

	return errors.As(err, &cfgErr)
}

// ResolveConfig merges override over def field by field. Either may be nil.
func ResolveConfig(override, def *Config) EffectiveConfig {
	return EffectiveConfig{
		APIURLRoot: pick(override, def, func(c *Config) string { return c.APIURLRoot }),
		APIKey:     pick(override, def, func(c *Config) string { return c.APIKey }),
		APISecret:  pick(override, def, func(c *Config) string { return c.APISecret }),
		CampaignID: pick(override, def, func(c *Config) string { return c.CampaignID }),
	}
}

// ResolveCampaignID applies explicit > override > default. It fails before
// any network activity when no layer supplies a campaign id.
func ResolveCampaignID(explicit string, override, def *Config) (string, error) {
	if appearsToBeACampaignID(explicit) {
		return explicit, nil
	}

	campaignID := pick(override, def, func(c *Config) string { return c.CampaignID })
	if !appearsToBeACampaignID(campaignID) {
		return "", &ConfigError{Err: ErrCampaignIDRequired}
	}

	return campaignID, nil
}

// AssertCampaignID returns a usage error unless campaignID looks usable.
func AssertCampaignID(campaignID string) error {
	if !appearsToBeACampaignID(campaignID) {
		return &ConfigError{Err: ErrCampaignIDRequired}
	}

	return nil
}

// Only emptiness is checked; a whitespace-only id is passed to the server as is.
func appearsToBeACampaignID(campaignID string) bool {
	return len(campaignID) > 0
}

func pick(override, def *Config, field func(*Config) string) string {
	if override != nil {
		if v := field(override); v != "" {
			return v
		}
	}

	if def != nil {
		return field(def)
	}

	return ""
}
