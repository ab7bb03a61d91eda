// Package config loads and saves the CLI settings file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
	"gopkg.in/yaml.v3"
)

// Settings is the content of the settings file.
type Settings struct {
	xcoobee.Config `mapstructure:",squash" yaml:",inline"`

	Output      string `json:"output,omitempty"       mapstructure:"output"       yaml:"output,omitempty"`
	PageSize    int    `json:"page_size,omitempty"    mapstructure:"page_size"    yaml:"page_size,omitempty"`
	NATSURL     string `json:"nats_url,omitempty"     mapstructure:"nats_url"     yaml:"nats_url,omitempty"`
	NATSSubject string `json:"nats_subject,omitempty" mapstructure:"nats_subject" yaml:"nats_subject,omitempty"`
}

// Keys lists every settable key, in display order.
var Keys = []string{
	"api_url_root",
	"api_key",
	"api_secret",
	"campaign_id",
	"output",
	"page_size",
	"nats_url",
	"nats_subject",
}

// DefaultPath returns $HOME/.xcoobee/config.yml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

// Load reads the settings file at path, or the default path when empty, and
// overlays XCOOBEE_* environment variables. A missing file is not an error.
func Load(path string) (*Settings, error) {
	return load(path, true)
}

// LoadFile reads only the settings file, without the environment overlay.
// Use it when the settings are going to be saved back, so values that only
// exist in the environment never reach the file.
func LoadFile(path string) (*Settings, error) {
	return load(path, false)
}

func load(path string, withEnv bool) (*Settings, error) {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}

		path = defaultPath
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(constants.ConfigFileType)

	if withEnv {
		v.SetEnvPrefix(constants.EnvPrefix)
		v.AutomaticEnv()
	}

	// Registering every key lets Unmarshal see values that only exist in
	// the environment.
	for _, key := range Keys {
		v.SetDefault(key, "")
	}

	v.SetDefault("page_size", constants.DefaultPageSize)

	err := v.ReadInConfig()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var settings Settings

	err = v.Unmarshal(&settings)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &settings, nil
}

// Save writes settings to path, or the default path when empty.
func Save(path string, settings *Settings) error {
	if path == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return err
		}

		path = defaultPath
	}

	err := os.MkdirAll(filepath.Dir(path), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(path, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Set assigns value to key.
func (s *Settings) Set(key, value string) error {
	switch key {
	case "api_url_root":
		s.APIURLRoot = value
	case "api_key":
		s.APIKey = value
	case "api_secret":
		s.APISecret = value
	case "campaign_id":
		s.CampaignID = value
	case "output":
		switch value {
		case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
			s.Output = value
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnsupportedOutput, value)
		}
	case "page_size":
		size, err := strconv.Atoi(value)
		if err != nil || size < 0 {
			return fmt.Errorf("invalid page_size %q: must be a non-negative integer", value)
		}

		s.PageSize = size
	case "nats_url":
		s.NATSURL = value
	case "nats_subject":
		s.NATSSubject = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

// Get returns the string form of key, masking the API secret.
func (s *Settings) Get(key string) (string, error) {
	switch key {
	case "api_url_root":
		return s.APIURLRoot, nil
	case "api_key":
		return s.APIKey, nil
	case "api_secret":
		if s.APISecret == "" {
			return "", nil
		}

		return constants.MaskedSecret, nil
	case "campaign_id":
		return s.CampaignID, nil
	case "output":
		return s.Output, nil
	case "page_size":
		return strconv.Itoa(s.PageSize), nil
	case "nats_url":
		return s.NATSURL, nil
	case "nats_subject":
		return s.NATSSubject, nil
	}

	return "", fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
}
