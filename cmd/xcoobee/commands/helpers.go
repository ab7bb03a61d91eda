package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xcoobee/xcoobee-go-sdk/internal/config"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/log/zaplog"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobeeclient"
	"go.uber.org/zap"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

const jsonIndent = "  "

// Common static errors used throughout the commands package.
var (
	ErrAPIURLRootRequired = errors.New("API URL root is required (use --api-url-root or 'config set api_url_root')")
	ErrAPIKeyRequired     = errors.New("API key is required (use --api-key or 'config set api_key')")
	ErrAPISecretRequired  = errors.New("API secret is required (set XCOOBEE_API_SECRET or 'config set api_secret')")
	ErrConsentIDRequired  = errors.New("consent ID is required")
	ErrXcooBeeIDRequired  = errors.New("XcooBee ID is required")
	ErrMessageRequired    = errors.New("--message is required")
)

// readPassword is replaced in tests.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(syscall.Stdin))
}

// loadSettings reads the settings file and overlays the global flags.
func loadSettings() (*config.Settings, error) {
	settings, err := config.Load(viper.GetString("config"))
	if err != nil {
		return nil, err
	}

	overlay := map[string]*string{
		"api_url_root": &settings.APIURLRoot,
		"api_key":      &settings.APIKey,
		"campaign_id":  &settings.CampaignID,
		"output":       &settings.Output,
	}

	for key, target := range overlay {
		if value := viper.GetString(key); value != "" {
			*target = value
		}
	}

	if settings.Output == "" {
		settings.Output = constants.FormatTable
	}

	return settings, nil
}

// newLogger returns a development logger with --verbose and a no-op one
// otherwise.
func newLogger() (*zap.Logger, error) {
	if !viper.GetBool("verbose") {
		return zap.NewNop(), nil
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}

// createClient builds an SDK client from settings. A missing secret is
// prompted for when stdin is a terminal.
func createClient(cmd *cobra.Command, settings *config.Settings, pageSize int) (xcoobee.Client, func(), error) {
	if settings.APIURLRoot == "" {
		return nil, nil, ErrAPIURLRootRequired
	}

	if settings.APIKey == "" {
		return nil, nil, ErrAPIKeyRequired
	}

	if settings.APISecret == "" {
		secret, err := promptSecret(cmd)
		if err != nil {
			return nil, nil, err
		}

		settings.APISecret = secret
	}

	logger, err := newLogger()
	if err != nil {
		return nil, nil, err
	}

	if pageSize <= 0 {
		pageSize = settings.PageSize
	}

	cfg := settings.Config
	client := xcoobeeclient.New(&cfg,
		xcoobeeclient.WithLogger(zaplog.New(logger)),
		xcoobeeclient.WithDebug(viper.GetBool("verbose")),
		xcoobeeclient.WithSkipTLSVerify(viper.GetBool("skip-ssl-validation")),
		xcoobeeclient.WithPageSize(pageSize),
	)

	return client, func() { _ = logger.Sync() }, nil
}

func promptSecret(cmd *cobra.Command) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", ErrAPISecretRequired
	}

	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "API secret: ")

	secret, err := readPassword()

	_, _ = fmt.Fprintln(cmd.ErrOrStderr())

	if err != nil {
		return "", fmt.Errorf("failed to read API secret: %w", err)
	}

	if len(secret) == 0 {
		return "", ErrAPISecretRequired
	}

	return string(secret), nil
}

// unwrap returns the result of resp, or its failure as an error.
func unwrap[T any](resp *xcoobee.Response[T], err error) (T, error) {
	if err != nil {
		var zero T

		return zero, err
	}

	return resp.Unwrap()
}

// render writes v as JSON or YAML, or calls table for the table format.
func render(w io.Writer, format string, v interface{}, table func(*tablewriter.Table)) error {
	switch format {
	case constants.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", jsonIndent)

		return encoder.Encode(v)
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(w)

		err := encoder.Encode(v)
		if err != nil {
			return err
		}

		return encoder.Close()
	case constants.FormatTable, "":
		t := tablewriter.NewWriter(w)
		table(t)

		err := t.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}

	return fmt.Errorf("%w: %s", constants.ErrUnsupportedOutput, format)
}

func orNotAvailable(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

func localized(texts []xcoobee.LocalizedText) string {
	if len(texts) == 0 {
		return constants.NotAvailable
	}

	return texts[0].Text
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}
