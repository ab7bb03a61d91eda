package commands

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcoobee/xcoobee-go-sdk/internal/constants"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
	"gopkg.in/yaml.v3"
)

func TestNewCampaignsCommand(t *testing.T) {
	cmd := NewCampaignsCommand()
	assert.Equal(t, "campaigns", cmd.Use)
	assert.Equal(t, []string{"campaign"}, cmd.Aliases)
	assert.Equal(t, "Manage consent campaigns", cmd.Short)
	assert.ElementsMatch(t, []string{"list", "get"}, subcommandNames(cmd))

	list := findSubcommand(cmd, "list")
	require.NotNil(t, list)
	assert.NotNil(t, list.RunE)

	for _, flagName := range []string{"all", "first", "max-pages"} {
		assert.NotNil(t, list.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}

	get := findSubcommand(cmd, "get")
	require.NotNil(t, get)
	assert.Equal(t, "get [CAMPAIGN_ID]", get.Use)
	assert.NotNil(t, get.Args)
}

func TestNewConsentsCommand(t *testing.T) {
	cmd := NewConsentsCommand()
	assert.Equal(t, "consents", cmd.Use)
	assert.Equal(t, []string{"consent"}, cmd.Aliases)
	assert.ElementsMatch(t,
		[]string{"list", "get", "cookies", "request", "confirm-change", "confirm-delete", "respond"},
		subcommandNames(cmd))

	request := findSubcommand(cmd, "request")
	require.NotNil(t, request)
	assert.Equal(t, "request XCOOBEE_ID", request.Use)
	assert.NotNil(t, request.Flags().Lookup("ref"))
	assert.NotNil(t, request.Flags().Lookup("campaign"))

	list := findSubcommand(cmd, "list")
	require.NotNil(t, list)
	assert.NotNil(t, list.Flags().Lookup("status"))

	for _, name := range []string{"confirm-change", "confirm-delete"} {
		confirm := findSubcommand(cmd, name)
		require.NotNil(t, confirm)
		assert.Equal(t, name+" CONSENT_ID", confirm.Use)
		assert.NotNil(t, confirm.RunE)
	}
}

func TestNewRelayCommand(t *testing.T) {
	cmd := NewRelayCommand()
	assert.Equal(t, "relay", cmd.Use)

	consents := findSubcommand(cmd, "consents")
	require.NotNil(t, consents)

	for _, flagName := range []string{"nats-url", "subject", "status", "first", "max-pages"} {
		assert.NotNil(t, consents.Flags().Lookup(flagName), "Flag %s should exist", flagName)
	}
}

func TestVersionCommand(t *testing.T) {
	setupViper(t, map[string]interface{}{"output": constants.FormatJSON})

	out, err := execute(t, NewVersionCommand("1.2.3", "abc", "today"))
	require.NoError(t, err)

	var info map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, map[string]string{"version": "1.2.3", "commit": "abc", "built": "today"}, info)
}

func TestConfigCommand(t *testing.T) {
	path := setupViper(t, nil)

	_, err := execute(t, NewConfigCommand(), "set", "api_key", "my-key")
	require.NoError(t, err)

	_, err = execute(t, NewConfigCommand(), "set", "api_secret", "my-secret")
	require.NoError(t, err)

	_, err = execute(t, NewConfigCommand(), "set", "colour", "blue")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var saved map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, "my-key", saved["api_key"])
	assert.Equal(t, "my-secret", saved["api_secret"])

	viper.Set("output", constants.FormatJSON)

	out, err := execute(t, NewConfigCommand(), "show")
	require.NoError(t, err)

	var shown map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &shown))
	assert.Equal(t, "my-key", shown["api_key"])
	assert.Equal(t, constants.MaskedSecret, shown["api_secret"])
}

func TestConfigSetCommand_KeepsEnvironmentOutOfFile(t *testing.T) {
	path := setupViper(t, nil)
	require.NoError(t, os.WriteFile(path, []byte("api_key: file-key\n"), 0o600))

	t.Setenv("XCOOBEE_API_SECRET", "env-only-secret")

	_, err := execute(t, NewConfigCommand(), "set", "output", "json")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "env-only-secret")
	assert.Contains(t, string(data), "api_key: file-key")
	assert.Contains(t, string(data), "output: json")
}

func TestCampaignsListCommand(t *testing.T) {
	platform := newPlatform(t, map[string]func(map[string]interface{}) string{
		"getCampaigns": func(variables map[string]interface{}) string {
			if variables["after"] == "c1" {
				return `{"data":{"campaigns":{"data":[{"campaign_cursor":"c2","campaign_name":"second","status":"active"}],` +
					`"page_info":{"end_cursor":"c2","has_next_page":false}}}}`
			}

			return `{"data":{"campaigns":{"data":[{"campaign_cursor":"c1","campaign_name":"first","status":"active"}],` +
				`"page_info":{"end_cursor":"c1","has_next_page":true}}}}`
		},
	})

	setupViper(t, map[string]interface{}{
		"api_url_root": platform.URL,
		"api_key":      "key",
		"output":       constants.FormatJSON,
	})
	t.Setenv("XCOOBEE_API_SECRET", "secret")

	t.Run("first page", func(t *testing.T) {
		out, err := execute(t, NewCampaignsCommand(), "list")
		require.NoError(t, err)

		var campaigns []xcoobee.Campaign
		require.NoError(t, json.Unmarshal([]byte(out), &campaigns))
		require.Len(t, campaigns, 1)
		assert.Equal(t, "first", campaigns[0].CampaignName)
	})

	t.Run("all pages", func(t *testing.T) {
		out, err := execute(t, NewCampaignsCommand(), "list", "--all")
		require.NoError(t, err)

		var campaigns []xcoobee.Campaign
		require.NoError(t, json.Unmarshal([]byte(out), &campaigns))
		require.Len(t, campaigns, 2)
		assert.Equal(t, "second", campaigns[1].CampaignName)
	})
}

func TestCampaignsGetCommand_RemoteFailure(t *testing.T) {
	platform := newPlatform(t, nil)

	setupViper(t, map[string]interface{}{
		"api_url_root": platform.URL,
		"api_key":      "key",
		"campaign_id":  "camp",
	})
	t.Setenv("XCOOBEE_API_SECRET", "secret")

	_, err := execute(t, NewCampaignsCommand(), "get")
	require.Error(t, err)

	var failure *xcoobee.ErrorResponse
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 400, failure.Code)
	assert.Contains(t, failure.Error(), "unexpected operation")
}

func TestConsentsRequestCommand(t *testing.T) {
	sent := make(chan map[string]interface{}, 1)

	platform := newPlatform(t, map[string]func(map[string]interface{}) string{
		"requestConsent": func(variables map[string]interface{}) string {
			config, _ := variables["config"].(map[string]interface{})
			sent <- config

			return `{"data":{"request_consent":{"ref_id":"ref-1"}}}`
		},
	})

	setupViper(t, map[string]interface{}{
		"api_url_root": platform.URL,
		"api_key":      "key",
		"campaign_id":  "camp",
		"output":       constants.FormatYAML,
	})
	t.Setenv("XCOOBEE_API_SECRET", "secret")

	_, err := execute(t, NewConsentsCommand(), "request", "~someone")
	require.ErrorIs(t, err, constants.ErrRefIDRequired)

	out, err := execute(t, NewConsentsCommand(), "request", "~someone", "--ref", "ref-1")
	require.NoError(t, err)
	assert.Contains(t, out, "ref_id: ref-1")

	config := <-sent
	assert.Equal(t, "~someone", config["xcoobee_id"])
	assert.Equal(t, "camp", config["campaign_cursor"])
}

func TestConsentsRespondCommand(t *testing.T) {
	sent := make(chan map[string]interface{}, 1)

	platform := newPlatform(t, map[string]func(map[string]interface{}) string{
		"sendUserMessage": func(variables map[string]interface{}) string {
			config, _ := variables["config"].(map[string]interface{})
			sent <- config

			return `{"data":{"send_message":{"note_text":"done"}}}`
		},
	})

	setupViper(t, map[string]interface{}{
		"api_url_root": platform.URL,
		"api_key":      "key",
		"output":       constants.FormatJSON,
	})
	t.Setenv("XCOOBEE_API_SECRET", "secret")

	_, err := execute(t, NewConsentsCommand(), "respond", "k1")
	require.ErrorIs(t, err, ErrMessageRequired)

	out, err := execute(t, NewConsentsCommand(), "respond", "k1", "--message", "done")
	require.NoError(t, err)

	var result xcoobee.UserDataResponseResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, []string{"successfully sent message"}, result.Progress)

	config := <-sent
	assert.Equal(t, "k1", config["consent_cursor"])
	assert.Equal(t, "user-cursor", config["user_cursor"])
	assert.Equal(t, "done", config["message"])
}

func TestCreateClient_MissingSettings(t *testing.T) {
	setupViper(t, nil)

	_, err := execute(t, NewConsentsCommand(), "list")
	require.ErrorIs(t, err, ErrAPIURLRootRequired)

	viper.Set("api_url_root", "https://api.example.com")

	_, err = execute(t, NewConsentsCommand(), "list")
	require.ErrorIs(t, err, ErrAPIKeyRequired)
}

func TestRelayConsentsCommand_RequiresNATS(t *testing.T) {
	setupViper(t, nil)

	_, err := execute(t, NewRelayCommand(), "consents", "--subject", "xcoobee.consents")
	require.ErrorIs(t, err, constants.ErrNATSURLRequired)

	_, err = execute(t, NewRelayCommand(), "consents", "--nats-url", "nats://127.0.0.1:4222")
	require.ErrorIs(t, err, constants.ErrSubjectRequired)
}

func TestRender_UnsupportedFormat(t *testing.T) {
	err := render(os.Stdout, "xml", nil, nil)
	require.ErrorIs(t, err, constants.ErrUnsupportedOutput)
}
