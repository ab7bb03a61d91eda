package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

func subcommandNames(cmd *cobra.Command) []string {
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	return names
}

// setupViper resets the global viper state, points the config flag at a
// fresh temp file and applies values.
func setupViper(t *testing.T, values map[string]interface{}) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yml")
	viper.Set("config", path)

	for key, value := range values {
		viper.Set(key, value)
	}

	return path
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return out.String(), err
}

// newPlatform serves the token exchange and answers GraphQL operations by
// operation name.
func newPlatform(t *testing.T, answers map[string]func(variables map[string]interface{}) string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/get_token":
			_, _ = w.Write([]byte(`{"token":"token","expires_in":3600}`))
		case "/graphql":
			var req struct {
				Query     string                 `json:"query"`
				Variables map[string]interface{} `json:"variables"`
			}

			_ = json.NewDecoder(r.Body).Decode(&req)

			if strings.Contains(req.Query, "query getUser") {
				_, _ = w.Write([]byte(`{"data":{"user":{"cursor":"user-cursor","xcoobee_id":"~owner"}}}`))

				return
			}

			for name, answer := range answers {
				if strings.Contains(req.Query, name+"(") {
					_, _ = w.Write([]byte(answer(req.Variables)))

					return
				}
			}

			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"errors":[{"message":"unexpected operation"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)

	return server
}
