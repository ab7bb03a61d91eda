//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	APIURLRoot string
	APIKey     string
	APISecret  string
	CampaignID string
	CLIPath    string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		APIURLRoot: os.Getenv("XCOOBEE_API_URL_ROOT"),
		APIKey:     os.Getenv("XCOOBEE_API_KEY"),
		APISecret:  os.Getenv("XCOOBEE_API_SECRET"),
		CampaignID: os.Getenv("XCOOBEE_CAMPAIGN_ID"),
		CLIPath:    getCLIPath(),
		Verbose:    os.Getenv("XCOOBEE_VERBOSE") == "true",
	}
}

// getCLIPath determines the path to the xcoobee binary
func getCLIPath() string {
	if path := os.Getenv("XCOOBEE_BINARY_PATH"); path != "" {
		return path
	}

	for _, candidate := range []string{"../../xcoobee", "./xcoobee", "../xcoobee"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "xcoobee"
}

// SDKConfig returns the SDK config for the live platform.
func (config *TestConfig) SDKConfig() *xcoobee.Config {
	return &xcoobee.Config{
		APIURLRoot: config.APIURLRoot,
		APIKey:     config.APIKey,
		APISecret:  config.APISecret,
		CampaignID: config.CampaignID,
	}
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.APIURLRoot == "" || config.APIKey == "" || config.APISecret == "" {
		t.Skip("XCOOBEE_API_URL_ROOT, XCOOBEE_API_KEY or XCOOBEE_API_SECRET not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips test if the CLI binary cannot be found
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.CLIPath); err != nil {
		t.Skipf("xcoobee binary not found at %s, skipping integration test", config.CLIPath)
	}
}

// CommandRunner provides utilities for running xcoobee commands
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes an xcoobee command against the configured platform. The
// credentials travel in the environment so they never show up in logs.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	cmd := exec.Command(runner.config.CLIPath, args...)
	cmd.Env = append(os.Environ(),
		"XCOOBEE_API_URL_ROOT="+runner.config.APIURLRoot,
		"XCOOBEE_API_KEY="+runner.config.APIKey,
		"XCOOBEE_API_SECRET="+runner.config.APISecret,
		"XCOOBEE_CAMPAIGN_ID="+runner.config.CampaignID,
	)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.CLIPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}
