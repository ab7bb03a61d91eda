//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobeeclient"
)

// TestSDKWorkflow_ListAndInspect walks campaigns and consents with the SDK.
func TestSDKWorkflow_ListAndInspect(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	ctx := context.Background()
	client := xcoobeeclient.New(config.SDKConfig(), xcoobeeclient.WithPageSize(5))

	campaigns, err := client.Consents().ListCampaigns(ctx, nil)
	require.NoError(t, err)
	require.True(t, campaigns.IsSuccess(), "list campaigns failed: %+v", campaigns.Error)

	all, err := campaigns.Result.Collect(ctx, 10)
	require.NoError(t, err)
	t.Logf("found %d campaigns", len(all))

	if config.CampaignID != "" {
		info, err := client.Consents().GetCampaignInfo(ctx, "", nil)
		require.NoError(t, err)
		require.True(t, info.IsSuccess(), "get campaign failed: %+v", info.Error)
		assert.NotEmpty(t, info.Result.CampaignName)
	}

	consents, err := client.Consents().ListConsents(ctx, "", nil)
	require.NoError(t, err)
	require.True(t, consents.IsSuccess(), "list consents failed: %+v", consents.Error)

	for _, consent := range consents.Result.Data() {
		data, err := client.Consents().GetConsentData(ctx, consent.ConsentCursor, nil)
		require.NoError(t, err)
		assert.True(t, data.IsSuccess())

		break
	}
}

// TestSDKWorkflow_ConcurrentCallsShareToken issues concurrent calls that must
// all succeed on one cached token.
func TestSDKWorkflow_ConcurrentCallsShareToken(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	ctx := context.Background()
	client := xcoobeeclient.New(config.SDKConfig())

	var wg sync.WaitGroup

	results := make([]*xcoobee.Response[*xcoobee.PagingResponse[xcoobee.Campaign]], 5)
	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			results[i], _ = client.Consents().ListCampaigns(ctx, nil)
		}(i)
	}

	wg.Wait()

	for _, resp := range results {
		require.NotNil(t, resp)
		assert.True(t, resp.IsSuccess())
	}
}

// TestSDKWorkflow_BadSecret expects an auth failure envelope.
func TestSDKWorkflow_BadSecret(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	cfg := config.SDKConfig()
	cfg.APISecret = "definitely-wrong"

	resp, err := xcoobeeclient.New(cfg).Consents().ListCampaigns(context.Background(), nil)
	require.NoError(t, err)
	require.False(t, resp.IsSuccess())
	assert.Equal(t, xcoobee.KindAuth, resp.Error.Kind)
	assert.Equal(t, 401, resp.Code)
}

// TestCLIWorkflow_ListCampaigns runs the CLI binary.
func TestCLIWorkflow_ListCampaigns(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipIfMissingBinary(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.Run("version", "--output", "json")
	require.NoError(t, err, stderr)
	assert.Contains(t, stdout, "version")

	stdout, stderr, err = runner.Run("campaigns", "list", "--all", "--output", "json")
	require.NoError(t, err, stderr)

	var campaigns []xcoobee.Campaign
	require.NoError(t, json.Unmarshal([]byte(stdout), &campaigns))
}
