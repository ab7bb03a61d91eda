package xcoobee_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/xcoobee"
)

func TestResolveConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		override *xcoobee.Config
		def      *xcoobee.Config
		expected xcoobee.EffectiveConfig
	}{
		{
			name:     "override wins per field",
			override: &xcoobee.Config{APIKey: "X"},
			def:      &xcoobee.Config{APIKey: "Y", APISecret: "S"},
			expected: xcoobee.EffectiveConfig{APIKey: "X", APISecret: "S"},
		},
		{
			name:     "nil override uses default",
			override: nil,
			def:      &xcoobee.Config{APIURLRoot: "https://api.example.com", APIKey: "k", APISecret: "s", CampaignID: "c"},
			expected: xcoobee.EffectiveConfig{APIURLRoot: "https://api.example.com", APIKey: "k", APISecret: "s", CampaignID: "c"},
		},
		{
			name:     "nil default leaves missing fields empty",
			override: &xcoobee.Config{APISecret: "s"},
			def:      nil,
			expected: xcoobee.EffectiveConfig{APISecret: "s"},
		},
		{
			name:     "empty override field does not clear default",
			override: &xcoobee.Config{APIURLRoot: "", CampaignID: "other"},
			def:      &xcoobee.Config{APIURLRoot: "https://api.example.com", CampaignID: "c"},
			expected: xcoobee.EffectiveConfig{APIURLRoot: "https://api.example.com", CampaignID: "other"},
		},
		{
			name:     "both nil",
			expected: xcoobee.EffectiveConfig{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, xcoobee.ResolveConfig(tt.override, tt.def))
		})
	}
}

func TestResolveConfig_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	override := &xcoobee.Config{APIKey: "X"}
	def := &xcoobee.Config{APIKey: "Y", APISecret: "S"}

	_ = xcoobee.ResolveConfig(override, def)

	assert.Equal(t, &xcoobee.Config{APIKey: "X"}, override)
	assert.Equal(t, &xcoobee.Config{APIKey: "Y", APISecret: "S"}, def)
}

func TestResolveCampaignID(t *testing.T) {
	t.Parallel()

	t.Run("explicit wins", func(t *testing.T) {
		t.Parallel()

		id, err := xcoobee.ResolveCampaignID("E", &xcoobee.Config{CampaignID: "O"}, &xcoobee.Config{CampaignID: "D"})
		require.NoError(t, err)
		assert.Equal(t, "E", id)
	})

	t.Run("override beats default", func(t *testing.T) {
		t.Parallel()

		id, err := xcoobee.ResolveCampaignID("", &xcoobee.Config{CampaignID: "O"}, &xcoobee.Config{CampaignID: "D"})
		require.NoError(t, err)
		assert.Equal(t, "O", id)
	})

	t.Run("falls back to default", func(t *testing.T) {
		t.Parallel()

		id, err := xcoobee.ResolveCampaignID("", nil, &xcoobee.Config{CampaignID: "C"})
		require.NoError(t, err)
		assert.Equal(t, "C", id)
	})

	t.Run("whitespace explicit id is kept", func(t *testing.T) {
		t.Parallel()

		id, err := xcoobee.ResolveCampaignID(" ", nil, &xcoobee.Config{CampaignID: "D"})
		require.NoError(t, err)
		assert.Equal(t, " ", id)
		assert.NoError(t, xcoobee.AssertCampaignID(" "))
	})

	t.Run("missing everywhere", func(t *testing.T) {
		t.Parallel()

		id, err := xcoobee.ResolveCampaignID("", nil, &xcoobee.Config{})
		require.Error(t, err)
		assert.Empty(t, id)
		assert.Equal(t, "Campaign ID is required", err.Error())
		assert.True(t, errors.Is(err, xcoobee.ErrCampaignIDRequired))
		assert.True(t, xcoobee.IsConfigError(err))
	})
}

func TestCredentials_CacheKey(t *testing.T) {
	t.Parallel()

	base := xcoobee.Credentials{URLRoot: "https://api.example.com", Key: "k", Secret: "s"}

	assert.Equal(t, base.CacheKey(), xcoobee.Credentials{URLRoot: "https://api.example.com", Key: "k", Secret: "s"}.CacheKey())
	assert.NotEqual(t, base.CacheKey(), xcoobee.Credentials{URLRoot: "https://api.example.com", Key: "k", Secret: "other"}.CacheKey())
	assert.NotEqual(t, base.CacheKey(), xcoobee.Credentials{URLRoot: "https://api.example.com", Key: "k2", Secret: "s"}.CacheKey())
	// Components are delimited, so shifting characters between them changes the key.
	assert.NotEqual(t,
		xcoobee.Credentials{URLRoot: "a", Key: "bc", Secret: "d"}.CacheKey(),
		xcoobee.Credentials{URLRoot: "ab", Key: "c", Secret: "d"}.CacheKey())
}
