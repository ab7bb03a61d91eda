package logruslog_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcoobee/xcoobee-go-sdk/pkg/log/logruslog"
)

func TestLogger(t *testing.T) {
	t.Parallel()

	base, hook := test.NewNullLogger()
	base.SetLevel(logrus.DebugLevel)

	logger := logruslog.New(base)

	logger.Debug("cache entry stored", map[string]interface{}{"cache": "users"})
	logger.Warn("cache load failed", map[string]interface{}{"error": "boom"})

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.DebugLevel, entries[0].Level)
	assert.Equal(t, "users", entries[0].Data["cache"])
	assert.Equal(t, logrus.WarnLevel, entries[1].Level)
	assert.Equal(t, "cache load failed", hook.LastEntry().Message)
}
