package app

import (
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/hris/internal/config"
	"github.com/oakwood-commons/hris/internal/submit"
	"github.com/oakwood-commons/hris/pkg/settings"
)

func TestNewBuildsHTTPSubmitter(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	c, err := New(cfg, &settings.Run{}, logr.Discard())
	require.NoError(t, err)
	assert.IsType(t, &submit.HTTPSubmitter{}, c.Submitter)
	assert.True(t, c.Routes.Has("letters.archive"))
	assert.False(t, c.DryRun)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close(), "close is idempotent")
}

func TestNewDryRun(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Server.BaseURL = ""

	c, err := New(cfg, &settings.Run{DryRun: true}, logr.Discard())
	require.NoError(t, err, "a dry run needs no server")
	assert.IsType(t, &submit.DryRunSubmitter{}, c.Submitter)
	assert.True(t, c.DryRun)
}

func TestNewErrors(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)

	bad := cfg
	bad.Routes = map[string]string{"accounts.store": "accounts"}
	_, err = New(bad, nil, logr.Discard())
	assert.ErrorContains(t, err, "build routes")

	bad = cfg
	bad.Server.BaseURL = "ftp://example.com"
	_, err = New(bad, nil, logr.Discard())
	assert.ErrorContains(t, err, "build submitter")
}

func TestCloseNil(t *testing.T) {
	var c *Context
	assert.NoError(t, c.Close())
}
