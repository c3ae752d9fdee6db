// SPDX-License-Identifier: MIT

package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigEnabled(t *testing.T) {
	assert.False(t, (Config{}).Enabled())
	assert.True(t, (Config{Endpoint: "localhost:4318"}).Enabled())
}

func TestSetupDisabled(t *testing.T) {
	p, err := Setup(context.Background(), Config{ServiceName: "exoatlas-test"})
	require.NoError(t, err)
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestShutdownNilProvider(t *testing.T) {
	var p *Provider
	assert.NoError(t, p.Shutdown(context.Background()))
}
