package tracing_test

import (
	"context"
	"testing"

	"github.com/appclacks/datto-monitor/internal/tracing"
	"github.com/stretchr/testify/assert"
)

func TestSetupDisabled(t *testing.T) {
	shutdown, err := tracing.Setup(context.Background(), tracing.Configuration{})
	assert.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetupMissingEndpoint(t *testing.T) {
	_, err := tracing.Setup(context.Background(), tracing.Configuration{Enabled: true})
	assert.Error(t, err)
}

func TestSetupEnabled(t *testing.T) {
	shutdown, err := tracing.Setup(context.Background(), tracing.Configuration{
		Enabled:  true,
		Endpoint: "127.0.0.1:4318",
		Insecure: true,
	})
	assert.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
