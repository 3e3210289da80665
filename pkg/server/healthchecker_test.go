package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllHealthy(t *testing.T) {
	down := HealthCheckFunc(func(context.Context) bool { return false })

	assert.True(t, AllHealthy{}.Healthy(context.Background()))
	assert.True(t, AllHealthy{NewOkHealthChecker(), nil}.Healthy(context.Background()))
	assert.False(t, AllHealthy{NewOkHealthChecker(), down}.Healthy(context.Background()))
}
