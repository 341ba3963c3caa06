package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shopsready/backend/internal/app"
	"shopsready/backend/internal/config"
)

type statefulPinger struct {
	callCount int
	failUntil int
}

func (p *statefulPinger) Ping() error {
	p.callCount++
	if p.callCount <= p.failUntil {
		return errors.New("connection refused")
	}
	return nil
}

func TestPingWithRetry_Success(t *testing.T) {
	p := &statefulPinger{}
	err := app.PingWithRetry(p, 1, time.Millisecond)
	assert.NoError(t, err)
}

func TestPingWithRetry_Retries(t *testing.T) {
	p := &statefulPinger{failUntil: 2}
	err := app.PingWithRetry(p, 5, time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, 3, p.callCount)
}

func TestPingWithRetry_Fail(t *testing.T) {
	p := &statefulPinger{failUntil: 10}
	err := app.PingWithRetry(p, 3, time.Millisecond)
	assert.Error(t, err)
	assert.Equal(t, 3, p.callCount)
}

func TestBootstrap_ConfigurationError(t *testing.T) {
	cfg := &config.Config{
		DBHost:                     "invalid-host",
		BootstrapRetryAttempts:     1,
		BootstrapRetryDelaySeconds: 0,
	}
	deps, err := app.Bootstrap(context.Background(), cfg)
	assert.Error(t, err)
	assert.Nil(t, deps)
}
