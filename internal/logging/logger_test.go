package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, enc := range []string{"console", "json"} {
		log, err := New(Config{Level: "debug", Encoding: enc})
		require.NoError(t, err, enc)
		require.NotNil(t, log)
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Config{Level: "loud"})
	assert.Error(t, err)
}

func TestNop(t *testing.T) {
	log := Nop().WithField("session", "x")
	assert.NotPanics(t, func() { log.Infow("ignored", "n", 1) })
}

func TestNew_DevMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DevMode = true

	log, err := New(cfg)
	require.NoError(t, err)
	assert.NotPanics(t, func() { log.WithError(assert.AnError).Debugw("dev", "n", 1) })
}
