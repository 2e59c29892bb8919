/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"testing"
	"time"

	"github.com/Seednode/matchbox/games/matching"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			advance:   "auto",
			port:      8080,
			poolSize:  8,
			selection: "random",
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "cert without key", mutate: func(c *Config) { c.tlsCert = "cert.pem" }, wantErr: true},
		{name: "cert and key", mutate: func(c *Config) { c.tlsCert, c.tlsKey = "cert.pem", "key.pem" }},
		{name: "port zero", mutate: func(c *Config) { c.port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.port = 70000 }, wantErr: true},
		{name: "empty pool", mutate: func(c *Config) { c.poolSize = 0 }, wantErr: true},
		{name: "negative delay", mutate: func(c *Config) { c.resolveDelay = -time.Second }, wantErr: true},
		{name: "watch without content", mutate: func(c *Config) { c.watch = true }, wantErr: true},
		{name: "watch with content", mutate: func(c *Config) { c.watch, c.content = true, "/srv/content" }},
		{name: "unknown advance", mutate: func(c *Config) { c.advance = "later" }, wantErr: true},
		{name: "unknown selection", mutate: func(c *Config) { c.selection = "shuffled" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			err := c.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestConfigModes(t *testing.T) {
	c := Config{advance: "press", port: 1, poolSize: 3, selection: "sequential"}
	require.NoError(t, c.validate())

	opts := c.roundOptions()
	assert.Equal(t, matching.AdvancePress, opts.Advance)
	assert.Equal(t, matching.SelectSequential, opts.Selection)
	assert.Equal(t, 3, opts.PoolSize)
}

func TestConfigScheme(t *testing.T) {
	assert.Equal(t, "http", (&Config{}).scheme())
	assert.Equal(t, "https", (&Config{tlsCert: "c", tlsKey: "k"}).scheme())
}

func TestNewCmdReadsEnvironment(t *testing.T) {
	t.Setenv("MATCHBOX_POOL_SIZE", "5")
	t.Setenv("MATCHBOX_SELECTION", "sequential")
	t.Setenv("MATCHBOX_RESOLVE_DELAY", "1500ms")

	cfg := &Config{}
	_ = newCmd(cfg)

	assert.Equal(t, 5, cfg.poolSize)
	assert.Equal(t, "sequential", cfg.selection)
	assert.Equal(t, 1500*time.Millisecond, cfg.resolveDelay)
	assert.Equal(t, 8080, cfg.port)
	assert.Equal(t, "auto", cfg.advance)
}
