/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	testThemes = `{"allItems":[
		{"id":"car","index":"vehicle","image":"images/car.svg","name":"Car"},
		{"id":"apple","index":"fruit","image":"images/apple.svg","name":"Apple"}
	]}`

	testPortals = `{"portals":[
		{"name":"Street","icon":"images/street.svg","layouts":["s1"]}
	]}`

	testLayout = `{
		"background":"images/street.svg",
		"slots":[{"index":["vehicle"],"diameter":"20%","position":{"top":"50%","left":"50%"}}]
	}`
)

// writeTestContent lays out a one-portal, one-slot game in a temporary
// directory and returns its path.
func writeTestContent(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	files := map[string]string{
		"themes.json":     testThemes,
		"portals.json":    testPortals,
		"layouts/s1.json": testLayout,
		"images/car.svg":  `<svg xmlns="http://www.w3.org/2000/svg"/>`,
	}

	writeContentFiles(t, dir, files)

	return dir
}

func writeContentFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, data := range files {
		p := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	}
}

func testConfig(t *testing.T) *Config {
	t.Helper()

	cfg := &Config{
		advance:      "auto",
		bind:         "127.0.0.1",
		content:      writeTestContent(t),
		poolSize:     8,
		port:         8080,
		resolveDelay: 10 * time.Millisecond,
		selection:    "random",
	}
	require.NoError(t, cfg.validate())

	return cfg
}
