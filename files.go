/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// contentTypes covers the file kinds a content directory is expected to hold.
var contentTypes = map[string]string{
	".svg":  "image/svg+xml",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".json": "application/json; charset=utf-8",
	".yaml": "application/yaml; charset=utf-8",
	".yml":  "application/yaml; charset=utf-8",
}

func contentType(name string) string {
	if t, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return t
	}

	return "application/octet-stream"
}

// contentPath turns the wildcard part of a /content/ request into a path
// inside the content filesystem, rejecting anything that would escape it.
func contentPath(raw string) (string, bool) {
	name := path.Clean(strings.TrimPrefix(raw, "/"))

	if name == "." || !fs.ValidPath(name) {
		return "", false
	}

	return name, true
}

func humanReadableSize(bytes int64) string {
	const unit int64 = 1000
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := unit, 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB",
		float64(bytes)/float64(div),
		"kMGTPE"[exp])
}
