package gpiogen

import (
	"io/fs"

	"github.com/goliatone/go-gpiogen/pkg/platform"
)

// EmbeddedPlatforms exposes the built-in platform definitions (red, green).
func EmbeddedPlatforms() fs.FS {
	return platform.EmbeddedFS()
}

// LoadPlatforms reads platform definitions (.yaml, .json, .hcl) from fsys.
func LoadPlatforms(fsys fs.FS) (*platform.Store, error) {
	return platform.LoadFS(fsys)
}
