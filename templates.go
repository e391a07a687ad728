package gpiogen

import (
	"io/fs"

	"github.com/goliatone/go-gpiogen/pkg/functionset"
)

// EmbeddedTemplates exposes the built-in function-set templates and manifests
// so callers can copy or extend them.
func EmbeddedTemplates() fs.FS {
	return functionset.EmbeddedFS()
}
