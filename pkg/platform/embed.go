package platform

import (
	"embed"
	"io/fs"
)

//go:embed defs/*
var embeddedDefs embed.FS

// EmbeddedFS returns the bundled platform definitions.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedDefs, "defs")
	if err != nil {
		// The embed directive guarantees the subpath exists, so panic is
		// acceptable here.
		panic(err)
	}
	return sub
}

// Builtin loads the bundled red and green platform definitions.
func Builtin() *Store {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		panic(err)
	}
	return store
}
