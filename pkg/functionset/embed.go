package functionset

import (
	"embed"
	"io/fs"
)

//go:embed sets/*
var embeddedSets embed.FS

// EmbeddedFS returns the bundled function-set templates and manifests.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedSets, "sets")
	if err != nil {
		panic(err)
	}
	return sub
}

// Builtin loads the bundled function sets.
func Builtin() *Store {
	store, err := LoadFS(EmbeddedFS())
	if err != nil {
		panic(err)
	}
	return store
}
