// Package web carries the page templates and static assets in the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates static
var files embed.FS

// Templates is rooted at templates/, so names look like "marketplace" or
// "layouts/main".
func Templates() fs.FS { return sub("templates") }

func Static() fs.FS { return sub("static") }

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err) // only on a bad literal above
	}
	return f
}
