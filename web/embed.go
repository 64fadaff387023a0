// Package web embeds the static client bundle for serving from the Go
// binary.
package web

import (
	"embed"
	"io/fs"
	"log"
)

//go:embed all:static
var dist embed.FS

// StaticFS returns a filesystem rooted at the embedded static/ directory,
// ready for http.FileServer.
func StaticFS() fs.FS {
	sub, err := fs.Sub(dist, "static")
	if err != nil {
		log.Fatalf("web.StaticFS: %v", err)
	}
	return sub
}
