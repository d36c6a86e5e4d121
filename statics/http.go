package statics

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

//go:embed www/*
var www embed.FS

// ServeStatics serves the site assets from the embedded www directory, or
// from staticsDir when set (local development against work-in-progress
// assets). "/admin" maps to the dashboard page.
func ServeStatics(staticsDir string) http.HandlerFunc {

	var fileServer http.Handler
	if staticsDir == "" {
		sub, _ := fs.Sub(www, "www")
		fileServer = http.FileServer(http.FS(sub))
	} else {
		fileServer = http.FileServer(http.Dir(staticsDir))
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.TrimSuffix(r.URL.Path, "/") == "/admin" {
			r.URL.Path = "/admin.html"
		}
		fileServer.ServeHTTP(w, r)
	}
}
