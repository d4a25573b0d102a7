// Package web serves the single-page form that calls the analyze endpoint.
package web

import (
	"bytes"
	_ "embed"
	"net/http"
	"time"

	"github.com/focusengine/dietitian-focus/pkg/errors"
	"github.com/focusengine/dietitian-focus/pkg/server"
)

//go:embed static/index.html
var indexHTML []byte

var modTime = time.Now()

// Handler serves the page at "/" for GET and HEAD. Other paths get a 404.
func Handler() http.Handler {
	return http.HandlerFunc(serveIndex)
}

func serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" && r.URL.Path != "/index.html" {
		server.WriteError(w, r, http.StatusNotFound, errors.ErrCodeNotFound,
			"Not found", false, map[string]any{"path": r.URL.Path})
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, nil)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	http.ServeContent(w, r, "index.html", modTime, bytes.NewReader(indexHTML))
}
