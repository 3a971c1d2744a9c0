// AngelaMos | 2026
// handler.go

package static

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Handler serves the bundled single-page front end. Paths that do not
// match a real file fall back to index.html so client-side routes
// survive a hard refresh.
type Handler struct {
	dir        string
	fileServer http.Handler
}

func NewHandler(dir string) *Handler {
	return &Handler{
		dir:        dir,
		fileServer: http.FileServer(http.Dir(dir)),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	requested := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(requested); err == nil && !info.IsDir() {
		h.fileServer.ServeHTTP(w, r)
		return
	}

	// Asset requests that miss should 404 rather than return HTML.
	if strings.Contains(filepath.Base(r.URL.Path), ".") {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}
