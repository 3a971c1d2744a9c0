// AngelaMos | 2026
// handler_test.go

package static

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStaticDir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "index.html"),
		[]byte("<html>app</html>"),
		0o600,
	))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "app.js"),
		[]byte("console.log('app')"),
		0o600,
	))
	return dir
}

func serve(h *Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestServesRealFiles(t *testing.T) {
	handler := NewHandler(newStaticDir(t))

	rec := serve(handler, http.MethodGet, "/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "console.log")
}

func TestClientRoutesFallBackToIndex(t *testing.T) {
	handler := NewHandler(newStaticDir(t))

	for _, path := range []string{"/", "/collections", "/reset-password/abc"} {
		rec := serve(handler, http.MethodGet, path)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), "<html>app</html>", path)
	}
}

func TestMissingAssetIs404(t *testing.T) {
	handler := NewHandler(newStaticDir(t))

	rec := serve(handler, http.MethodGet, "/missing.js")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNonGetRejected(t *testing.T) {
	handler := NewHandler(newStaticDir(t))

	rec := serve(handler, http.MethodPost, "/")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPathTraversalStaysInsideDir(t *testing.T) {
	handler := NewHandler(newStaticDir(t))

	rec := serve(handler, http.MethodGet, "/../secret.txt")
	assert.NotEqual(t, http.StatusOK, rec.Code)
}
