package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glbiashara_backend/internal/auth"
	"glbiashara_backend/internal/handlers"
	"glbiashara_backend/internal/metrics"
	"glbiashara_backend/internal/services"
	"glbiashara_backend/internal/storage"
	"glbiashara_backend/internal/validator"
)

type noAuth struct{}

func (noAuth) CurrentUser(r *http.Request) (*auth.Principal, error) {
	return nil, auth.ErrUnauthenticated
}

func newTestEngine(t *testing.T, filesDir string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m, err := metrics.New(nil)
	require.NoError(t, err)

	store, err := storage.NewMediaStore(context.Background(), storage.Config{Provider: "local", BasePath: t.TempDir()})
	require.NoError(t, err)

	base := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		UploadHandler: handlers.NewUploadHandler(base, services.NewUploadService(store, services.UploadConfig{}, m)),
	}

	r := gin.New()
	SetupPublicRoutes(r, m, filesDir)
	RegisterRoutes(r, appHandlers, noAuth{}, m)
	return r
}

func TestRoutes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "glbiashara"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glbiashara", "a.txt"), []byte("hello"), 0o644))

	r := newTestEngine(t, dir)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodOptions, "/api/upload", http.StatusOK},
		{http.MethodPost, "/api/upload", http.StatusUnauthorized},
		{http.MethodDelete, "/api/upload", http.StatusUnauthorized},
		{http.MethodGet, "/files/glbiashara/a.txt", http.StatusOK},
		{http.MethodPost, "/api/auth/login", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestFilesAreServedWithoutSniffing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page.html"), []byte("<script>1</script>"), 0o644))
	r := newTestEngine(t, dir)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/page.html", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "sandbox")
}

func TestMetricsCountUnauthenticatedUploads(t *testing.T) {
	r := newTestEngine(t, "")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/upload", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), `glbiashara_uploads_total{kind="unknown",outcome="unauthenticated"} 1`)
}
