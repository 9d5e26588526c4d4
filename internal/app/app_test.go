package app

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glbiashara_backend/internal/auth"
	"glbiashara_backend/internal/config"
	"glbiashara_backend/internal/dto"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.JWT.Secret = "test-secret"
	cfg.Storage.Provider = "local"
	cfg.Storage.BasePath = t.TempDir()
	require.NoError(t, cfg.Validate())
	return cfg
}

func pngUpload(t *testing.T, w, h int) (*bytes.Buffer, string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.Set(0, 0, color.RGBA{G: 255, A: 255})
	var data bytes.Buffer
	require.NoError(t, png.Encode(&data, img))
	return multipartUpload(t, "photo.png", "image/png", data.Bytes())
}

func multipartUpload(t *testing.T, fileName, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.WriteField("type", "image"))
	require.NoError(t, mw.Close())
	return &body, mw.FormDataContentType()
}

func TestSetupRouter_LocalUploadRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)

	r, err := SetupRouter(context.Background(), cfg, nil)
	require.NoError(t, err)

	token, err := auth.NewTokenManager(cfg.JWT.Secret, time.Hour).GenerateToken(42, "amani@example.com")
	require.NoError(t, err)

	body, ct := pngUpload(t, 2400, 1600)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "image", resp.Type)
	require.NotNil(t, resp.Width)
	assert.Equal(t, 1200, *resp.Width)
	assert.Equal(t, 800, *resp.Height)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	// the returned URL is served by /files
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, resp.URL, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	// and can be deleted by its owner
	del := httptest.NewRequest(http.MethodDelete, "/api/upload",
		bytes.NewBufferString(`{"publicId":"`+resp.PublicID+`","type":"image"}`))
	del.Header.Set("Content-Type", "application/json")
	del.AddCookie(&http.Cookie{Name: auth.TokenCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, del)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestSetupRouter_RejectsBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, err := SetupRouter(context.Background(), testConfig(t), nil)
	require.NoError(t, err)

	token, err := auth.NewTokenManager("another-secret", time.Hour).GenerateToken(1, "x@y.z")
	require.NoError(t, err)

	body, ct := pngUpload(t, 10, 10)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Authentication required","code":"UNAUTHORIZED"}`, w.Body.String())
}

func TestSetupRouter_PreflightWithOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r, err := SetupRouter(context.Background(), testConfig(t), nil)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/api/upload", nil)
	req.Header.Set("Origin", "https://glbiashara.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestSetupRouter_MarkupDisguisedAsImageIsNeverServed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	r, err := SetupRouter(context.Background(), cfg, nil)
	require.NoError(t, err)

	token, err := auth.NewTokenManager(cfg.JWT.Secret, time.Hour).GenerateToken(42, "amani@example.com")
	require.NoError(t, err)

	markup := []byte("<html><script>alert(document.cookie)</script></html>")
	body, ct := multipartUpload(t, "evil.html", "image/png", markup)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	var resp dto.UploadResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "File content is not a valid image of the declared type", resp.Error)
	assert.Empty(t, resp.URL)

	var written []string
	require.NoError(t, filepath.WalkDir(cfg.Storage.BasePath, func(path string, d fs.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			written = append(written, path)
		}
		return err
	}))
	assert.Empty(t, written, "nothing may reach the files directory")
}
