package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barbershop/appointments-backend/internal/gallery"
)

const itemID = "0b7c4c1e-9f7e-4c8a-9d51-2f3b0d6a1e22"

type stubService struct {
	gallery.Service
	uploaded []byte
	req      gallery.UploadRequest
}

func (s *stubService) Upload(_ context.Context, req gallery.UploadRequest, content io.Reader) (*gallery.Item, error) {
	s.req = req
	s.uploaded, _ = io.ReadAll(content)
	return &gallery.Item{ID: itemID, Filename: req.Filename, Title: req.Title, ContentType: "image/png", Size: int64(len(s.uploaded))}, nil
}

func (s *stubService) Open(_ context.Context, id string) (io.ReadCloser, *gallery.Item, error) {
	if id != itemID {
		return nil, nil, gallery.ErrNotFound
	}
	return io.NopCloser(strings.NewReader("png-bytes")), &gallery.Item{ID: id, Filename: "fade.png", ContentType: "image/png"}, nil
}

func newRouter(svc gallery.Service, admin gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	pass := func(c *gin.Context) { c.Next() }
	RegisterRoutes(r.Group("/v1"), NewHandler(svc), pass, admin)
	return r
}

func multipartBody(t *testing.T, title string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("title", title))
	part, err := w.CreateFormFile("file", "fade.png")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUpload(t *testing.T) {
	svc := &stubService{}
	r := newRouter(svc, func(c *gin.Context) { c.Next() })

	body, ct := multipartBody(t, "Fade", []byte("image-data"))
	req := httptest.NewRequest(http.MethodPost, "/v1/gallery", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "image-data", string(svc.uploaded))
	assert.Equal(t, "Fade", *svc.req.Title)

	var resp ItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "/v1/gallery/"+itemID+"/image", resp.URL)
	assert.Nil(t, resp.ThumbnailURL)
}

func TestUploadRequiresAdmin(t *testing.T) {
	r := newRouter(&stubService{}, func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) })

	body, ct := multipartBody(t, "Fade", []byte("image-data"))
	req := httptest.NewRequest(http.MethodPost, "/v1/gallery", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestServeImage(t *testing.T) {
	r := newRouter(&stubService{}, func(c *gin.Context) { c.Next() })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/gallery/"+itemID+"/image", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename=fade.png`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "png-bytes", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/gallery/1f1c9a7e-0000-4000-8000-000000000000/image", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/gallery/not-a-uuid/image", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
