package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsafe/safecheck"
	safecheckhttp "github.com/fieldsafe/safecheck/http"
)

// photoForm builds a multipart body with one part per file, each with an
// explicit content type.
func photoForm(t *testing.T, files map[string]struct {
	contentType string
	data        []byte
}) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, file := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="photos"; filename="`+name+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadPhotos(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	inspection := inspectionFixture(user)
	ts.InspectionService.FindInspectionByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
		return inspection, nil
	}

	uploaded := map[string][]byte{}
	ts.FileStorage.UploadFn = func(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
		data, err := io.ReadAll(reader)
		require.NoError(t, err)
		uploaded[key] = data
		return "https://storage.example.com/" + key, nil
	}

	var appended []string
	ts.InspectionService.AppendPhotosFn = func(ctx context.Context, id uuid.UUID, urls []string) (*safecheck.Inspection, error) {
		appended = urls
		updated := *inspection
		updated.Photos = urls
		return &updated, nil
	}

	body, contentType := photoForm(t, map[string]struct {
		contentType string
		data        []byte
	}{
		"site.jpg": {contentType: "image/jpeg", data: []byte("jpeg-bytes")},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/inspections/"+inspection.ID.String()+"/photos", body)
	req.Header.Set(echoContentType, contentType)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, appended, 1)
	assert.True(t, strings.HasPrefix(appended[0], "https://storage.example.com/inspections/"+inspection.ID.String()+"/"))
	assert.True(t, strings.HasSuffix(appended[0], ".jpg"))
	require.Len(t, uploaded, 1)

	var resp safecheckhttp.PhotoUploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Warnings)
	assert.Equal(t, appended, resp.Uploaded)
}

func TestUploadPhotosPartialFailure(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	inspection := inspectionFixture(user)
	ts.InspectionService.FindInspectionByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
		return inspection, nil
	}
	ts.InspectionService.AppendPhotosFn = func(ctx context.Context, id uuid.UUID, urls []string) (*safecheck.Inspection, error) {
		updated := *inspection
		updated.Photos = urls
		return &updated, nil
	}

	body, contentType := photoForm(t, map[string]struct {
		contentType string
		data        []byte
	}{
		"site.png":   {contentType: "image/png", data: []byte("png-bytes")},
		"report.pdf": {contentType: "application/pdf", data: []byte("pdf-bytes")},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/inspections/"+inspection.ID.String()+"/photos", body)
	req.Header.Set(echoContentType, contentType)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp safecheckhttp.PhotoUploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Uploaded, 1)
	require.Len(t, resp.Warnings, 1)
	assert.Contains(t, resp.Warnings[0], "report.pdf")
}

func TestUploadPhotosToSubmittedInspection(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	inspection := inspectionFixture(user)
	inspection.Status = safecheck.InspectionStatusSubmitted
	ts.InspectionService.FindInspectionByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
		return inspection, nil
	}

	body, contentType := photoForm(t, map[string]struct {
		contentType string
		data        []byte
	}{
		"site.jpg": {contentType: "image/jpeg", data: []byte("jpeg-bytes")},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/inspections/"+inspection.ID.String()+"/photos", body)
	req.Header.Set(echoContentType, contentType)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRemovePhoto(t *testing.T) {
	ts := newTestServer()
	user := testInspector()
	ts.loginAs(user)

	inspection := inspectionFixture(user)
	inspection.Photos = []string{"https://storage.example.com/a.jpg", "https://storage.example.com/b.jpg"}
	ts.InspectionService.FindInspectionByIDFn = func(ctx context.Context, id uuid.UUID) (*safecheck.Inspection, error) {
		return inspection, nil
	}

	var removed string
	ts.InspectionService.RemovePhotoFn = func(ctx context.Context, id uuid.UUID, url string) (*safecheck.Inspection, error) {
		removed = url
		updated := *inspection
		updated.Photos = []string{"https://storage.example.com/b.jpg"}
		return &updated, nil
	}

	body := `{"url":"https://storage.example.com/a.jpg"}`
	req := httptest.NewRequest(http.MethodDelete, "/api/inspections/"+inspection.ID.String()+"/photos", strings.NewReader(body))
	req.Header.Set(echoContentType, echoJSON)
	rec := ts.do(req, true)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://storage.example.com/a.jpg", removed)

	var got safecheck.Inspection
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Photos, 1)
}
