package http

import (
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"sync"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/fieldsafe/safecheck"
)

// PhotoUploadResponse reports the outcome of a multi-file photo upload.
// Uploads are independent; a partial failure still returns the inspection
// with every successful photo appended.
type PhotoUploadResponse struct {
	Inspection *safecheck.Inspection `json:"inspection"`
	Uploaded   []string              `json:"uploaded"`
	Warnings   []string              `json:"warnings,omitempty"`
}

// RemovePhotoRequest identifies the photo URL to remove.
type RemovePhotoRequest struct {
	URL string `json:"url" validate:"required,max=2000"`
}

func (s *Server) handleUploadPhotos(c echo.Context) error {
	inspection, err := s.requireEditableInspection(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return safecheck.Invalid("Invalid multipart form")
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return safecheck.Invalid("No photos provided")
	}

	type uploadResult struct {
		url string
		err error
	}

	results := make([]uploadResult, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file *multipart.FileHeader) {
			defer wg.Done()
			url, err := s.uploadPhoto(c, inspection.ID, file)
			results[i] = uploadResult{url: url, err: err}
		}(i, file)
	}
	wg.Wait()

	var urls []string
	var warnings []string
	for i, r := range results {
		if r.err != nil {
			warnings = append(warnings, fmt.Sprintf("%s: %s", files[i].Filename, safecheck.ErrorMessage(r.err)))
			continue
		}
		urls = append(urls, r.url)
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	updated, err := s.inspectionService.AppendPhotos(ctx, inspection.ID, urls)
	if err != nil {
		return err
	}

	s.log(c).Info("photos uploaded",
		slog.String("inspection_id", inspection.ID.String()),
		slog.Int("uploaded", len(urls)),
		slog.Int("failed", len(warnings)))

	return RespondOK(c, PhotoUploadResponse{
		Inspection: updated,
		Uploaded:   urls,
		Warnings:   warnings,
	})
}

// uploadPhoto validates and stores one file, returning its public URL.
func (s *Server) uploadPhoto(c echo.Context, inspectionID uuid.UUID, file *multipart.FileHeader) (string, error) {
	if file.Size > safecheck.MaxUploadSize {
		return "", safecheck.Invalid("File exceeds the 5MB size limit")
	}

	contentType := file.Header.Get("Content-Type")
	if !safecheck.IsAcceptedImageType(contentType) {
		return "", safecheck.Invalid("Unsupported image type %q", contentType)
	}

	src, err := file.Open()
	if err != nil {
		return "", safecheck.Internal("Failed to read uploaded file", err)
	}
	defer src.Close()

	ext := path.Ext(file.Filename)
	if ext == "" {
		ext = ".jpg"
	}
	key := fmt.Sprintf("inspections/%s/%s%s", inspectionID, uuid.New(), ext)

	url, err := s.fileStorage.Upload(c.Request().Context(), key, src, contentType)
	if err != nil {
		s.log(c).Error("photo upload failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return "", safecheck.Internal("Failed to store photo", err)
	}
	return url, nil
}

func (s *Server) handleRemovePhoto(c echo.Context) error {
	inspection, err := s.requireEditableInspection(c)
	if err != nil {
		return err
	}

	var req RemovePhotoRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	ctx, cancel := withTimeout(c)
	defer cancel()

	updated, err := s.inspectionService.RemovePhoto(ctx, inspection.ID, req.URL)
	if err != nil {
		return err
	}
	return RespondOK(c, updated)
}
