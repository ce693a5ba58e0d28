package report

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsafe/safecheck"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 8), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func reportInspection(photos []string) *safecheck.Inspection {
	return &safecheck.Inspection{
		FacilityName:  "Riverside Elementary",
		TemplateName:  "Monthly Fire Safety",
		InspectorName: "Kim Inspector",
		Date:          "2026-08-30",
		Status:        safecheck.InspectionStatusSubmitted,
		Results: []safecheck.InspectionResult{
			{ItemID: "extinguisher", Value: safecheck.BoolAnswer(true)},
			{ItemID: "exit-signs", Value: safecheck.BoolAnswer(false)},
			{ItemID: "notes", Value: safecheck.TextAnswer("hose cracked near stairwell")},
		},
		Photos: photos,
	}
}

func reportItems() []safecheck.CheckItem {
	return []safecheck.CheckItem{
		{ID: "extinguisher", Title: "Fire extinguisher charged", Kind: safecheck.ItemKindCheckbox},
		{ID: "exit-signs", Title: "Exit signs lit", Kind: safecheck.ItemKindCheckbox},
		{ID: "hydrant", Title: "Hydrant accessible", Kind: safecheck.ItemKindCheckbox},
		{ID: "notes", Title: "Additional notes", Kind: safecheck.ItemKindText},
	}
}

func TestGenerate(t *testing.T) {
	g := NewGenerator(testLogger())

	data, err := g.Generate(context.Background(), reportInspection(nil), reportItems())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF document")
}

func TestGenerateWithPhotos(t *testing.T) {
	img := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(img)
	}))
	defer srv.Close()

	g := NewGenerator(testLogger())

	// One photo fails to fetch; generation still succeeds with the rest.
	inspection := reportInspection([]string{
		srv.URL + "/a.png",
		srv.URL + "/missing.png",
		srv.URL + "/b.png",
	})

	data, err := g.Generate(context.Background(), inspection, reportItems())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestGenerateManyItemsPaginates(t *testing.T) {
	items := make([]safecheck.CheckItem, 0, 60)
	results := make([]safecheck.InspectionResult, 0, 60)
	for i := 0; i < 60; i++ {
		id := string(rune('a'+i%26)) + string(rune('0'+i/26))
		items = append(items, safecheck.CheckItem{ID: id, Title: "Routine check item", Kind: safecheck.ItemKindCheckbox})
		results = append(results, safecheck.InspectionResult{ItemID: id, Value: safecheck.BoolAnswer(i%3 != 0)})
	}
	inspection := reportInspection(nil)
	inspection.Results = results

	g := NewGenerator(testLogger())
	data, err := g.Generate(context.Background(), inspection, items)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	// Multiple pages worth of rows should yield a noticeably larger document.
	assert.Greater(t, len(data), 4000)
}
