package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldsafe/safecheck"
)

func TestFilename(t *testing.T) {
	tests := []struct {
		facility string
		date     string
		want     string
	}{
		{"Riverside Elementary", "2026-08-30", "inspection_Riverside_Elementary_2026-08-30.pdf"},
		{`Main/St: "Depot"`, "8/30/2026", "inspection_Main_St___Depot__8_30_2026.pdf"},
		{"Plain", "2026-01-01", "inspection_Plain_2026-01-01.pdf"},
	}

	for _, tt := range tests {
		inspection := &safecheck.Inspection{FacilityName: tt.facility, Date: tt.date}
		assert.Equal(t, tt.want, Filename(inspection))
	}
}
