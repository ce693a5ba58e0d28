package report

import (
	"fmt"
	"regexp"

	"github.com/fieldsafe/safecheck"
)

var unsafeFilenameChars = regexp.MustCompile(`[/\\?%*:|"<>\s]`)

// Filename returns the download name for an inspection report:
// inspection_<facility>_<date>.pdf with path separators, reserved
// characters, and whitespace replaced by underscores.
func Filename(inspection *safecheck.Inspection) string {
	name := fmt.Sprintf("inspection_%s_%s.pdf", inspection.FacilityName, inspection.Date)
	return unsafeFilenameChars.ReplaceAllString(name, "_")
}
