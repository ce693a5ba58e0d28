package safecheck

import "context"

// ReportGenerator renders an inspection and its checklist item definitions
// into a single paginated PDF artifact. Generation either yields the whole
// document or fails as one error; per-photo fetch failures are skipped, any
// other construction error aborts with no partial artifact.
type ReportGenerator interface {
	Generate(ctx context.Context, inspection *Inspection, items []CheckItem) ([]byte, error)
}
