package mock

import (
	"context"

	"github.com/fieldsafe/safecheck"
)

// Compile-time interface check
var _ safecheck.ReportGenerator = (*ReportGenerator)(nil)

// ReportGenerator is a mock implementation of safecheck.ReportGenerator.
type ReportGenerator struct {
	GenerateFn func(ctx context.Context, inspection *safecheck.Inspection, items []safecheck.CheckItem) ([]byte, error)
}

func (g *ReportGenerator) Generate(ctx context.Context, inspection *safecheck.Inspection, items []safecheck.CheckItem) ([]byte, error) {
	if g.GenerateFn != nil {
		return g.GenerateFn(ctx, inspection, items)
	}
	return []byte("%PDF-1.4 mock"), nil
}
