package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/fieldsafe/safecheck"
)

// JSONB conversions. Checklist item snapshots, answer lists, and photo
// sequences are stored as jsonb columns; order inside the document is the
// order of record.

func toJSONB(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding jsonb: %w", err)
	}
	return data, nil
}

func itemsFromJSONB(data []byte) ([]safecheck.CheckItem, error) {
	items := []safecheck.CheckItem{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding items: %w", err)
	}
	return items, nil
}

func resultsFromJSONB(data []byte) ([]safecheck.InspectionResult, error) {
	results := []safecheck.InspectionResult{}
	if len(data) == 0 {
		return results, nil
	}
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	return results, nil
}

func photosFromJSONB(data []byte) ([]string, error) {
	photos := []string{}
	if len(data) == 0 {
		return photos, nil
	}
	if err := json.Unmarshal(data, &photos); err != nil {
		return nil, fmt.Errorf("decoding photos: %w", err)
	}
	return photos, nil
}
