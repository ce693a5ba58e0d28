package safecheck

import (
	"encoding/json"
	"strconv"
)

// AnswerValue is the typed value captured for one checklist item. It is a
// tagged variant keyed by the item's declared kind: a boolean for checkbox
// items, a string for text items, a number for number items. Construct
// values through BoolAnswer, TextAnswer, or NumberAnswer; the zero value is
// "unset". There is no coercion between kinds.
type AnswerValue struct {
	kind ItemKind
	b    bool
	s    string
	n    float64
}

// BoolAnswer returns a checkbox answer.
func BoolAnswer(v bool) AnswerValue {
	return AnswerValue{kind: ItemKindCheckbox, b: v}
}

// TextAnswer returns a free-text answer.
func TextAnswer(v string) AnswerValue {
	return AnswerValue{kind: ItemKindText, s: v}
}

// NumberAnswer returns a numeric answer. The numeric domain is
// unconstrained.
func NumberAnswer(v float64) AnswerValue {
	return AnswerValue{kind: ItemKindNumber, n: v}
}

// Kind returns the answer's kind, or "" for the unset zero value.
func (v AnswerValue) Kind() ItemKind {
	return v.kind
}

// Bool returns the checkbox value and whether this is a checkbox answer.
func (v AnswerValue) Bool() (bool, bool) {
	return v.b, v.kind == ItemKindCheckbox
}

// Text returns the text value and whether this is a text answer.
func (v AnswerValue) Text() (string, bool) {
	return v.s, v.kind == ItemKindText
}

// Number returns the numeric value and whether this is a number answer.
func (v AnswerValue) Number() (float64, bool) {
	return v.n, v.kind == ItemKindNumber
}

// IsEmpty reports whether the value counts as unanswered: unset, or a text
// answer holding the empty string. A checkbox answer of false and a numeric
// answer of zero both count as answered.
func (v AnswerValue) IsEmpty() bool {
	switch v.kind {
	case ItemKindText:
		return v.s == ""
	case ItemKindCheckbox, ItemKindNumber:
		return false
	default:
		return true
	}
}

// String returns the display text for non-boolean answers. Checkbox answers
// render as "true"/"false"; reports render those as badges instead.
func (v AnswerValue) String() string {
	switch v.kind {
	case ItemKindCheckbox:
		return strconv.FormatBool(v.b)
	case ItemKindText:
		return v.s
	case ItemKindNumber:
		return strconv.FormatFloat(v.n, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON writes the raw JSON scalar for the answer's kind, keeping the
// persisted shape a plain bool, string, or number. Unset values marshal as
// null.
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ItemKindCheckbox:
		return json.Marshal(v.b)
	case ItemKindText:
		return json.Marshal(v.s)
	case ItemKindNumber:
		return json.Marshal(v.n)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON recovers the kind from the JSON scalar type, so a persisted
// true round-trips as a boolean answer rather than the string "true".
func (v *AnswerValue) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch val := raw.(type) {
	case bool:
		*v = BoolAnswer(val)
	case string:
		*v = TextAnswer(val)
	case float64:
		*v = NumberAnswer(val)
	case nil:
		*v = AnswerValue{}
	default:
		return Invalid("answer value must be a boolean, string, or number")
	}
	return nil
}

// InspectionResult is one item's captured answer.
type InspectionResult struct {
	ItemID string      `json:"itemId"`
	Value  AnswerValue `json:"value"`
}

// MergeResults applies incoming results onto existing ones, keeping at most
// one entry per item ID with the last write winning. Existing order is
// preserved; new item IDs are appended in incoming order.
func MergeResults(existing, incoming []InspectionResult) []InspectionResult {
	merged := make([]InspectionResult, len(existing))
	copy(merged, existing)
	index := make(map[string]int, len(merged))
	for i, r := range merged {
		index[r.ItemID] = i
	}
	for _, r := range incoming {
		if i, ok := index[r.ItemID]; ok {
			merged[i] = r
			continue
		}
		index[r.ItemID] = len(merged)
		merged = append(merged, r)
	}
	return merged
}

// AnsweredCount counts items with a non-empty answer. A checkbox answer of
// false counts as answered; an empty text answer does not.
func AnsweredCount(items []CheckItem, results []InspectionResult) int {
	byItem := resultIndex(results)
	count := 0
	for _, item := range items {
		if r, ok := byItem[item.ID]; ok && !r.Value.IsEmpty() {
			count++
		}
	}
	return count
}

// ProgressRatio returns answered/total clamped to [0,1], and 0 for an empty
// item list.
func ProgressRatio(items []CheckItem, results []InspectionResult) float64 {
	if len(items) == 0 {
		return 0
	}
	ratio := float64(AnsweredCount(items, results)) / float64(len(items))
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}

// PassCount returns the number of checkbox items answered true and the
// total number of checkbox-typed items, for the report summary.
func PassCount(items []CheckItem, results []InspectionResult) (passed, totalCheckbox int) {
	byItem := resultIndex(results)
	for _, item := range items {
		if item.Kind != ItemKindCheckbox {
			continue
		}
		totalCheckbox++
		if r, ok := byItem[item.ID]; ok {
			if b, isBool := r.Value.Bool(); isBool && b {
				passed++
			}
		}
	}
	return passed, totalCheckbox
}

func resultIndex(results []InspectionResult) map[string]InspectionResult {
	byItem := make(map[string]InspectionResult, len(results))
	for _, r := range results {
		byItem[r.ItemID] = r
	}
	return byItem
}
