package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// wireItem is the exact tuple shape the extraction contract allows.
type wireItem struct {
	MealType string `json:"meal_type"`
	Time     string `json:"time"`
	Content  string `json:"content"`
}

// parseExtraction applies the strict contract to the raw model output.
// The JSON array is located between the first '[' and the last ']' so a
// stray leading or trailing newline does not fail the parse, but inside
// that span the shape must match exactly: a JSON array of objects with no
// unknown fields, each carrying a non-empty meal_type and content. A
// single bare object is not a sequence and is rejected.
func parseExtraction(raw string) ([]domain.VoiceDraftItem, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end <= start {
		return nil, fmt.Errorf("%w: no JSON array in response", domain.ErrMalformedExtraction)
	}

	dec := json.NewDecoder(strings.NewReader(raw[start : end+1]))
	dec.DisallowUnknownFields()

	var items []wireItem
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedExtraction, err)
	}

	drafts := make([]domain.VoiceDraftItem, 0, len(items))
	for i, item := range items {
		if strings.TrimSpace(item.MealType) == "" {
			return nil, fmt.Errorf("%w: item %d has no meal_type", domain.ErrMalformedExtraction, i)
		}
		if strings.TrimSpace(item.Content) == "" {
			return nil, fmt.Errorf("%w: item %d has no content", domain.ErrMalformedExtraction, i)
		}
		drafts = append(drafts, domain.NewVoiceDraftItem(item.MealType, item.Time, item.Content))
	}
	return drafts, nil
}
