package dietapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// The backend stores slot names in diet_time_type using the app's
// original zh-TW labels. They are a wire detail and never leak past this
// package.
var slotWireLabels = map[domain.Slot]string{
	domain.SlotBreakfast:    "早餐",
	domain.SlotLunch:        "午餐",
	domain.SlotAfternoonTea: "下午茶",
	domain.SlotDinner:       "晚餐",
	domain.SlotLateSnack:    "宵夜",
}

var wireLabelSlots = func() map[string]domain.Slot {
	m := make(map[string]domain.Slot, len(slotWireLabels))
	for slot, label := range slotWireLabels {
		m[label] = slot
	}
	return m
}()

// WireLabel returns the diet_time_type value for a slot.
func WireLabel(s domain.Slot) string { return slotWireLabels[s] }

// SlotFromWireLabel maps a diet_time_type value back to a Slot.
func SlotFromWireLabel(label string) (domain.Slot, bool) {
	s, ok := wireLabelSlots[label]
	return s, ok
}

// skipContent is the sentinel the backend stores as the only content item
// of a deliberately skipped meal.
const skipContent = "沒吃"

// Accepted diet_time layouts. The backend writes local wall-clock times
// with no zone information.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
}

// envelope is the common {success, message, data} response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// flexString unmarshals either a JSON string or a JSON number. The
// backend is loosely typed about ids.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %w", err)
	}
	*f = flexString(n.String())
	return nil
}

// mealRow is one daily_d row as the backend returns it. Content and image
// fields arrive in several historical shapes, so they stay raw here and
// get decoded tolerantly in mapMealRow.
type mealRow struct {
	DietTime     string          `json:"diet_time"`
	DietTimeType string          `json:"diet_time_type"`
	DietContent  json.RawMessage `json:"diet_content"`
	DietImgPath  json.RawMessage `json:"diet_img_path"`
}

// mapMealRow converts one backend row into a domain record. Rows whose
// slot label is unknown are dropped (ok=false); rows with an unparseable
// time keep a zero Timestamp so the completeness evaluator can exclude
// them without this layer guessing a day.
func mapMealRow(ownerID string, row mealRow) (domain.MealRecord, bool) {
	slot, ok := SlotFromWireLabel(row.DietTimeType)
	if !ok {
		return domain.MealRecord{}, false
	}

	rec := domain.MealRecord{
		OwnerID:      ownerID,
		Slot:         slot,
		ContentItems: decodeContent(row.DietContent),
		ImageRefs:    decodeImageRefs(row.DietImgPath),
	}
	rec.Skipped = len(rec.ContentItems) == 1 && rec.ContentItems[0] == skipContent

	for _, layout := range timeLayouts {
		if ts, err := time.ParseInLocation(layout, row.DietTime, time.Local); err == nil {
			rec.Timestamp = ts
			break
		}
	}

	return rec, true
}

// decodeContent accepts either ["a","b"] or a bare "a, b" string.
func decodeContent(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		return []string{s}
	}
	return nil
}

// decodeImageRefs accepts the shapes diet_img_path has taken over time:
// an array of paths, a bare path string, a JSON object {"path": ...}, or
// a string containing such an object.
func decodeImageRefs(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var refs []string
	if err := json.Unmarshal(raw, &refs); err == nil {
		return refs
	}

	var obj struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Path != "" {
		return []string{obj.Path}
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil && s != "" {
		if err := json.Unmarshal([]byte(s), &obj); err == nil && obj.Path != "" {
			return []string{obj.Path}
		}
		return []string{s}
	}

	return nil
}

// Credentials identifies a user for login.
type Credentials struct {
	UserKey  string `json:"userkey"`
	Email    string `json:"email"`
	Password string `json:"passwd"`
}

// Registration carries the signup form.
type Registration struct {
	UserKey  string `json:"userkey"`
	Name     string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"passwd"`
}

// APIError is a backend-reported failure: transport worked, the request
// did not.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error (status %d): %s", e.Status, e.Message)
	}
	return "api error (status " + strconv.Itoa(e.Status) + ")"
}
