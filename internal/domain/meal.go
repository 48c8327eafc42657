package domain

import "time"

// MaxImageRefs is the most photos one meal record may carry.
const MaxImageRefs = 3

// MealRecord is one logged meal instance as seen by the client.
//
// Timestamp carries local wall-clock semantics: the backend stores the
// time exactly as the user entered it, without UTC normalization. A zero
// Timestamp means the backend row had no usable time; such records cannot
// be bucketed into a day.
type MealRecord struct {
	OwnerID      string
	Timestamp    time.Time
	Slot         Slot
	ContentItems []string
	ImageRefs    []string
	Skipped      bool
}

// HasTimestamp reports whether the record can be assigned to a calendar day.
func (r MealRecord) HasTimestamp() bool { return !r.Timestamp.IsZero() }

// Photo is one image attached to a meal record at creation time.
type Photo struct {
	Name string
	Data []byte
}

// DietEntry is one voice-derived meal ready to persist. SlotLabel is
// stored verbatim as the extractor produced it.
type DietEntry struct {
	OwnerID     string
	Timestamp   time.Time
	SlotLabel   string
	Content     []string
	ImageBase64 string // empty = no photo
}
