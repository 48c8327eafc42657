package domain

import "github.com/google/uuid"

// VoiceDraftItem is one meal mentioned in a transcript, as extracted by
// the language model. Drafts exist only between transcript analysis and
// save (or cancellation); they are never persisted as-is.
type VoiceDraftItem struct {
	ID        uuid.UUID
	SlotLabel string // extractor label, passed through to the backend unchanged
	TimeOfDay string // normalized "HH:MM"; empty when the model gave no usable time
	Content   string
}

// NewVoiceDraftItem builds a draft with a fresh client-side identity.
// The raw time is normalized here so the rest of the pipeline only ever
// sees "HH:MM" or empty.
func NewVoiceDraftItem(slotLabel, rawTime, content string) VoiceDraftItem {
	timeOfDay, _ := NormalizeClockTime(rawTime)
	return VoiceDraftItem{
		ID:        uuid.New(),
		SlotLabel: slotLabel,
		TimeOfDay: timeOfDay,
		Content:   content,
	}
}
