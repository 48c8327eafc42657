package domain

import "strings"

// Slot identifies one of the fixed meal occasions of a day.
type Slot string

const (
	SlotBreakfast    Slot = "BREAKFAST"
	SlotLunch        Slot = "LUNCH"
	SlotAfternoonTea Slot = "AFTERNOON_TEA"
	SlotDinner       Slot = "DINNER"
	SlotLateSnack    Slot = "LATE_SNACK"
)

func (s Slot) String() string { return string(s) }

func (s Slot) IsValid() bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotAfternoonTea, SlotDinner, SlotLateSnack:
		return true
	}
	return false
}

// requiredSlots are the slots whose presence makes a day complete, in the
// priority order used to pick the first missing one.
var requiredSlots = []Slot{SlotBreakfast, SlotLunch, SlotDinner}

// RequiredSlots returns the required slots in priority order.
// The returned slice is a copy and safe to modify.
func RequiredSlots() []Slot {
	out := make([]Slot, len(requiredSlots))
	copy(out, requiredSlots)
	return out
}

// IsRequired reports whether the slot participates in the completeness check.
func (s Slot) IsRequired() bool {
	for _, r := range requiredSlots {
		if s == r {
			return true
		}
	}
	return false
}

// ParseSlot maps a human-entered slot name (CLI flags, config) to a Slot.
// Matching is case-insensitive and tolerates "-", "_", and spaces.
func ParseSlot(name string) (Slot, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	switch key {
	case "breakfast":
		return SlotBreakfast, true
	case "lunch":
		return SlotLunch, true
	case "afternoontea":
		return SlotAfternoonTea, true
	case "dinner":
		return SlotDinner, true
	case "latesnack", "nightsnack":
		return SlotLateSnack, true
	}
	return "", false
}
