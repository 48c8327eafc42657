package domain

import "time"

// dinnerRolloverHour is the exclusive upper bound of the early-morning
// window in which a dinner record still counts toward the previous day.
const dinnerRolloverHour = 6

// DailyCompletion is the derived completeness state for one owner and day.
// Recorded holds a flag for each required slot only; non-required slots
// never appear in it.
type DailyCompletion struct {
	Recorded map[Slot]bool
	Complete bool
	Missing  Slot // first missing required slot in priority order; empty when Complete
}

// EffectiveDate returns the calendar day the record counts toward, at
// midnight in the record's location. A dinner logged between 00:00 and
// 06:00 reflects the previous evening's meal and is shifted back one day;
// no other slot gets this treatment. ok is false when the record has no
// timestamp and cannot be bucketed at all.
func (r MealRecord) EffectiveDate() (time.Time, bool) {
	if !r.HasTimestamp() {
		return time.Time{}, false
	}
	ts := r.Timestamp
	if r.Slot == SlotDinner && ts.Hour() < dinnerRolloverHour {
		ts = ts.AddDate(0, 0, -1)
	}
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location()), true
}

// EvaluateCompleteness reports which of the required slots are recorded on
// the calendar day of asOf. Records are assumed to belong to a single
// owner; filtering by owner is the caller's job. The function is pure:
// same records, same asOf, same result.
//
// A skipped record still marks its slot as recorded: the user explicitly
// stated they did not eat, which closes the slot. Duplicate records in one
// slot collapse to simple presence.
func EvaluateCompleteness(records []MealRecord, asOf time.Time) DailyCompletion {
	present := make(map[Slot]bool)
	for _, r := range records {
		eff, ok := r.EffectiveDate()
		if !ok {
			continue
		}
		if !sameDate(eff, asOf) {
			continue
		}
		present[r.Slot] = true
	}

	out := DailyCompletion{Recorded: make(map[Slot]bool, len(requiredSlots))}
	for _, s := range requiredSlots {
		out.Recorded[s] = present[s]
		if !present[s] && out.Missing == "" {
			out.Missing = s
		}
	}
	out.Complete = out.Missing == ""
	return out
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
