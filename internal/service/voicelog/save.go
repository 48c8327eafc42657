package voicelog

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// SaveStatus is the per-item outcome of a save batch.
type SaveStatus string

const (
	StatusSaved        SaveStatus = "SAVED"
	StatusFailed       SaveStatus = "FAILED"
	StatusNotAttempted SaveStatus = "NOT_ATTEMPTED"
)

// ItemOutcome reports what happened to one draft.
type ItemOutcome struct {
	Draft  domain.VoiceDraftItem
	Status SaveStatus
	Err    error
}

// SaveReport is the result of one save batch. Items already persisted
// stay persisted even when a later item fails; the report says exactly
// how far the batch got.
type SaveReport struct {
	Items []ItemOutcome
}

// AllSaved reports whether every draft was persisted.
func (r *SaveReport) AllSaved() bool {
	for _, item := range r.Items {
		if item.Status != StatusSaved {
			return false
		}
	}
	return true
}

// Save persists the confirmed drafts one by one, in order, each with a
// single attempt. The first failure stops the batch; remaining drafts
// are reported NotAttempted. Nothing is rolled back. Every draft is
// stamped with today's date; a draft without a usable time gets
// domain.DefaultClockTime.
func (p *Pipeline) Save(ctx context.Context, ownerID string) (*SaveReport, error) {
	if ownerID == "" {
		return nil, domain.ErrNotLoggedIn
	}

	p.mu.Lock()
	if p.state != StatePreviewing {
		p.mu.Unlock()
		return nil, fmt.Errorf("save from %s: %w", p.state, ErrWrongState)
	}
	p.state = StateSaving
	items := make([]previewItem, len(p.items))
	copy(items, p.items)
	p.mu.Unlock()

	today := p.now()
	report := &SaveReport{Items: make([]ItemOutcome, len(items))}
	failed := false

	for i, item := range items {
		report.Items[i].Draft = item.draft
		if failed {
			report.Items[i].Status = StatusNotAttempted
			continue
		}

		entry := domain.DietEntry{
			OwnerID:   ownerID,
			Timestamp: draftTimestamp(today, item.draft.TimeOfDay),
			SlotLabel: item.draft.SlotLabel,
			Content:   []string{item.draft.Content},
		}
		if item.photo != nil {
			entry.ImageBase64 = base64.StdEncoding.EncodeToString(item.photo.Data)
		}

		if err := p.saver.SaveDietEntry(ctx, entry); err != nil {
			report.Items[i].Status = StatusFailed
			report.Items[i].Err = err
			failed = true
			p.log.WarnContext(ctx, "draft save failed",
				slog.Int("index", i),
				slog.String("slot", item.draft.SlotLabel),
				slog.String("error", err.Error()),
			)
			continue
		}
		report.Items[i].Status = StatusSaved
	}

	p.mu.Lock()
	p.state = StateDone
	p.mu.Unlock()

	p.log.InfoContext(ctx, "save batch finished",
		slog.Int("items", len(items)),
		slog.Bool("all_saved", report.AllSaved()),
	)
	return report, nil
}

// draftTimestamp places a draft's "HH:MM" onto today's date. An
// unusable time falls back to domain.DefaultClockTime.
func draftTimestamp(today time.Time, clock string) time.Time {
	normalized, ok := domain.NormalizeClockTime(clock)
	if !ok {
		normalized = domain.DefaultClockTime
	}
	hh, _ := strconv.Atoi(normalized[:2])
	mm, _ := strconv.Atoi(normalized[3:])
	return time.Date(today.Year(), today.Month(), today.Day(), hh, mm, 0, 0, today.Location())
}
