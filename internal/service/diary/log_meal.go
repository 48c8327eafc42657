package diary

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// LogMeal submits one manually logged meal. Resubmitting the same slot
// for the same day replaces the earlier record server-side; the client
// does not try to resolve that. Returns the backend's references for the
// uploaded photos.
func (s *Service) LogMeal(ctx context.Context, input LogMealInput) ([]string, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	clock := input.TimeOfDay
	if clock == "" {
		clock = domain.DefaultClockTime
	}
	clock, _ = domain.NormalizeClockTime(clock)

	rec := domain.MealRecord{
		OwnerID:   input.OwnerID,
		Slot:      input.Slot,
		Timestamp: atClock(input.Day, clock),
		Skipped:   input.Skipped,
	}
	if !input.Skipped {
		for _, item := range input.Content {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				rec.ContentItems = append(rec.ContentItems, trimmed)
			}
		}
	}

	refs, err := s.api.CreateMealRecord(ctx, rec, input.Photos)
	if err != nil {
		return nil, fmt.Errorf("create meal record: %w", err)
	}

	s.log.InfoContext(ctx, "meal logged",
		slog.String("owner_id", input.OwnerID),
		slog.String("slot", input.Slot.String()),
		slog.String("day", input.Day.Format("2006-01-02")),
		slog.Bool("skipped", input.Skipped),
		slog.Int("photos", len(input.Photos)),
	)
	return refs, nil
}

// atClock places a normalized "HH:MM" onto day's calendar date.
func atClock(day time.Time, clock string) time.Time {
	hh, _ := strconv.Atoi(clock[:2])
	mm, _ := strconv.Atoi(clock[3:])
	return time.Date(day.Year(), day.Month(), day.Day(), hh, mm, 0, 0, day.Location())
}
