package diary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// DayStatus is the evaluated view of one diary day.
type DayStatus struct {
	Day        time.Time
	Records    []domain.MealRecord
	Completion domain.DailyCompletion

	// Stale marks records served from the local mirror after a failed
	// fetch. A stale status is advisory and must be presented as such.
	Stale     bool
	FetchedAt time.Time
}

// DailyStatus fetches the owner's records around asOf and evaluates
// completeness for asOf's day. An early-morning dinner belongs to the
// previous day but is stored under the next calendar date, so both
// asOf's date and the following one are fetched; the evaluator then
// buckets by effective date.
//
// A fetch failure is returned as-is. The caller may fall back to
// CachedStatus, never to "assume complete".
func (s *Service) DailyStatus(ctx context.Context, ownerID string, asOf time.Time) (*DayStatus, error) {
	if ownerID == "" {
		return nil, domain.ErrNotLoggedIn
	}

	ok, err := s.api.HasProfile(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("check profile: %w", err)
	}
	if !ok {
		return nil, domain.ErrProfileRequired
	}

	day := asOf
	next := asOf.AddDate(0, 0, 1)

	records, err := s.api.MealsForDay(ctx, ownerID, day)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	nextRecords, err := s.api.MealsForDay(ctx, ownerID, next)
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}

	s.mirror(ctx, ownerID, day, records)
	s.mirror(ctx, ownerID, next, nextRecords)

	all := append(append([]domain.MealRecord{}, records...), nextRecords...)
	status := &DayStatus{
		Day:        day,
		Records:    all,
		Completion: domain.EvaluateCompleteness(all, asOf),
	}

	s.log.InfoContext(ctx, "daily status evaluated",
		slog.String("owner_id", ownerID),
		slog.String("day", day.Format("2006-01-02")),
		slog.Bool("complete", status.Completion.Complete),
	)
	return status, nil
}

// CachedStatus evaluates asOf's day from the local mirror. The result is
// always marked stale. domain.ErrNotFound means the day was never
// mirrored, so no fallback view exists.
func (s *Service) CachedStatus(ctx context.Context, ownerID string, asOf time.Time) (*DayStatus, error) {
	if ownerID == "" {
		return nil, domain.ErrNotLoggedIn
	}

	records, fetchedAt, err := s.cache.CachedDay(ownerID, asOf)
	if err != nil {
		return nil, fmt.Errorf("read cached day: %w", err)
	}

	// The next day's mirror may hold an early-morning dinner. Its absence
	// is not an error; the mirror simply has less to say.
	if nextRecords, _, err := s.cache.CachedDay(ownerID, asOf.AddDate(0, 0, 1)); err == nil {
		records = append(records, nextRecords...)
	}

	return &DayStatus{
		Day:        asOf,
		Records:    records,
		Completion: domain.EvaluateCompleteness(records, asOf),
		Stale:      true,
		FetchedAt:  fetchedAt,
	}, nil
}

// mirror writes fetched records to the local cache. Mirror failures are
// logged and swallowed; the live answer is already in hand.
func (s *Service) mirror(ctx context.Context, ownerID string, day time.Time, records []domain.MealRecord) {
	if err := s.cache.CacheDay(ownerID, day, records); err != nil {
		s.log.WarnContext(ctx, "failed to mirror day records",
			slog.String("day", day.Format("2006-01-02")),
			slog.String("error", err.Error()),
		)
	}
}
