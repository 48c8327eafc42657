package diary

import (
	"context"
	"log/slog"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

type mealAPI interface {
	HasProfile(ctx context.Context, ownerID string) (bool, error)
	MealsForDay(ctx context.Context, ownerID string, day time.Time) ([]domain.MealRecord, error)
	CreateMealRecord(ctx context.Context, rec domain.MealRecord, photos []domain.Photo) ([]string, error)
}

type dayCache interface {
	CacheDay(ownerID string, day time.Time, records []domain.MealRecord) error
	CachedDay(ownerID string, day time.Time) ([]domain.MealRecord, time.Time, error)
}

// Service provides the day view and manual meal logging.
type Service struct {
	api   mealAPI
	cache dayCache
	log   *slog.Logger
}

// NewService creates a new diary service.
func NewService(
	log *slog.Logger,
	api mealAPI,
	cache dayCache,
) *Service {
	return &Service{
		api:   api,
		cache: cache,
		log:   log.With("service", "diary"),
	}
}
