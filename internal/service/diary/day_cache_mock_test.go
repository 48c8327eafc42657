package diary

import (
	"sync"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

var _ dayCache = &dayCacheMock{}

type dayCacheMock struct {
	CacheDayFunc  func(ownerID string, day time.Time, records []domain.MealRecord) error
	CachedDayFunc func(ownerID string, day time.Time) ([]domain.MealRecord, time.Time, error)

	calls struct {
		CacheDay []struct {
			OwnerID string
			Day     time.Time
			Records []domain.MealRecord
		}
		CachedDay []struct {
			OwnerID string
			Day     time.Time
		}
	}
	lockCacheDay  sync.RWMutex
	lockCachedDay sync.RWMutex
}

func (mock *dayCacheMock) CacheDay(ownerID string, day time.Time, records []domain.MealRecord) error {
	if mock.CacheDayFunc == nil {
		panic("dayCacheMock.CacheDayFunc: method is nil but dayCache.CacheDay was just called")
	}
	callInfo := struct {
		OwnerID string
		Day     time.Time
		Records []domain.MealRecord
	}{OwnerID: ownerID, Day: day, Records: records}
	mock.lockCacheDay.Lock()
	mock.calls.CacheDay = append(mock.calls.CacheDay, callInfo)
	mock.lockCacheDay.Unlock()
	return mock.CacheDayFunc(ownerID, day, records)
}

func (mock *dayCacheMock) CacheDayCalls() []struct {
	OwnerID string
	Day     time.Time
	Records []domain.MealRecord
} {
	mock.lockCacheDay.RLock()
	calls := mock.calls.CacheDay
	mock.lockCacheDay.RUnlock()
	return calls
}

func (mock *dayCacheMock) CachedDay(ownerID string, day time.Time) ([]domain.MealRecord, time.Time, error) {
	if mock.CachedDayFunc == nil {
		panic("dayCacheMock.CachedDayFunc: method is nil but dayCache.CachedDay was just called")
	}
	callInfo := struct {
		OwnerID string
		Day     time.Time
	}{OwnerID: ownerID, Day: day}
	mock.lockCachedDay.Lock()
	mock.calls.CachedDay = append(mock.calls.CachedDay, callInfo)
	mock.lockCachedDay.Unlock()
	return mock.CachedDayFunc(ownerID, day)
}

func (mock *dayCacheMock) CachedDayCalls() []struct {
	OwnerID string
	Day     time.Time
} {
	mock.lockCachedDay.RLock()
	calls := mock.calls.CachedDay
	mock.lockCachedDay.RUnlock()
	return calls
}
