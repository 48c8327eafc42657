package diary

import (
	"context"
	"sync"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

var _ mealAPI = &mealAPIMock{}

type mealAPIMock struct {
	HasProfileFunc       func(ctx context.Context, ownerID string) (bool, error)
	MealsForDayFunc      func(ctx context.Context, ownerID string, day time.Time) ([]domain.MealRecord, error)
	CreateMealRecordFunc func(ctx context.Context, rec domain.MealRecord, photos []domain.Photo) ([]string, error)

	calls struct {
		HasProfile []struct {
			OwnerID string
		}
		MealsForDay []struct {
			OwnerID string
			Day     time.Time
		}
		CreateMealRecord []struct {
			Rec    domain.MealRecord
			Photos []domain.Photo
		}
	}
	lockHasProfile       sync.RWMutex
	lockMealsForDay      sync.RWMutex
	lockCreateMealRecord sync.RWMutex
}

func (mock *mealAPIMock) HasProfile(ctx context.Context, ownerID string) (bool, error) {
	if mock.HasProfileFunc == nil {
		panic("mealAPIMock.HasProfileFunc: method is nil but mealAPI.HasProfile was just called")
	}
	callInfo := struct{ OwnerID string }{OwnerID: ownerID}
	mock.lockHasProfile.Lock()
	mock.calls.HasProfile = append(mock.calls.HasProfile, callInfo)
	mock.lockHasProfile.Unlock()
	return mock.HasProfileFunc(ctx, ownerID)
}

func (mock *mealAPIMock) HasProfileCalls() []struct{ OwnerID string } {
	mock.lockHasProfile.RLock()
	calls := mock.calls.HasProfile
	mock.lockHasProfile.RUnlock()
	return calls
}

func (mock *mealAPIMock) MealsForDay(ctx context.Context, ownerID string, day time.Time) ([]domain.MealRecord, error) {
	if mock.MealsForDayFunc == nil {
		panic("mealAPIMock.MealsForDayFunc: method is nil but mealAPI.MealsForDay was just called")
	}
	callInfo := struct {
		OwnerID string
		Day     time.Time
	}{OwnerID: ownerID, Day: day}
	mock.lockMealsForDay.Lock()
	mock.calls.MealsForDay = append(mock.calls.MealsForDay, callInfo)
	mock.lockMealsForDay.Unlock()
	return mock.MealsForDayFunc(ctx, ownerID, day)
}

func (mock *mealAPIMock) MealsForDayCalls() []struct {
	OwnerID string
	Day     time.Time
} {
	mock.lockMealsForDay.RLock()
	calls := mock.calls.MealsForDay
	mock.lockMealsForDay.RUnlock()
	return calls
}

func (mock *mealAPIMock) CreateMealRecord(ctx context.Context, rec domain.MealRecord, photos []domain.Photo) ([]string, error) {
	if mock.CreateMealRecordFunc == nil {
		panic("mealAPIMock.CreateMealRecordFunc: method is nil but mealAPI.CreateMealRecord was just called")
	}
	callInfo := struct {
		Rec    domain.MealRecord
		Photos []domain.Photo
	}{Rec: rec, Photos: photos}
	mock.lockCreateMealRecord.Lock()
	mock.calls.CreateMealRecord = append(mock.calls.CreateMealRecord, callInfo)
	mock.lockCreateMealRecord.Unlock()
	return mock.CreateMealRecordFunc(ctx, rec, photos)
}

func (mock *mealAPIMock) CreateMealRecordCalls() []struct {
	Rec    domain.MealRecord
	Photos []domain.Photo
} {
	mock.lockCreateMealRecord.RLock()
	calls := mock.calls.CreateMealRecord
	mock.lockCreateMealRecord.RUnlock()
	return calls
}
