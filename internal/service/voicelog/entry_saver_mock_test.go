package voicelog

import (
	"context"
	"sync"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

var _ entrySaver = &entrySaverMock{}

type entrySaverMock struct {
	SaveDietEntryFunc func(ctx context.Context, entry domain.DietEntry) error

	calls struct {
		SaveDietEntry []struct {
			Entry domain.DietEntry
		}
	}
	lockSaveDietEntry sync.RWMutex
}

func (mock *entrySaverMock) SaveDietEntry(ctx context.Context, entry domain.DietEntry) error {
	if mock.SaveDietEntryFunc == nil {
		panic("entrySaverMock.SaveDietEntryFunc: method is nil but entrySaver.SaveDietEntry was just called")
	}
	callInfo := struct{ Entry domain.DietEntry }{Entry: entry}
	mock.lockSaveDietEntry.Lock()
	mock.calls.SaveDietEntry = append(mock.calls.SaveDietEntry, callInfo)
	mock.lockSaveDietEntry.Unlock()
	return mock.SaveDietEntryFunc(ctx, entry)
}

func (mock *entrySaverMock) SaveDietEntryCalls() []struct{ Entry domain.DietEntry } {
	mock.lockSaveDietEntry.RLock()
	calls := mock.calls.SaveDietEntry
	mock.lockSaveDietEntry.RUnlock()
	return calls
}
