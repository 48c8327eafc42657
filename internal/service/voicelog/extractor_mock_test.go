package voicelog

import (
	"context"
	"sync"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

var _ extractor = &extractorMock{}

type extractorMock struct {
	ExtractFunc func(ctx context.Context, transcript string) ([]domain.VoiceDraftItem, error)

	calls struct {
		Extract []struct {
			Transcript string
		}
	}
	lockExtract sync.RWMutex
}

func (mock *extractorMock) Extract(ctx context.Context, transcript string) ([]domain.VoiceDraftItem, error) {
	if mock.ExtractFunc == nil {
		panic("extractorMock.ExtractFunc: method is nil but extractor.Extract was just called")
	}
	callInfo := struct{ Transcript string }{Transcript: transcript}
	mock.lockExtract.Lock()
	mock.calls.Extract = append(mock.calls.Extract, callInfo)
	mock.lockExtract.Unlock()
	return mock.ExtractFunc(ctx, transcript)
}

func (mock *extractorMock) ExtractCalls() []struct{ Transcript string } {
	mock.lockExtract.RLock()
	calls := mock.calls.Extract
	mock.lockExtract.RUnlock()
	return calls
}
