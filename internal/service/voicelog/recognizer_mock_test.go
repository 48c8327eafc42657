package voicelog

import (
	"context"
	"sync"
)

var _ recognizer = &recognizerMock{}

type recognizerMock struct {
	StartFunc func(ctx context.Context, onFinal func(transcript string), onErr func(error))

	calls struct {
		Start []struct{}
	}
	lockStart sync.RWMutex
}

func (mock *recognizerMock) Start(ctx context.Context, onFinal func(transcript string), onErr func(error)) {
	if mock.StartFunc == nil {
		panic("recognizerMock.StartFunc: method is nil but recognizer.Start was just called")
	}
	mock.lockStart.Lock()
	mock.calls.Start = append(mock.calls.Start, struct{}{})
	mock.lockStart.Unlock()
	mock.StartFunc(ctx, onFinal, onErr)
}

func (mock *recognizerMock) StartCalls() []struct{} {
	mock.lockStart.RLock()
	calls := mock.calls.Start
	mock.lockStart.RUnlock()
	return calls
}
