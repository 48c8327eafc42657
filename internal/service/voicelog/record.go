package voicelog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// StartRecording runs the recognizer and waits for its outcome. The
// first finalized transcript wins; anything the recognizer reports after
// that is ignored. A recognizer failure returns the pipeline to Idle
// with nothing kept.
func (p *Pipeline) StartRecording(ctx context.Context) error {
	p.mu.Lock()
	if p.state != StateIdle {
		p.mu.Unlock()
		return fmt.Errorf("start recording from %s: %w", p.state, ErrWrongState)
	}
	p.state = StateRecording
	p.mu.Unlock()

	var recErr error
	onFinal := func(transcript string) {
		p.mu.Lock()
		defer p.mu.Unlock()
		// First final transcript wins.
		if p.state != StateRecording {
			return
		}
		transcript = strings.TrimSpace(transcript)
		if transcript == "" {
			p.state = StateIdle
			recErr = errors.New("recognizer produced an empty transcript")
			return
		}
		p.transcript = transcript
		p.state = StateTranscribed
	}
	onErr := func(err error) {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.state != StateRecording {
			return
		}
		p.state = StateIdle
		recErr = err
	}

	p.rec.Start(ctx, onFinal, onErr)

	p.mu.Lock()
	if p.state == StateRecording {
		// Recognizer finished without delivering anything.
		p.state = StateIdle
		recErr = errors.New("recognizer ended without a transcript")
	}
	err := recErr
	length := len(p.transcript)
	p.mu.Unlock()

	if err != nil {
		return fmt.Errorf("recording failed: %w", err)
	}
	p.log.InfoContext(ctx, "transcript captured", slog.Int("length", length))
	return nil
}
