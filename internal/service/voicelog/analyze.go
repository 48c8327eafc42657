package voicelog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// Analyze sends the transcript through structured extraction. On success
// the pipeline moves to Previewing with the extracted drafts. An
// extraction failure (including a malformed model response) moves back
// to Transcribed with the transcript intact, so the user can retry
// without re-recording.
func (p *Pipeline) Analyze(ctx context.Context) ([]domain.VoiceDraftItem, error) {
	p.mu.Lock()
	if p.state != StateTranscribed {
		p.mu.Unlock()
		return nil, fmt.Errorf("analyze from %s: %w", p.state, ErrWrongState)
	}
	transcript := p.transcript
	p.state = StateAnalyzing
	p.mu.Unlock()

	drafts, err := p.ext.Extract(ctx, transcript)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StateAnalyzing {
		// Cancelled underneath us; drop the result.
		return nil, fmt.Errorf("analyze interrupted: %w", ErrWrongState)
	}
	if err != nil {
		p.state = StateTranscribed
		return nil, fmt.Errorf("extract transcript: %w", err)
	}

	p.items = make([]previewItem, len(drafts))
	for i, d := range drafts {
		p.items[i] = previewItem{draft: d}
	}
	p.state = StatePreviewing

	p.log.InfoContext(ctx, "transcript analyzed", slog.Int("items", len(drafts)))
	return drafts, nil
}
