package voicelog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// State is the voice pipeline's current phase.
type State string

const (
	StateIdle        State = "IDLE"
	StateRecording   State = "RECORDING"
	StateTranscribed State = "TRANSCRIBED"
	StateAnalyzing   State = "ANALYZING"
	StatePreviewing  State = "PREVIEWING"
	StateSaving      State = "SAVING"
	StateDone        State = "DONE"
)

// ErrWrongState is returned when an operation is invoked in a phase that
// does not allow it.
var ErrWrongState = errors.New("operation not allowed in current pipeline state")

type recognizer interface {
	Start(ctx context.Context, onFinal func(transcript string), onErr func(error))
}

type extractor interface {
	Extract(ctx context.Context, transcript string) ([]domain.VoiceDraftItem, error)
}

type entrySaver interface {
	SaveDietEntry(ctx context.Context, entry domain.DietEntry) error
}

// previewItem is one extracted draft plus its optional photo.
type previewItem struct {
	draft domain.VoiceDraftItem
	photo *domain.Photo
}

// Pipeline drives one voice capture from recording to persisted records.
// It is safe for concurrent use; the recognizer's callbacks may arrive
// from another goroutine.
type Pipeline struct {
	rec   recognizer
	ext   extractor
	saver entrySaver
	log   *slog.Logger
	now   func() time.Time

	mu         sync.Mutex
	state      State
	transcript string
	items      []previewItem
}

// NewPipeline creates a pipeline in the Idle state.
func NewPipeline(
	log *slog.Logger,
	rec recognizer,
	ext extractor,
	saver entrySaver,
) *Pipeline {
	return &Pipeline{
		rec:   rec,
		ext:   ext,
		saver: saver,
		log:   log.With("service", "voicelog"),
		now:   time.Now,
		state: StateIdle,
	}
}

// State returns the current phase.
func (p *Pipeline) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Transcript returns the finalized transcript, if one exists.
func (p *Pipeline) Transcript() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.transcript, p.transcript != ""
}

// Cancel abandons the capture from any phase. Transcript, drafts and
// attached photos are all discarded.
func (p *Pipeline) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = StateIdle
	p.transcript = ""
	p.items = nil
}
