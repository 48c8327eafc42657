package voicelog

import (
	"fmt"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// PreviewItem is one draft as shown for confirmation.
type PreviewItem struct {
	Draft    domain.VoiceDraftItem
	HasPhoto bool
}

// Items returns the drafts awaiting confirmation.
func (p *Pipeline) Items() []PreviewItem {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]PreviewItem, len(p.items))
	for i, item := range p.items {
		out[i] = PreviewItem{Draft: item.draft, HasPhoto: item.photo != nil}
	}
	return out
}

// AttachPhoto binds a photo to the draft at index. Each draft holds at
// most one photo; attaching again replaces the previous one.
func (p *Pipeline) AttachPhoto(index int, photo domain.Photo) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != StatePreviewing {
		return fmt.Errorf("attach photo from %s: %w", p.state, ErrWrongState)
	}
	if index < 0 || index >= len(p.items) {
		return domain.NewValidationError("index", fmt.Sprintf("no draft at index %d", index))
	}
	if len(photo.Data) == 0 {
		return domain.NewValidationError("photo", "empty photo")
	}

	p.items[index].photo = &photo
	return nil
}
