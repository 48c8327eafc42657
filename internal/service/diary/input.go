package diary

import (
	"strings"
	"time"

	"github.com/avatarmedicine/dietdiary/internal/domain"
)

// LogMealInput holds the parameters for manually logging one meal.
type LogMealInput struct {
	OwnerID   string
	Slot      domain.Slot
	Day       time.Time
	TimeOfDay string // "HH:MM"; empty defaults to domain.DefaultClockTime
	Content   []string
	Photos    []domain.Photo
	Skipped   bool
}

// Validate checks all fields and collects all errors.
func (i LogMealInput) Validate() error {
	var errs []domain.FieldError

	if i.OwnerID == "" {
		errs = append(errs, domain.FieldError{Field: "owner_id", Message: "required"})
	}
	if !i.Slot.IsValid() {
		errs = append(errs, domain.FieldError{Field: "slot", Message: "unknown meal slot"})
	}
	if i.Day.IsZero() {
		errs = append(errs, domain.FieldError{Field: "day", Message: "required"})
	}
	if i.TimeOfDay != "" {
		if _, ok := domain.NormalizeClockTime(i.TimeOfDay); !ok {
			errs = append(errs, domain.FieldError{Field: "time", Message: "must be HH:MM"})
		}
	}

	if i.Skipped {
		if len(i.Photos) > 0 {
			errs = append(errs, domain.FieldError{Field: "photos", Message: "a skipped meal cannot carry photos"})
		}
	} else if !hasContent(i.Content) {
		errs = append(errs, domain.FieldError{Field: "content", Message: "required"})
	}

	if len(i.Photos) > domain.MaxImageRefs {
		errs = append(errs, domain.FieldError{Field: "photos", Message: "max 3 photos"})
	}
	for _, p := range i.Photos {
		if len(p.Data) == 0 {
			errs = append(errs, domain.FieldError{Field: "photos", Message: "empty photo"})
			break
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func hasContent(items []string) bool {
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			return true
		}
	}
	return false
}
