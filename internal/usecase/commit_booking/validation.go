package commit_booking

import (
	"fmt"
	"strings"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}

	if req.RequesterID <= 0 {
		return fmt.Errorf("%w: requester_id must be positive", ErrInvalidInput)
	}

	if req.DraftToken == "" {
		return fmt.Errorf("%w: draft token is required", ErrInvalidInput)
	}

	if req.TermID <= 0 {
		return fmt.Errorf("%w: term_id must be positive", ErrInvalidInput)
	}

	note := strings.TrimSpace(req.Note)
	if note == "" {
		return fmt.Errorf("%w: note must not be blank", ErrInvalidInput)
	}
	if len([]rune(note)) > domain.MaxNoteLength {
		return fmt.Errorf("%w: note exceeds %d characters", ErrInvalidInput, domain.MaxNoteLength)
	}

	if len(req.Blocks) == 0 {
		return fmt.Errorf("%w: at least one time block is required", ErrInvalidInput)
	}

	for _, b := range req.Blocks {
		if b.Date.IsZero() {
			return fmt.Errorf("%w: block date is required", ErrInvalidInput)
		}
		if err := b.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid block start time %q", ErrInvalidInput, string(b.StartTime))
		}
		if err := b.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: invalid block end time %q", ErrInvalidInput, string(b.EndTime))
		}
		if !b.StartTime.IsBefore(b.EndTime) {
			return fmt.Errorf("%w: block start must precede end on %s",
				ErrInvalidInput, b.Date.Format(domain.DateFormat))
		}
	}

	// Блоки одной заявки не должны пересекаться между собой: проверка против
	// существующих броней их не увидит, а коммиттер - единственный писатель
	for i := range req.Blocks {
		for j := i + 1; j < len(req.Blocks); j++ {
			a, b := req.Blocks[i], req.Blocks[j]
			if !domain.SameDate(a.Date, b.Date) {
				continue
			}
			if a.StartTime.IsBefore(b.EndTime) && a.EndTime.IsAfter(b.StartTime) {
				return fmt.Errorf("%w: blocks %s-%s and %s-%s overlap on %s",
					ErrInvalidInput, a.StartTime, a.EndTime, b.StartTime, b.EndTime,
					a.Date.Format(domain.DateFormat))
			}
		}
	}

	return nil
}
