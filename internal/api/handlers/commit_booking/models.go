package commit_booking

import (
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
	commitBooking "github.com/ufjf-cead/StudioBookingService/internal/usecase/commit_booking"
	"github.com/ufjf-cead/StudioBookingService/pkg/types"
)

// BlockRequest один запрошенный блок времени
type BlockRequest struct {
	Date  string `json:"date"`  // "2026-09-15"
	Start string `json:"start"` // "10:00"
	End   string `json:"end"`   // "12:00"
}

// CommitBookingRequest HTTP request model
type CommitBookingRequest struct {
	DraftToken string         `json:"draftToken"`
	TermID     int64          `json:"termId"`
	Note       string         `json:"note"`
	Blocks     []BlockRequest `json:"blocks"`
}

// BlockResponse один сохранённый блок времени
type BlockResponse struct {
	ID    int64  `json:"id"`
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// CommitBookingResponse HTTP response model
type CommitBookingResponse struct {
	BookingID int64           `json:"bookingId"`
	SpaceID   int64           `json:"spaceId"`
	Signature string          `json:"signature"`
	CreatedAt string          `json:"createdAt"` // ISO 8601
	Blocks    []BlockResponse `json:"blocks"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CommitBookingRequest) ToUseCaseRequest(requesterID int64) (*commitBooking.Request, error) {
	blocks := make([]domain.BlockProposal, len(r.Blocks))
	for i, b := range r.Blocks {
		date, err := time.Parse(domain.DateFormat, b.Date)
		if err != nil {
			return nil, err
		}

		start, err := types.NewTimeStringFromString(b.Start)
		if err != nil {
			return nil, err
		}

		end, err := types.NewTimeStringFromString(b.End)
		if err != nil {
			return nil, err
		}

		blocks[i] = domain.BlockProposal{
			Date:      date,
			StartTime: start,
			EndTime:   end,
		}
	}

	return &commitBooking.Request{
		RequesterID: requesterID,
		DraftToken:  r.DraftToken,
		TermID:      r.TermID,
		Note:        r.Note,
		Blocks:      blocks,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *commitBooking.Response) *CommitBookingResponse {
	blocks := make([]BlockResponse, len(resp.Blocks))
	for i, b := range resp.Blocks {
		blocks[i] = BlockResponse{
			ID:    b.ID,
			Date:  b.Date.Format(domain.DateFormat),
			Start: b.StartTime.String(),
			End:   b.EndTime.String(),
		}
	}

	return &CommitBookingResponse{
		BookingID: resp.BookingID,
		SpaceID:   resp.SpaceID,
		Signature: resp.Signature,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		Blocks:    blocks,
	}
}
