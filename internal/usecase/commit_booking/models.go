package commit_booking

import (
	"time"

	"github.com/ufjf-cead/StudioBookingService/internal/domain"
)

// Request модель запроса на фиксацию бронирования
type Request struct {
	RequesterID int64                  // ID запрашивающего
	DraftToken  string                 // Токен одобренного периода
	TermID      int64                  // ID принятого терма согласия
	Note        string                 // Обязательная заметка с деталями мероприятия
	Blocks      []domain.BlockProposal // Запрошенные блоки времени
}

// Response модель ответа с зафиксированным бронированием
type Response struct {
	BookingID int64              // ID созданного бронирования
	SpaceID   int64              // ID пространства
	Signature string             // SHA-256 подпись для последующей сверки
	CreatedAt time.Time          // Время создания
	Blocks    []domain.TimeBlock // Сохранённые блоки с присвоенными ID
}
