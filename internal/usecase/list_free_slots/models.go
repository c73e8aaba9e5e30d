package list_free_slots

import (
	"time"

	"github.com/ufjf-cead/StudioBookingService/pkg/types"
)

// Request модель запроса на получение свободных слотов периода
type Request struct {
	RequesterID int64  // ID запрашивающего (для логирования)
	DraftToken  string // Токен одобренного периода
}

// Slot свободный интервал времени внутри дня
type Slot struct {
	Start types.TimeString // Начало интервала
	End   types.TimeString // Конец интервала
}

// DaySlots свободные слоты одного дня периода
type DaySlots struct {
	Date  time.Time // Дата
	Slots []Slot    // Свободные интервалы по возрастанию; пусто - день занят
}

// Response модель ответа со свободными слотами по дням периода
type Response struct {
	SpaceID int64      // ID пространства
	Start   time.Time  // Начало периода
	End     time.Time  // Конец периода
	Days    []DaySlots // По одному элементу на каждый день периода
}
