package models

import (
	"time"

	"github.com/google/uuid"
)

// ScheduleEntry is one recurring watering rule. TimeOfDay is stored as
// "HH:MM"; Weekdays is a comma-joined list of the localized 3-letter tags
// ("Seg,Qua,Sex") and is treated as a set: duplicates and order carry no
// meaning.
type ScheduleEntry struct {
	ID              uuid.UUID `json:"id"`
	AccountID       uuid.UUID `json:"account_id"`
	TimeOfDay       string    `json:"hora"`
	DurationMinutes int       `json:"duracao"`
	Weekdays        string    `json:"dias_semana"`
	Active          bool      `json:"ativo"`
	CreatedAt       time.Time `json:"created_at"`
}
