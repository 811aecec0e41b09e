package timeslot

import "time"

type TimeSlot struct {
	ID        int       `db:"id" json:"id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TimeSlotRequest carries RFC3339 timestamps as sent by clients.
type TimeSlotRequest struct {
	StartTime string `json:"start_time" validate:"required" example:"2026-11-02T18:00:00Z"`
	EndTime   string `json:"end_time" validate:"required" example:"2026-11-02T19:00:00Z"`
}
