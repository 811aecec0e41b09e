package reservation

import "time"

type Reservation struct {
	ID         int       `db:"id" json:"id"`
	UserID     int       `db:"user_id" json:"user_id"`
	GroundID   int       `db:"ground_id" json:"ground_id"`
	TimeSlotID int       `db:"time_slot_id" json:"time_slot_id"`
	IsActive   bool      `db:"is_active" json:"is_active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

type CreateReservationRequest struct {
	GroundID   int `json:"ground_id" validate:"required,gt=0" example:"1"`
	TimeSlotID int `json:"time_slot_id" validate:"required,gt=0" example:"1"`
	// Administrators may book on behalf of another user.
	UserID *int `json:"user_id,omitempty" validate:"omitempty,gt=0"`
}

type UpdateReservationRequest struct {
	UserID     *int  `json:"user_id,omitempty" validate:"omitempty,gt=0"`
	GroundID   *int  `json:"ground_id,omitempty" validate:"omitempty,gt=0"`
	TimeSlotID *int  `json:"time_slot_id,omitempty" validate:"omitempty,gt=0"`
	IsActive   *bool `json:"is_active,omitempty"`
}
