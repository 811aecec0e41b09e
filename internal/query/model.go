package query

import "time"

// Joined fields are pointers: a dangling reference leaves them null instead
// of dropping the row.

type ReservationDetails struct {
	ReservationID int       `db:"reservation_id" json:"reservation_id"`
	IsActive      bool      `db:"is_active" json:"is_active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`

	UserID      int     `db:"user_id" json:"user_id"`
	UserName    *string `db:"user_name" json:"user_name"`
	UserEmail   *string `db:"user_email" json:"user_email"`
	UserContact *string `db:"user_contact" json:"user_contact"`

	GroundID          int      `db:"ground_id" json:"ground_id"`
	GroundName        *string  `db:"ground_name" json:"ground_name"`
	GroundDescription *string  `db:"ground_description" json:"ground_description"`
	GroundRate        *float64 `db:"ground_rate" json:"ground_rate"`

	TimeSlotID int        `db:"time_slot_id" json:"time_slot_id"`
	StartTime  *time.Time `db:"start_time" json:"start_time"`
	EndTime    *time.Time `db:"end_time" json:"end_time"`
}

type WishlistDetails struct {
	EntryID     int       `db:"entry_id" json:"entry_id"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	UserID    int     `db:"user_id" json:"user_id"`
	UserName  *string `db:"user_name" json:"user_name"`
	UserEmail *string `db:"user_email" json:"user_email"`

	GroundID   int     `db:"ground_id" json:"ground_id"`
	GroundName *string `db:"ground_name" json:"ground_name"`

	ReservationID     int   `db:"reservation_id" json:"reservation_id"`
	ReservationActive *bool `db:"reservation_active" json:"reservation_active"`

	TimeSlotID *int       `db:"time_slot_id" json:"time_slot_id"`
	StartTime  *time.Time `db:"start_time" json:"start_time"`
	EndTime    *time.Time `db:"end_time" json:"end_time"`
}

type SlotAvailability struct {
	TimeSlotID    int       `db:"time_slot_id" json:"time_slot_id"`
	StartTime     time.Time `db:"start_time" json:"start_time"`
	EndTime       time.Time `db:"end_time" json:"end_time"`
	IsBooked      bool      `db:"is_booked" json:"is_booked"`
	ReservationID *int      `db:"reservation_id" json:"reservation_id,omitempty"`
}

type GroundAvailability struct {
	GroundID int                `json:"ground_id"`
	Name     string             `json:"name"`
	Active   bool               `json:"active"`
	Slots    []SlotAvailability `json:"slots"`
}
