package wishlist

import "time"

type Entry struct {
	ID            int       `db:"id" json:"id"`
	UserID        int       `db:"user_id" json:"user_id"`
	GroundID      int       `db:"ground_id" json:"ground_id"`
	ReservationID int       `db:"reservation_id" json:"reservation_id"`
	IsAvailable   bool      `db:"is_available" json:"is_available"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type CreateEntryRequest struct {
	GroundID      int `json:"ground_id" validate:"required,gt=0" example:"1"`
	ReservationID int `json:"reservation_id" validate:"required,gt=0" example:"12"`
	// Administrators may create entries for another user.
	UserID *int `json:"user_id,omitempty" validate:"omitempty,gt=0"`
}

// Watcher is a user whose watched pair has just become free.
type Watcher struct {
	EntryID    int       `db:"entry_id"`
	UserID     int       `db:"user_id"`
	Email      string    `db:"email"`
	FullName   string    `db:"full_name"`
	GroundName string    `db:"ground_name"`
	StartTime  time.Time `db:"start_time"`
}

// Flip is an entry whose availability a reconcile pass changed.
type Flip struct {
	EntryID     int  `db:"entry_id"`
	GroundID    int  `db:"ground_id"`
	TimeSlotID  int  `db:"time_slot_id"`
	IsAvailable bool `db:"is_available"`
}

type SyncResult struct {
	ReservationID int   `json:"reservation_id"`
	Updated       int64 `json:"updated"`
}
