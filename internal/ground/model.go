package ground

import "time"

type Ground struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Rate        float64   `db:"rate" json:"rate"`
	Active      bool      `db:"active" json:"active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

type CreateGroundRequest struct {
	Name        string  `json:"name" validate:"required,max=255" example:"FieldA"`
	Description string  `json:"description" validate:"required" example:"Full-size turf with floodlights"`
	Rate        float64 `json:"rate" validate:"gt=0" example:"100"`
	// Defaults to true when omitted.
	Active *bool `json:"active,omitempty"`
}

type UpdateGroundRequest struct {
	Name        *string  `json:"name,omitempty" validate:"omitempty,max=255"`
	Description *string  `json:"description,omitempty"`
	Rate        *float64 `json:"rate,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}
