package user

import "time"

type User struct {
	ID           int       `db:"id" json:"id"`
	FullName     string    `db:"full_name" json:"full_name"`
	Email        string    `db:"email" json:"email"`
	Contact      string    `db:"contact" json:"contact"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	// Profile fields are optional and stay null until supplied.
	NID       *string    `db:"nid" json:"nid,omitempty"`
	DOB       *time.Time `db:"dob" json:"dob,omitempty"`
	Gender    *string    `db:"gender" json:"gender,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	FullName string `json:"full_name" validate:"required,max=255" example:"Jo Bloggs"`
	Email    string `json:"email" validate:"required,email" example:"jo@example.com"`
	Contact  string `json:"contact" validate:"max=32" example:"+15550100"`
	Password string `json:"password" validate:"required,min=8" example:"password123"`
	NID      string `json:"nid,omitempty" validate:"omitempty,max=32" example:"1990123456789"`
	DOB      string `json:"dob,omitempty" validate:"omitempty,datetime=2006-01-02" example:"1990-04-21"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,oneof=male female other" example:"female"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"jo@example.com"`
	Password string `json:"password" validate:"required" example:"password123"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}
