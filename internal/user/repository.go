package user

import (
	"context"
	"database/sql"
	"errors"

	"github.com/XCypherusX/tbs-api/internal/apperr"
	"github.com/XCypherusX/tbs-api/internal/db"

	"github.com/jmoiron/sqlx"
)

const (
	emailConstraint = "users_email_key"
	userColumns     = "id, full_name, email, contact, password_hash, role, nid, dob, gender, created_at"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) (*User, error) {
	query := `
		INSERT INTO users (full_name, email, contact, password_hash, role, nid, dob, gender)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns + `
	`

	var user User
	err := db.Q(ctx, r.db).GetContext(ctx, &user, query,
		u.FullName, u.Email, u.Contact, u.PasswordHash, u.Role, u.NID, u.DOB, u.Gender)
	if err != nil {
		if db.IsUniqueViolation(err, emailConstraint) {
			return nil, ErrEmailExists
		}
		return nil, apperr.Wrap(err, "failed to create user")
	}

	return &user, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`
	return r.find(ctx, query, email)
}

func (r *repository) FindByID(ctx context.Context, id int) (*User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`
	return r.find(ctx, query, id)
}

func (r *repository) find(ctx context.Context, query string, arg interface{}) (*User, error) {
	var user User
	err := db.Q(ctx, r.db).GetContext(ctx, &user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Wrap(err, "failed to load user")
	}
	return &user, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := db.Exists(ctx, db.Q(ctx, r.db), `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return false, apperr.Wrap(err, "failed to check email")
	}
	return exists, nil
}
