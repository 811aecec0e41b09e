package ground

import (
	"context"
	"database/sql"
	"errors"

	"github.com/XCypherusX/tbs-api/internal/apperr"
	"github.com/XCypherusX/tbs-api/internal/db"

	"github.com/jmoiron/sqlx"
)

const (
	nameConstraint = "grounds_name_key"
	rateConstraint = "grounds_rate_check"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, g *Ground) (*Ground, error) {
	query := `
		INSERT INTO grounds (name, description, rate, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, description, rate, active, created_at, updated_at
	`

	var created Ground
	err := db.Q(ctx, r.db).GetContext(ctx, &created, query, g.Name, g.Description, g.Rate, g.Active)
	if err != nil {
		return nil, mapWriteError(err, "failed to create ground")
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Ground, error) {
	return r.get(ctx, id, "")
}

// GetForShare blocks concurrent updates of the row until the surrounding
// transaction ends.
func (r *repository) GetForShare(ctx context.Context, id int) (*Ground, error) {
	return r.get(ctx, id, "FOR SHARE")
}

func (r *repository) GetForUpdate(ctx context.Context, id int) (*Ground, error) {
	return r.get(ctx, id, "FOR UPDATE")
}

func (r *repository) get(ctx context.Context, id int, lock string) (*Ground, error) {
	query := `
		SELECT id, name, description, rate, active, created_at, updated_at
		FROM grounds
		WHERE id = $1
	` + lock

	var g Ground
	err := db.Q(ctx, r.db).GetContext(ctx, &g, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, apperr.Wrap(err, "failed to load ground")
	}

	return &g, nil
}

func (r *repository) List(ctx context.Context) ([]Ground, error) {
	query := `
		SELECT id, name, description, rate, active, created_at, updated_at
		FROM grounds
		ORDER BY name ASC
	`

	grounds := []Ground{}
	if err := db.Q(ctx, r.db).SelectContext(ctx, &grounds, query); err != nil {
		return nil, apperr.Wrap(err, "failed to list grounds")
	}

	return grounds, nil
}

func (r *repository) NameExists(ctx context.Context, name string, excludeID int) (bool, error) {
	exists, err := db.Exists(ctx, db.Q(ctx, r.db),
		`SELECT EXISTS(SELECT 1 FROM grounds WHERE name = $1 AND id <> $2)`,
		name, excludeID,
	)
	if err != nil {
		return false, apperr.Wrap(err, "failed to check ground name")
	}
	return exists, nil
}

func (r *repository) Update(ctx context.Context, g *Ground) (*Ground, error) {
	query := `
		UPDATE grounds
		SET name = $1, description = $2, rate = $3, active = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING id, name, description, rate, active, created_at, updated_at
	`

	var updated Ground
	err := db.Q(ctx, r.db).GetContext(ctx, &updated, query, g.Name, g.Description, g.Rate, g.Active, g.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapWriteError(err, "failed to update ground")
	}

	return &updated, nil
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := db.Q(ctx, r.db).ExecContext(ctx, `DELETE FROM grounds WHERE id = $1`, id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return ErrInUse
		}
		return apperr.Wrap(err, "failed to delete ground")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperr.Wrap(err, "failed to delete ground")
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) IsReferenced(ctx context.Context, id int) (bool, error) {
	exists, err := db.Exists(ctx, db.Q(ctx, r.db), `
		SELECT EXISTS(SELECT 1 FROM reservations WHERE ground_id = $1)
		    OR EXISTS(SELECT 1 FROM wishlist_entries WHERE ground_id = $1)
	`, id)
	if err != nil {
		return false, apperr.Wrap(err, "failed to check ground references")
	}
	return exists, nil
}

// mapWriteError keeps values the column cannot hold out of the Unavailable
// bucket.
func mapWriteError(err error, message string) error {
	switch {
	case db.IsUniqueViolation(err, nameConstraint):
		return ErrDuplicateName
	case db.IsCheckViolation(err, rateConstraint), db.IsNumericOutOfRange(err):
		return ErrInvalidRate
	}
	return apperr.Wrap(err, message)
}
