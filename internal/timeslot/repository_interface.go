package timeslot

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, start, end time.Time) (*TimeSlot, error)
	GetByID(ctx context.Context, id int) (*TimeSlot, error)
	GetForShare(ctx context.Context, id int) (*TimeSlot, error)
	GetForUpdate(ctx context.Context, id int) (*TimeSlot, error)
	List(ctx context.Context) ([]TimeSlot, error)
	StartExists(ctx context.Context, start time.Time, excludeID int) (bool, error)
	Update(ctx context.Context, id int, start, end time.Time) (*TimeSlot, error)
	Delete(ctx context.Context, id int) error
	IsReferenced(ctx context.Context, id int) (bool, error)
}
