package ground

import "context"

type Repository interface {
	Create(ctx context.Context, g *Ground) (*Ground, error)
	GetByID(ctx context.Context, id int) (*Ground, error)
	GetForShare(ctx context.Context, id int) (*Ground, error)
	GetForUpdate(ctx context.Context, id int) (*Ground, error)
	List(ctx context.Context) ([]Ground, error)
	NameExists(ctx context.Context, name string, excludeID int) (bool, error)
	Update(ctx context.Context, g *Ground) (*Ground, error)
	Delete(ctx context.Context, id int) error
	IsReferenced(ctx context.Context, id int) (bool, error)
}
