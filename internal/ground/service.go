package ground

import (
	"context"
	"strings"

	"github.com/XCypherusX/tbs-api/internal/db"
	"github.com/XCypherusX/tbs-api/internal/logger"
)

// Bounds of the NUMERIC(12,2) rate column. Smaller positive values round
// to zero in storage.
const (
	MinRate = 0.01
	MaxRate = 9999999999.99
)

type Service interface {
	Create(ctx context.Context, req CreateGroundRequest) (*Ground, error)
	Get(ctx context.Context, id int) (*Ground, error)
	List(ctx context.Context) ([]Ground, error)
	Update(ctx context.Context, id int, req UpdateGroundRequest) (*Ground, error)
	Delete(ctx context.Context, id int) error
}

type service struct {
	repo Repository
	tx   db.TxRunner
}

func NewService(repo Repository, tx db.TxRunner) Service {
	return &service{
		repo: repo,
		tx:   tx,
	}
}

func (s *service) Create(ctx context.Context, req CreateGroundRequest) (*Ground, error) {
	g := &Ground{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Rate:        req.Rate,
		Active:      true,
	}
	if req.Active != nil {
		g.Active = *req.Active
	}

	if err := validate(g); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(ctx, g.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	created, err := s.repo.Create(ctx, g)
	if err != nil {
		return nil, err
	}

	logger.Info("ground created", "ground_id", created.ID, "name", created.Name)
	return created, nil
}

func (s *service) Get(ctx context.Context, id int) (*Ground, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]Ground, error) {
	return s.repo.List(ctx)
}

// Update holds the row lock for the whole patch, so a reservation that
// read the ground as active commits before deactivation proceeds.
func (s *service) Update(ctx context.Context, id int, req UpdateGroundRequest) (*Ground, error) {
	var updated *Ground
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		g, err := s.repo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			g.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			g.Description = strings.TrimSpace(*req.Description)
		}
		if req.Rate != nil {
			g.Rate = *req.Rate
		}
		if req.Active != nil {
			g.Active = *req.Active
		}

		if err := validate(g); err != nil {
			return err
		}

		if req.Name != nil {
			exists, err := s.repo.NameExists(ctx, g.Name, id)
			if err != nil {
				return err
			}
			if exists {
				return ErrDuplicateName
			}
		}

		updated, err = s.repo.Update(ctx, g)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a ground that nothing references. Reservations are kept as
// history, so a ground that was ever booked or watched can only be
// deactivated.
func (s *service) Delete(ctx context.Context, id int) error {
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetForUpdate(ctx, id); err != nil {
			return err
		}

		referenced, err := s.repo.IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return ErrInUse
		}

		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	logger.Info("ground deleted", "ground_id", id)
	return nil
}

func validate(g *Ground) error {
	if g.Name == "" {
		return ErrNameRequired
	}
	if g.Description == "" {
		return ErrDescriptionRequired
	}
	if g.Rate < MinRate || g.Rate > MaxRate {
		return ErrInvalidRate
	}
	return nil
}
