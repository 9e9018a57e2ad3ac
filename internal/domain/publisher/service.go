package publisher

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
)

// Service 出版社领域服务接口
type Service interface {
	Create(ctx context.Context, name, information string) (*Publisher, error)
	GetByID(ctx context.Context, id uint) (*Publisher, error)
	Edit(ctx context.Context, id uint, p Patch) (*Publisher, error)
	List(ctx context.Context, f listing.Filter) ([]*Publisher, int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, name, information string) (*Publisher, error) {
	pub, err := NewPublisher(name, information)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, name, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, pub); err != nil {
		return nil, err
	}
	return pub, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Publisher, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Edit(ctx context.Context, id uint, p Patch) (*Publisher, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := p.Diff(current)
	if changes.Empty() {
		return current, nil
	}

	if changes.Has(FieldName) {
		if err := s.ensureNameAvailable(ctx, *p.Name, id); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, id, changes); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, f listing.Filter) ([]*Publisher, int64, error) {
	return s.repo.List(ctx, listing.Build(f, ListSpec))
}

func (s *service) ensureNameAvailable(ctx context.Context, name string, selfID uint) error {
	existing, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, ErrPublisherNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if existing.ID != selfID {
		return ErrNameDuplicate
	}
	return nil
}
