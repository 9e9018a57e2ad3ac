package publisher

import (
	"context"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
)

// Repository 出版社仓储接口，语义与category.Repository相同
type Repository interface {
	Create(ctx context.Context, p *Publisher) error
	FindByID(ctx context.Context, id uint) (*Publisher, error)
	FindByName(ctx context.Context, name string) (*Publisher, error)
	List(ctx context.Context, pred listing.Predicate) ([]*Publisher, int64, error)
	Update(ctx context.Context, id uint, changes patch.Set) error
	Delete(ctx context.Context, id uint) error
	DeleteByIDs(ctx context.Context, ids []uint) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
