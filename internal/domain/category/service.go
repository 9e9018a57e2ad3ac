package category

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
)

// Service 分类领域服务接口
// 删除涉及图书外键，放在应用层编排（见application/catalog）
type Service interface {
	// Create 新建分类，名称重复返回ErrNameDuplicate
	Create(ctx context.Context, name string) (*Category, error)

	GetByID(ctx context.Context, id uint) (*Category, error)

	// Edit 部分更新，只写入发生变化的字段
	Edit(ctx context.Context, id uint, p Patch) (*Category, error)

	List(ctx context.Context, f listing.Filter) ([]*Category, int64, error)
}

type service struct {
	repo Repository
}

// NewService 创建分类领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, name string) (*Category, error) {
	c, err := NewCategory(name)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(ctx, name, 0); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*Category, error) {
	return s.repo.FindByID(ctx, id)
}

// Edit 编辑分类
// 流程：
// 1. 校验参数并读取当前记录
// 2. 计算变更集，为空直接返回当前记录，不写库
// 3. 名称变化时检查是否与其他分类冲突
// 4. 写入变更并返回最新记录
func (s *service) Edit(ctx context.Context, id uint, p Patch) (*Category, error) {
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

func (s *service) List(ctx context.Context, f listing.Filter) ([]*Category, int64, error) {
	return s.repo.List(ctx, listing.Build(f, ListSpec))
}

// ensureNameAvailable 名称被selfID以外的分类占用时返回冲突
func (s *service) ensureNameAvailable(ctx context.Context, name string, selfID uint) error {
	existing, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, ErrCategoryNotFound) {
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
