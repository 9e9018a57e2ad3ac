package book

import (
	"context"
	"errors"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 负责书名唯一性、编辑差异计算、图片调整这些单聚合规则
// 2. 分类/出版社是否存在、事务边界、级联删除由应用层编排
type Service interface {
	// Create 创建图书及其图片
	Create(ctx context.Context, b *Book, images []string) (*Book, error)

	// GetByID 图书详情(含图片)
	GetByID(ctx context.Context, id uint) (*Book, error)

	// Edit 部分更新图书,图片列表通过调整计划落库
	Edit(ctx context.Context, id uint, p Patch) (*Book, error)

	List(ctx context.Context, f listing.Filter) ([]*Book, int64, error)
}

type service struct {
	repo   Repository
	images ImageRepository
}

// NewService 创建图书领域服务
func NewService(repo Repository, images ImageRepository) Service {
	return &service{repo: repo, images: images}
}

func (s *service) Create(ctx context.Context, b *Book, images []string) (*Book, error) {
	// 1. 图片地址校验
	if err := validateSources(images); err != nil {
		return nil, err
	}

	// 2. 书名唯一性
	if err := s.ensureNameAvailable(ctx, b.Name, 0); err != nil {
		return nil, err
	}

	// 3. 持久化图书
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	// 4. 保存图片(重复地址只保存一份)
	if plan := ReconcileImages(nil, images); len(plan.Add) > 0 {
		if err := s.images.Create(ctx, b.ID, plan.Add); err != nil {
			return nil, err
		}
	}

	return s.repo.FindByID(ctx, b.ID)
}

func (s *service) GetByID(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// Edit 编辑图书
// 流程:
// 1. 读取当前图书(含图片)
// 2. 分别计算图书行的变更集和图片调整计划,两者都为空时不写库
// 3. 书名变化时检查冲突
// 4. 写入图书行,再按计划调整图片
func (s *service) Edit(ctx context.Context, id uint, p Patch) (*Book, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := p.Diff(current)
	plan := p.ImagePlan(current)
	if changes.Empty() && plan.Empty() {
		return current, nil
	}

	if changes.Has(FieldName) {
		if err := s.ensureNameAvailable(ctx, *p.Name, id); err != nil {
			return nil, err
		}
	}

	if !changes.Empty() {
		if err := s.repo.Update(ctx, id, changes); err != nil {
			return nil, err
		}
	}

	if err := s.applyImagePlan(ctx, id, plan); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, id)
}

func (s *service) List(ctx context.Context, f listing.Filter) ([]*Book, int64, error) {
	return s.repo.List(ctx, listing.Build(f, ListSpec))
}

func (s *service) applyImagePlan(ctx context.Context, bookID uint, plan ImagePlan) error {
	for _, u := range plan.Update {
		if err := s.images.UpdateSource(ctx, u.ID, u.Source); err != nil {
			return err
		}
	}
	if len(plan.Add) > 0 {
		if err := s.images.Create(ctx, bookID, plan.Add); err != nil {
			return err
		}
	}
	if len(plan.Remove) > 0 {
		if err := s.images.DeleteByIDs(ctx, plan.Remove); err != nil {
			return err
		}
	}
	return nil
}

// ensureNameAvailable 书名被selfID以外的图书占用时返回冲突
func (s *service) ensureNameAvailable(ctx context.Context, name string, selfID uint) error {
	existing, err := s.repo.FindByName(ctx, name)
	if errors.Is(err, ErrBookNotFound) {
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
