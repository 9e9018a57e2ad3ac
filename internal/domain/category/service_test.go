package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
)

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, c *Category) error {
	args := m.Called(ctx, c)
	if args.Error(0) == nil {
		c.ID = 1
	}
	return args.Error(0)
}

func (m *mockRepository) FindByID(ctx context.Context, id uint) (*Category, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*Category)
	return c, args.Error(1)
}

func (m *mockRepository) FindByName(ctx context.Context, name string) (*Category, error) {
	args := m.Called(ctx, name)
	c, _ := args.Get(0).(*Category)
	return c, args.Error(1)
}

func (m *mockRepository) List(ctx context.Context, pred listing.Predicate) ([]*Category, int64, error) {
	args := m.Called(ctx, pred)
	list, _ := args.Get(0).([]*Category)
	return list, args.Get(1).(int64), args.Error(2)
}

func (m *mockRepository) Update(ctx context.Context, id uint, changes patch.Set) error {
	return m.Called(ctx, id, changes).Error(0)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockRepository) DeleteByIDs(ctx context.Context, ids []uint) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func strPtr(s string) *string { return &s }

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("正常创建", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByName", ctx, "科幻").Return(nil, ErrCategoryNotFound)
		repo.On("Create", ctx, mock.AnythingOfType("*category.Category")).Return(nil)

		c, err := NewService(repo).Create(ctx, "科幻")
		require.NoError(t, err)
		assert.Equal(t, uint(1), c.ID)
		assert.Equal(t, "科幻", c.Name)
		repo.AssertExpectations(t)
	})

	t.Run("名称已存在", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByName", ctx, "科幻").Return(&Category{ID: 7, Name: "科幻"}, nil)

		_, err := NewService(repo).Create(ctx, "科幻")
		assert.ErrorIs(t, err, ErrNameDuplicate)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("名称为空", func(t *testing.T) {
		repo := new(mockRepository)

		_, err := NewService(repo).Create(ctx, "  ")
		assert.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestService_Edit(t *testing.T) {
	ctx := context.Background()
	current := &Category{ID: 1, Name: "科幻"}

	t.Run("改成其他分类已有的名称", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(1)).Return(current, nil)
		repo.On("FindByName", ctx, "历史").Return(&Category{ID: 2, Name: "历史"}, nil)

		_, err := NewService(repo).Edit(ctx, 1, Patch{Name: strPtr("历史")})
		assert.ErrorIs(t, err, ErrNameDuplicate)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("改成自己当前的名称不写库", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(1)).Return(current, nil)

		got, err := NewService(repo).Edit(ctx, 1, Patch{Name: strPtr("科幻")})
		require.NoError(t, err)
		assert.Same(t, current, got)
		repo.AssertNotCalled(t, "FindByName", mock.Anything, mock.Anything)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("正常改名", func(t *testing.T) {
		renamed := &Category{ID: 1, Name: "推理"}
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(1)).Return(current, nil).Once()
		repo.On("FindByName", ctx, "推理").Return(nil, ErrCategoryNotFound)
		repo.On("Update", ctx, uint(1), patch.Set{FieldName: "推理"}).Return(nil)
		repo.On("FindByID", ctx, uint(1)).Return(renamed, nil).Once()

		got, err := NewService(repo).Edit(ctx, 1, Patch{Name: strPtr("推理")})
		require.NoError(t, err)
		assert.Equal(t, "推理", got.Name)
		repo.AssertExpectations(t)
	})

	t.Run("分类不存在", func(t *testing.T) {
		repo := new(mockRepository)
		repo.On("FindByID", ctx, uint(9)).Return(nil, ErrCategoryNotFound)

		_, err := NewService(repo).Edit(ctx, 9, Patch{Name: strPtr("x")})
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestService_List(t *testing.T) {
	ctx := context.Background()
	repo := new(mockRepository)

	f := listing.Normalize(listing.RawQuery{Search: "3"})
	repo.On("List", ctx, listing.Build(f, ListSpec)).Return([]*Category{{ID: 3, Name: "童书"}}, int64(1), nil)

	list, total, err := NewService(repo).List(ctx, f)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, int64(1), total)
	repo.AssertExpectations(t)
}
