package catalog

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/domain/category"
	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/publisher"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/config"
	"github.com/xiebiao/bookcatalog/internal/infrastructure/persistence/database"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, e event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) keys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.RoutingKey())
	}
	return keys
}

type fixture struct {
	books      *BookUseCase
	categories *CategoryUseCase
	publishers *PublisherUseCase
	bookRepo   book.Repository
	imageRepo  book.ImageRepository
	events     *recordingPublisher
	db         *gorm.DB
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := database.NewDB(&config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			SQLitePath:  ":memory:",
			AutoMigrate: true,
		},
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	tx := database.NewTxManager(db)
	bookRepo := database.NewBookRepository(db)
	imageRepo := database.NewImageRepository(db)
	categoryRepo := database.NewCategoryRepository(db)
	publisherRepo := database.NewPublisherRepository(db)
	cascade := NewCascade(tx, bookRepo, imageRepo)
	events := &recordingPublisher{}
	books := NewBookUseCase(book.NewService(bookRepo, imageRepo), categoryRepo, publisherRepo, cascade, tx, events)

	return &fixture{
		books:      books,
		categories: NewCategoryUseCase(category.NewService(categoryRepo), categoryRepo, cascade, events),
		publishers: NewPublisherUseCase(publisher.NewService(publisherRepo), publisherRepo, cascade, events),
		bookRepo:   bookRepo,
		imageRepo:  imageRepo,
		events:     events,
		db:         db,
	}
}

// count 直接统计表中剩余的行数
func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func (f *fixture) seed(t *testing.T) (c *category.Category, p *publisher.Publisher, b1, b2 *book.Book) {
	t.Helper()
	ctx := context.Background()

	c, err := f.categories.Create(ctx, "小说")
	require.NoError(t, err)
	p, err = f.publishers.Create(ctx, "作家出版社", "文学类出版社")
	require.NoError(t, err)

	b1, err = f.books.Create(ctx, CreateBookInput{
		Name: "活着", Price: 20, QuantityInStock: 5,
		CategoryID: &c.ID, PublisherID: &p.ID,
		Images: []string{"a.png", "b.png"},
	})
	require.NoError(t, err)
	b2, err = f.books.Create(ctx, CreateBookInput{
		Name: "兄弟", Price: 30,
		CategoryID: &c.ID,
		Images:     []string{"c.png"},
	})
	require.NoError(t, err)
	return c, p, b1, b2
}

func TestBookUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("图书和图片一起创建", func(t *testing.T) {
		f := newFixture(t)
		c, p, b1, _ := f.seed(t)

		require.NotNil(t, b1.Category)
		assert.Equal(t, c.Name, b1.Category.Name)
		require.NotNil(t, b1.Publisher)
		assert.Equal(t, p.Name, b1.Publisher.Name)
		assert.Equal(t, []string{"a.png", "b.png"}, b1.Sources())
	})

	t.Run("重复图片只保存一份", func(t *testing.T) {
		f := newFixture(t)
		b, err := f.books.Create(ctx, CreateBookInput{Name: "围城", Images: []string{"x.png", "x.png", "y.png"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"x.png", "y.png"}, b.Sources())
	})

	t.Run("分类不存在时整体回滚", func(t *testing.T) {
		f := newFixture(t)
		missing := uint(99)

		_, err := f.books.Create(ctx, CreateBookInput{Name: "不存在", CategoryID: &missing, Images: []string{"z.png"}})
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)

		_, err = f.bookRepo.FindByName(ctx, "不存在")
		assert.ErrorIs(t, err, book.ErrBookNotFound)
		assert.Empty(t, f.events.keys())
	})

	t.Run("书名重复", func(t *testing.T) {
		f := newFixture(t)
		f.seed(t)

		_, err := f.books.Create(ctx, CreateBookInput{Name: "活着"})
		assert.ErrorIs(t, err, book.ErrNameDuplicate)
	})

	t.Run("负价格", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.books.Create(ctx, CreateBookInput{Name: "x", Price: -1})
		assert.ErrorIs(t, err, book.ErrInvalidPrice)
	})
}

func TestBookUseCase_Edit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _, b1, _ := f.seed(t)

	t.Run("调整图片列表", func(t *testing.T) {
		images := []string{"b.png", "d.png", "e.png"}
		got, err := f.books.Edit(ctx, b1.ID, book.Patch{Images: &images})
		require.NoError(t, err)
		// 被淘汰的a.png原地改写为d.png,顺序按行id
		assert.ElementsMatch(t, images, got.Sources())
		assert.Len(t, got.Images, 3)
	})

	t.Run("空列表删除全部图片", func(t *testing.T) {
		images := []string{}
		got, err := f.books.Edit(ctx, b1.ID, book.Patch{Images: &images})
		require.NoError(t, err)
		assert.Empty(t, got.Images)
	})

	t.Run("引用不存在的出版社", func(t *testing.T) {
		missing := uint(404)
		price := 99.0
		_, err := f.books.Edit(ctx, b1.ID, book.Patch{PublisherID: &missing, Price: &price})
		assert.ErrorIs(t, err, publisher.ErrPublisherNotFound)

		got, err := f.books.Get(ctx, b1.ID)
		require.NoError(t, err)
		assert.Equal(t, 20.0, got.Price)
	})
}

func TestCategoryUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("删除分类后图书保留且分类置空", func(t *testing.T) {
		f := newFixture(t)
		c, p, b1, b2 := f.seed(t)

		require.NoError(t, f.categories.Delete(ctx, c.ID))

		for _, id := range []uint{b1.ID, b2.ID} {
			got, err := f.books.Get(ctx, id)
			require.NoError(t, err)
			assert.Nil(t, got.CategoryID)
		}
		// 出版社引用不受影响
		got, err := f.books.Get(ctx, b1.ID)
		require.NoError(t, err)
		require.NotNil(t, got.PublisherID)
		assert.Equal(t, p.ID, *got.PublisherID)

		assert.Contains(t, f.events.keys(), "category.deleted")
	})

	t.Run("删除不存在的分类", func(t *testing.T) {
		f := newFixture(t)
		err := f.categories.Delete(ctx, 12345)
		assert.ErrorIs(t, err, category.ErrCategoryNotFound)
	})

	t.Run("批量删除忽略不存在的id", func(t *testing.T) {
		f := newFixture(t)
		c, _, b1, _ := f.seed(t)

		n, err := f.categories.DeleteMany(ctx, []uint{c.ID, 777})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		got, err := f.books.Get(ctx, b1.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Category)
	})

	t.Run("空id列表", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.categories.DeleteMany(ctx, nil)
		assert.ErrorIs(t, err, ErrEmptyIDList)
	})
}

func TestDeleteAll(t *testing.T) {
	ctx := context.Background()

	t.Run("清空分类同时清空图书和图片", func(t *testing.T) {
		f := newFixture(t)
		_, p, b1, b2 := f.seed(t)
		require.Equal(t, int64(3), f.count(t, &database.ImageModel{}))

		n, err := f.categories.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		books, err := f.books.List(ctx, listing.RawQuery{})
		require.NoError(t, err)
		assert.Empty(t, books.List)

		for _, b := range []*book.Book{b1, b2} {
			images, err := f.imageRepo.ListByBook(ctx, b.ID)
			require.NoError(t, err)
			assert.Empty(t, images)
		}
		assert.Zero(t, f.count(t, &database.BookModel{}))
		assert.Zero(t, f.count(t, &database.ImageModel{}))

		// 出版社表保留
		_, err = f.publishers.Get(ctx, p.ID)
		assert.NoError(t, err)

		assert.Contains(t, f.events.keys(), "category.wiped")
	})

	t.Run("清空出版社", func(t *testing.T) {
		f := newFixture(t)
		c, _, _, _ := f.seed(t)

		n, err := f.publishers.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
		assert.Zero(t, f.count(t, &database.BookModel{}))
		assert.Zero(t, f.count(t, &database.ImageModel{}))

		_, err = f.categories.Get(ctx, c.ID)
		assert.NoError(t, err)

		page, err := f.publishers.List(ctx, listing.RawQuery{})
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Paging.Total)
	})

	t.Run("清空图书", func(t *testing.T) {
		f := newFixture(t)
		c, _, _, _ := f.seed(t)

		n, err := f.books.DeleteAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)
		assert.Zero(t, f.count(t, &database.BookModel{}))
		assert.Zero(t, f.count(t, &database.ImageModel{}))

		_, err = f.categories.Get(ctx, c.ID)
		assert.NoError(t, err)
	})
}

func TestBookUseCase_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, _, b1, b2 := f.seed(t)

	require.NoError(t, f.books.Delete(ctx, b1.ID))

	images, err := f.imageRepo.ListByBook(ctx, b1.ID)
	require.NoError(t, err)
	assert.Empty(t, images)

	assert.ErrorIs(t, f.books.Delete(ctx, b1.ID), book.ErrBookNotFound)

	n, err := f.books.DeleteMany(ctx, []uint{b1.ID, b2.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestList_Paging(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for _, name := range []string{"A", "B", "C"} {
		_, err := f.categories.Create(ctx, name)
		require.NoError(t, err)
	}

	page, err := f.categories.List(ctx, listing.RawQuery{Page: "2", PageSize: "2", SortBy: "name", SortOrder: "asc"})
	require.NoError(t, err)

	require.Len(t, page.List, 1)
	assert.Equal(t, "C", page.List[0].Name)
	assert.Equal(t, int64(3), page.Paging.Total)
	assert.Equal(t, 2, page.Paging.TotalPage)
	assert.Nil(t, page.Paging.NextPage)
	require.NotNil(t, page.Paging.PrevPage)
	assert.Equal(t, 1, *page.Paging.PrevPage)

	t.Run("非法分页参数回退为默认值", func(t *testing.T) {
		page, err := f.categories.List(ctx, listing.RawQuery{Page: "-1", PageSize: "abc"})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Paging.Page)
		assert.Equal(t, 10, page.Paging.PageSize)
		assert.Len(t, page.List, 3)
	})
}
