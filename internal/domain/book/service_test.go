package book

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
)

// fakeStore 内存实现的图书与图片仓储,记录写操作次数
type fakeStore struct {
	books  map[uint]*Book
	nextID uint
	writes int
}

func newFakeStore(books ...*Book) *fakeStore {
	s := &fakeStore{books: map[uint]*Book{}, nextID: 100}
	for _, b := range books {
		s.books[b.ID] = b
	}
	return s
}

func (s *fakeStore) Create(_ context.Context, b *Book) error {
	s.writes++
	s.nextID++
	b.ID = s.nextID
	s.books[b.ID] = b
	return nil
}

func (s *fakeStore) FindByID(_ context.Context, id uint) (*Book, error) {
	b, ok := s.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	cp := *b
	cp.Images = append([]Image(nil), b.Images...)
	return &cp, nil
}

func (s *fakeStore) FindByName(_ context.Context, name string) (*Book, error) {
	for _, b := range s.books {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, ErrBookNotFound
}

func (s *fakeStore) List(context.Context, listing.Predicate) ([]*Book, int64, error) {
	return nil, 0, nil
}

func (s *fakeStore) Update(_ context.Context, id uint, changes patch.Set) error {
	s.writes++
	b := s.books[id]
	if v, ok := changes[FieldName]; ok {
		b.Name = v.(string)
	}
	if v, ok := changes[FieldPrice]; ok {
		b.Price = v.(float64)
	}
	return nil
}

func (s *fakeStore) Delete(context.Context, uint) error                 { return nil }
func (s *fakeStore) DeleteByIDs(context.Context, []uint) (int64, error) { return 0, nil }
func (s *fakeStore) DeleteAll(context.Context) (int64, error)           { return 0, nil }

func (s *fakeStore) ClearReference(context.Context, Reference, []uint) (int64, error) {
	return 0, nil
}

// 图片仓储方法按名称区分,避免与图书仓储的Create/DeleteByIDs/DeleteAll冲突
type fakeImages struct {
	store *fakeStore
}

func (f fakeImages) ListByBook(_ context.Context, bookID uint) ([]Image, error) {
	return f.store.books[bookID].Images, nil
}

func (f fakeImages) Create(_ context.Context, bookID uint, sources []string) error {
	f.store.writes++
	b := f.store.books[bookID]
	for _, src := range sources {
		f.store.nextID++
		b.Images = append(b.Images, Image{ID: f.store.nextID, Source: src, BookID: bookID})
	}
	return nil
}

func (f fakeImages) UpdateSource(_ context.Context, id uint, source string) error {
	f.store.writes++
	for _, b := range f.store.books {
		for i := range b.Images {
			if b.Images[i].ID == id {
				b.Images[i].Source = source
			}
		}
	}
	return nil
}

func (f fakeImages) DeleteByIDs(_ context.Context, ids []uint) error {
	f.store.writes++
	drop := map[uint]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	for _, b := range f.store.books {
		kept := b.Images[:0]
		for _, img := range b.Images {
			if !drop[img.ID] {
				kept = append(kept, img)
			}
		}
		b.Images = kept
	}
	return nil
}

func (f fakeImages) DeleteByBooks(context.Context, []uint) (int64, error) { return 0, nil }
func (f fakeImages) DeleteAll(context.Context) (int64, error)             { return 0, nil }

func newTestService(books ...*Book) (Service, *fakeStore) {
	store := newFakeStore(books...)
	return NewService(store, fakeImages{store: store}), store
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("创建图书并保存图片", func(t *testing.T) {
		svc, _ := newTestService()
		b, err := NewBook("Go并发编程", "desc", 59, 0, 10, nil, nil)
		require.NoError(t, err)

		got, err := svc.Create(ctx, b, []string{"a.png", "b.png", "a.png"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.png", "b.png"}, got.Sources())
	})

	t.Run("书名已存在", func(t *testing.T) {
		svc, _ := newTestService(storedBook())
		b, err := NewBook("Go语言圣经", "desc", 59, 0, 10, nil, nil)
		require.NoError(t, err)

		_, err = svc.Create(ctx, b, nil)
		assert.ErrorIs(t, err, ErrNameDuplicate)
	})
}

func TestService_Edit(t *testing.T) {
	ctx := context.Background()

	t.Run("请求与当前值一致时不写库", func(t *testing.T) {
		svc, store := newTestService(storedBook())

		got, err := svc.Edit(ctx, 1, Patch{
			Name:   ptr("Go语言圣经"),
			Price:  ptr(89.5),
			Images: &[]string{"a.png"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Go语言圣经", got.Name)
		assert.Zero(t, store.writes)
	})

	t.Run("改名为其他图书的书名", func(t *testing.T) {
		other := &Book{ID: 2, Name: "Effective Go"}
		svc, store := newTestService(storedBook(), other)

		_, err := svc.Edit(ctx, 1, Patch{Name: ptr("Effective Go")})
		assert.ErrorIs(t, err, ErrNameDuplicate)
		assert.Zero(t, store.writes)
	})

	t.Run("更新价格并替换图片", func(t *testing.T) {
		svc, store := newTestService(storedBook())

		got, err := svc.Edit(ctx, 1, Patch{
			Price:  ptr(100.0),
			Images: &[]string{"b.png", "c.png"},
		})
		require.NoError(t, err)
		assert.Equal(t, 100.0, got.Price)
		assert.ElementsMatch(t, []string{"b.png", "c.png"}, got.Sources())
		// 图书行1次 + 覆盖1次 + 新增1次
		assert.Equal(t, 3, store.writes)
		// 被淘汰的行原地改写,id保持不变
		assert.Equal(t, uint(11), got.Images[0].ID)
	})

	t.Run("图书不存在", func(t *testing.T) {
		svc, _ := newTestService()

		_, err := svc.Edit(ctx, 9, Patch{Price: ptr(1.0)})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}
