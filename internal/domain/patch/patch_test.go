package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestPut(t *testing.T) {
	s := Set{}

	Put(s, "name", nil, "Go")
	Put(s, "price", ptr(9.9), 9.9)
	Put(s, "description", ptr("new"), "old")

	assert.Equal(t, Set{"description": "new"}, s)
	assert.True(t, s.Has("description"))
	assert.False(t, s.Has("name"))
}

func TestPutRef(t *testing.T) {
	t.Run("原来没有关联", func(t *testing.T) {
		s := Set{}
		PutRef(s, "categoryId", ptr(uint(3)), nil)
		assert.Equal(t, Set{"categoryId": uint(3)}, s)
	})

	t.Run("关联未变", func(t *testing.T) {
		s := Set{}
		PutRef(s, "categoryId", ptr(uint(3)), ptr(uint(3)))
		assert.True(t, s.Empty())
	})

	t.Run("未提供", func(t *testing.T) {
		s := Set{}
		PutRef[uint](s, "categoryId", nil, ptr(uint(3)))
		assert.True(t, s.Empty())
	})
}

func TestSet_Fields(t *testing.T) {
	s := Set{"price": 1.0, "name": "a", "description": "b"}
	assert.Equal(t, []string{"description", "name", "price"}, s.Fields())
	assert.Empty(t, Set{}.Fields())
}
