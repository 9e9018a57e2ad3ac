package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReconcileImages(t *testing.T) {
	existing := []Image{
		{ID: 1, Source: "a.png"},
		{ID: 2, Source: "b.png"},
		{ID: 3, Source: "c.png"},
	}

	tests := []struct {
		name     string
		existing []Image
		incoming []string
		want     ImagePlan
	}{
		{
			name:     "列表相同",
			existing: existing,
			incoming: []string{"a.png", "b.png", "c.png"},
			want:     ImagePlan{},
		},
		{
			name:     "顺序不同也不需要调整",
			existing: existing,
			incoming: []string{"c.png", "a.png", "b.png"},
			want:     ImagePlan{},
		},
		{
			name:     "替换一张",
			existing: existing,
			incoming: []string{"a.png", "x.png", "c.png"},
			want:     ImagePlan{Update: []ImageUpdate{{ID: 2, Source: "x.png"}}},
		},
		{
			name:     "新增",
			existing: existing,
			incoming: []string{"a.png", "b.png", "c.png", "d.png"},
			want:     ImagePlan{Add: []string{"d.png"}},
		},
		{
			name:     "删除",
			existing: existing,
			incoming: []string{"b.png"},
			want:     ImagePlan{Remove: []uint{1, 3}},
		},
		{
			name:     "替换加删除",
			existing: existing,
			incoming: []string{"y.png"},
			want: ImagePlan{
				Update: []ImageUpdate{{ID: 1, Source: "y.png"}},
				Remove: []uint{2, 3},
			},
		},
		{
			name:     "替换加新增",
			existing: existing[:1],
			incoming: []string{"x.png", "y.png"},
			want: ImagePlan{
				Update: []ImageUpdate{{ID: 1, Source: "x.png"}},
				Add:    []string{"y.png"},
			},
		},
		{
			name:     "空列表删除全部",
			existing: existing,
			incoming: []string{},
			want:     ImagePlan{Remove: []uint{1, 2, 3}},
		},
		{
			name:     "传入重复地址",
			existing: nil,
			incoming: []string{"a.png", "a.png", "b.png"},
			want:     ImagePlan{Add: []string{"a.png", "b.png"}},
		},
		{
			name:     "已有重复行",
			existing: []Image{{ID: 1, Source: "a.png"}, {ID: 2, Source: "a.png"}},
			incoming: []string{"a.png"},
			want:     ImagePlan{Remove: []uint{2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReconcileImages(tt.existing, tt.incoming)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.Empty(), got.Empty())
		})
	}
}
