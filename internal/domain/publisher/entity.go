package publisher

import (
	"strings"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
)

// Publisher 出版社
type Publisher struct {
	ID          uint
	Name        string // 唯一
	Information string // 出版社简介
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const (
	FieldName        = "name"
	FieldInformation = "information"
)

// ListSpec 与分类一致：名称子串搜索，数字搜索词按id匹配
var ListSpec = listing.Spec{
	SearchFields:   []string{FieldName},
	NumericIDField: "id",
}

// NewPublisher 创建出版社实体
func NewPublisher(name, information string) (*Publisher, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidName
	}
	if strings.TrimSpace(information) == "" {
		return nil, ErrInvalidInformation
	}
	now := time.Now()
	return &Publisher{
		Name:        name,
		Information: information,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Patch 出版社编辑请求
type Patch struct {
	Name        *string
	Information *string
}

func (p Patch) Validate() error {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return ErrInvalidName
	}
	if p.Information != nil && strings.TrimSpace(*p.Information) == "" {
		return ErrInvalidInformation
	}
	return nil
}

func (p Patch) Diff(pub *Publisher) patch.Set {
	s := patch.Set{}
	patch.Put(s, FieldName, p.Name, pub.Name)
	patch.Put(s, FieldInformation, p.Information, pub.Information)
	return s
}
