// Package event 目录变更事件
package event

import (
	"context"
	"time"
)

// Action 变更动作
type Action string

const (
	ActionCreated Action = "created"
	ActionDeleted Action = "deleted"
	// ActionWiped 整表清空，IDs为空
	ActionWiped Action = "wiped"
)

// Event 一次目录变更
type Event struct {
	Resource   string    `json:"resource"` // book | category | publisher | user
	Action     Action    `json:"action"`
	IDs        []uint    `json:"ids,omitempty"`
	Affected   int64     `json:"affected,omitempty"` // 实际影响的行数
	OccurredAt time.Time `json:"occurred_at"`
}

// New 创建事件
func New(resource string, action Action, ids ...uint) Event {
	return Event{
		Resource:   resource,
		Action:     action,
		IDs:        ids,
		OccurredAt: time.Now(),
	}
}

// RoutingKey 消息路由键，如category.deleted
func (e Event) RoutingKey() string {
	return e.Resource + "." + string(e.Action)
}

// Publisher 事件发布接口
// 事件在事务提交之后发布，发布失败不影响已经完成的业务操作
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Nop 丢弃所有事件（未启用消息队列时使用）
type Nop struct{}

func (Nop) Publish(context.Context, Event) {}
