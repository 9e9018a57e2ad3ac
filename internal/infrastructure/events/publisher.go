// Package events 把目录变更事件发布到RabbitMQ
package events

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// sender 消息发送接口，由mq.Publisher实现
type sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// Options 发布器参数
type Options struct {
	Timeout          time.Duration // 单次发布超时
	FailureThreshold int           // 连续失败多少次后熔断
	Cooldown         time.Duration // 熔断持续时间
}

// DefaultOptions 默认参数
var DefaultOptions = Options{
	Timeout:          2 * time.Second,
	FailureThreshold: 5,
	Cooldown:         30 * time.Second,
}

// Publisher event.Publisher的RabbitMQ实现
// 流程：
// 1. 熔断器打开时直接丢弃事件
// 2. 带超时发布，不受请求ctx取消的影响（请求已经成功返回）
// 3. 失败只记录日志和指标
type Publisher struct {
	sender  sender
	breaker *breaker
	timeout time.Duration
	logger  *zap.Logger
}

// NewPublisher 创建事件发布器
func NewPublisher(s sender, opts Options, logger *zap.Logger) *Publisher {
	metrics.InitMetrics()

	p := &Publisher{
		sender:  s,
		timeout: opts.Timeout,
		logger:  logger,
	}
	p.breaker = newBreaker(opts.FailureThreshold, opts.Cooldown, func(from, to State) {
		metrics.SetGauge(metrics.EventBreakerState, float64(to))
		logger.Warn("事件发布熔断器状态变化",
			zap.String("from", from.String()),
			zap.String("to", to.String()),
		)
	})
	return p
}

// Publish 发布事件，失败不返回错误
func (p *Publisher) Publish(ctx context.Context, e event.Event) {
	key := e.RoutingKey()

	err := p.breaker.Execute(func() error {
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
		defer cancel()
		return p.sender.Publish(pubCtx, key, e)
	})

	result := "success"
	switch {
	case errors.Is(err, ErrBreakerOpen):
		result = "rejected"
	case err != nil:
		result = "failure"
		p.logger.Warn("目录事件发布失败",
			zap.String("routing_key", key),
			zap.Uints("ids", e.IDs),
			zap.Error(err),
		)
	}
	metrics.IncCounterVec(metrics.EventsPublishedTotal, map[string]string{
		"routing_key": key,
		"result":      result,
	})
}
