package events

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	// StateClosed 正常发布，统计连续失败次数
	StateClosed State = iota
	// StateOpen 熔断中，直接拒绝发布，等待cooldown后进入半开
	StateOpen
	// StateHalfOpen 放行一次探测，成功则关闭，失败则重新打开
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// ErrBreakerOpen 熔断器打开时拒绝发布
var ErrBreakerOpen = errors.New("event breaker is open")

// breaker 事件发布熔断器
// Broker不可用时每次发布都要等到超时，连续失败threshold次后熔断，
// 在cooldown内直接丢弃事件，避免拖慢删除等写接口
type breaker struct {
	threshold int
	cooldown  time.Duration
	now       func() time.Time

	mu       sync.Mutex
	state    State
	failures int
	openedAt time.Time
	probing  bool
	onChange func(from, to State)
}

func newBreaker(threshold int, cooldown time.Duration, onChange func(from, to State)) *breaker {
	if threshold <= 0 {
		threshold = 1
	}
	if onChange == nil {
		onChange = func(State, State) {}
	}
	return &breaker{
		threshold: threshold,
		cooldown:  cooldown,
		now:       time.Now,
		onChange:  onChange,
	}
}

// Execute 在熔断器保护下执行fn
func (b *breaker) Execute(fn func() error) error {
	if err := b.before(); err != nil {
		return err
	}
	err := fn()
	b.after(err == nil)
	return err
}

func (b *breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen && b.now().Sub(b.openedAt) >= b.cooldown {
		b.setState(StateHalfOpen)
	}

	switch b.state {
	case StateOpen:
		return ErrBreakerOpen
	case StateHalfOpen:
		// 半开状态同一时间只放行一个探测请求
		if b.probing {
			return ErrBreakerOpen
		}
		b.probing = true
	}
	return nil
}

func (b *breaker) after(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.probing = false
		if success {
			b.setState(StateClosed)
		} else {
			b.trip()
		}
		return
	}

	if success {
		b.failures = 0
		return
	}
	b.failures++
	if b.failures >= b.threshold {
		b.trip()
	}
}

func (b *breaker) trip() {
	b.openedAt = b.now()
	b.setState(StateOpen)
}

func (b *breaker) setState(to State) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	b.failures = 0
	b.onChange(from, to)
}

// State 当前状态
func (b *breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}
