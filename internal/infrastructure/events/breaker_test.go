package events

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errPublish = errors.New("publish failed")

func fail() error { return errPublish }
func ok() error   { return nil }

func TestBreaker(t *testing.T) {
	now := time.Unix(1700000000, 0)
	var transitions []State

	b := newBreaker(3, 10*time.Second, func(_, to State) {
		transitions = append(transitions, to)
	})
	b.now = func() time.Time { return now }

	t.Run("连续失败达到阈值后熔断", func(t *testing.T) {
		assert.ErrorIs(t, b.Execute(fail), errPublish)
		assert.ErrorIs(t, b.Execute(fail), errPublish)
		assert.Equal(t, StateClosed, b.State())

		assert.ErrorIs(t, b.Execute(fail), errPublish)
		assert.Equal(t, StateOpen, b.State())
	})

	t.Run("熔断期间直接拒绝", func(t *testing.T) {
		called := false
		err := b.Execute(func() error { called = true; return nil })
		assert.ErrorIs(t, err, ErrBreakerOpen)
		assert.False(t, called)
	})

	t.Run("冷却后探测失败重新打开", func(t *testing.T) {
		now = now.Add(11 * time.Second)
		assert.ErrorIs(t, b.Execute(fail), errPublish)
		assert.Equal(t, StateOpen, b.State())
	})

	t.Run("冷却后探测成功关闭", func(t *testing.T) {
		now = now.Add(11 * time.Second)
		assert.NoError(t, b.Execute(ok))
		assert.Equal(t, StateClosed, b.State())
	})

	assert.Equal(t, []State{StateOpen, StateHalfOpen, StateOpen, StateHalfOpen, StateClosed}, transitions)
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b := newBreaker(2, time.Minute, nil)

	_ = b.Execute(fail)
	_ = b.Execute(ok)
	_ = b.Execute(fail)

	assert.Equal(t, StateClosed, b.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "HALF_OPEN", StateHalfOpen.String())
	assert.Equal(t, "UNKNOWN", State(9).String())
}
