// Package lazy откладывает установку соединения до первого обращения.
package lazy

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const DefaultTimeout = 10 * time.Second

// ConnectFunc устанавливает соединение
type ConnectFunc[T any] func(ctx context.Context) (T, error)

// Lazy хранит соединение, установленное при первом Get.
// Конкурентные вызовы ждут одну и ту же попытку. Успех кэшируется
// на все время жизни процесса, ошибка не кэшируется.
type Lazy[T any] struct {
	connect ConnectFunc[T]
	timeout time.Duration
	group   singleflight.Group

	mu    sync.RWMutex
	value T
	ready bool
}

func New[T any](connect ConnectFunc[T], timeout time.Duration) *Lazy[T] {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Lazy[T]{
		connect: connect,
		timeout: timeout,
	}
}

// Get возвращает соединение, устанавливая его при необходимости.
// Отмена ctx прерывает только ожидание: начатая попытка доводится до конца.
func (l *Lazy[T]) Get(ctx context.Context) (T, error) {
	if v, ok := l.Peek(); ok {
		return v, nil
	}

	ch := l.group.DoChan("connect", func() (interface{}, error) {
		if v, ok := l.Peek(); ok {
			return v, nil
		}

		cctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.timeout)
		defer cancel()

		v, err := l.connect(cctx)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.value, l.ready = v, true
		l.mu.Unlock()
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Peek возвращает соединение, только если оно уже установлено
func (l *Lazy[T]) Peek() (T, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.value, l.ready
}
