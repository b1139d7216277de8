package pool

// Pool is a typed wrapper over sync.Pool. Values that implement Resettable
// are reset on Put so the next Get starts clean.
//
//	bufs, _ := pool.NewLitePool(func() *[]byte {
//		b := make([]byte, 8192)
//		return &b
//	})
//	buf := bufs.Get()
//	defer bufs.Put(buf)

import (
	"errors"
	"sync"
)

var (
	ErrNilConstructor = errors.New("litepool: constructor must not be nil")
	ErrNilValue       = errors.New("litepool: constructor returned nil")
)

type Resettable interface {
	Reset()
}

type Pool[T any] struct {
	pool sync.Pool
}

// NewLitePool calls newFn once up front so a constructor that yields nil
// fails here rather than on the request path.
func NewLitePool[T any](newFn func() T) (*Pool[T], error) {
	if newFn == nil {
		return nil, ErrNilConstructor
	}
	if any(newFn()) == nil {
		return nil, ErrNilValue
	}

	p := &Pool[T]{}
	p.pool.New = func() any {
		return newFn()
	}
	return p, nil
}

func (p *Pool[T]) Get() T {
	//nolint:forcetypeassert // New is the only producer and is typed
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(v T) {
	if r, ok := any(v).(Resettable); ok {
		r.Reset()
	}
	p.pool.Put(v)
}
