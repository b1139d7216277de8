package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLitePool_Validation(t *testing.T) {
	_, err := NewLitePool[*bytes.Buffer](nil)
	assert.ErrorIs(t, err, ErrNilConstructor)

	_, err = NewLitePool(func() *bytes.Buffer { return nil })
	assert.ErrorIs(t, err, ErrNilValue)
}

func TestPool_ResetsOnPut(t *testing.T) {
	p, err := NewLitePool(func() *bytes.Buffer { return new(bytes.Buffer) })
	require.NoError(t, err)

	buf := p.Get()
	buf.WriteString("leftover")
	p.Put(buf)

	// sync.Pool may or may not hand back the same value; either way it is empty
	assert.Zero(t, p.Get().Len())
}

func TestPool_ByteSlices(t *testing.T) {
	p, err := NewLitePool(func() *[]byte {
		b := make([]byte, 64)
		return &b
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b := p.Get()
			assert.Len(t, *b, 64)
			p.Put(b)
		}()
	}
	wg.Wait()
}
