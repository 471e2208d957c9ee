package procstate

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathStore_AbsentBeforeRegister(t *testing.T) {
	var s PathStore
	path, ok := s.Read()
	assert.False(t, ok)
	assert.Empty(t, path)
}

func TestPathStore_RegisterThenRead(t *testing.T) {
	var s PathStore
	s.Register(`C:\mascot\plugin.dll`)

	path, ok := s.Read()
	require.True(t, ok)
	assert.Equal(t, `C:\mascot\plugin.dll`, path)
}

func TestPathStore_RegisterReplaces(t *testing.T) {
	var s PathStore
	s.Register("first")
	s.Register("second")

	path, ok := s.Read()
	require.True(t, ok)
	assert.Equal(t, "second", path)
}

func TestPathStore_EmptyPathIsPresent(t *testing.T) {
	var s PathStore
	s.Register("")

	path, ok := s.Read()
	assert.True(t, ok)
	assert.Empty(t, path)
}

// Concurrent readers must only ever observe values some writer registered,
// never a torn mix of two of them.
func TestPathStore_ConcurrentRegisterRead(t *testing.T) {
	var s PathStore

	valid := make(map[string]bool)
	for i := 0; i < 8; i++ {
		valid[fmt.Sprintf("path-%d", i)] = true
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s.Register(fmt.Sprintf("path-%d", i))
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if path, ok := s.Read(); ok {
					assert.True(t, valid[path], "read value %q was never registered", path)
				}
			}
		}()
	}
	wg.Wait()
}

func TestResultStore(t *testing.T) {
	var s ResultStore

	_, ok := s.Read()
	assert.False(t, ok)

	s.Record(false)
	v, ok := s.Read()
	require.True(t, ok)
	assert.False(t, v)

	s.Record(true)
	v, ok = s.Read()
	require.True(t, ok)
	assert.True(t, v)
}

func TestSharedStoresAreStable(t *testing.T) {
	assert.Same(t, SharedPath(), SharedPath())
	assert.Same(t, SharedLoadUResult(), SharedLoadUResult())
}
