package idgen_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharaka19/CCIMS-sub000/internal/infrastructure/idgen"
)

func TestSnowflake_IDsUnicosYCrecientes(t *testing.T) {
	gen, err := idgen.NewSnowflake(1)
	require.NoError(t, err)

	prev := gen.NextID()
	for i := 0; i < 1000; i++ {
		id := gen.NextID()
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestSnowflake_Concurrente(t *testing.T) {
	gen, err := idgen.NewSnowflake(2)
	require.NoError(t, err)

	var mu sync.Mutex
	seen := make(map[int64]struct{})
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				id := gen.NextID()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 4000)
}

func TestSnowflake_NodoInvalido(t *testing.T) {
	_, err := idgen.NewSnowflake(5000)
	assert.Error(t, err)
}
