package idgen_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onekill0503/dnd-bot/internal/pkg/idgen"
)

func TestUUIDGenerator(t *testing.T) {
	gen := idgen.NewUUID(idgen.PrefixItem)

	a, b := gen.Generate(), gen.Generate()
	assert.True(t, strings.HasPrefix(a, "item_"))
	assert.NotEqual(t, a, b)
	assert.Len(t, idgen.NewUUID("").Generate(), 36)
}

func TestSequentialGenerator(t *testing.T) {
	gen := idgen.NewSequential("item")

	assert.Equal(t, "item_1", gen.Generate())
	assert.Equal(t, "item_2", gen.Generate())
	assert.Equal(t, "1", idgen.NewSequential("").Generate())
}

func TestSequentialGenerator_Concurrent(t *testing.T) {
	gen := idgen.NewSequential(idgen.PrefixItem)

	var (
		mu   sync.Mutex
		seen = map[string]bool{}
		wg   sync.WaitGroup
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := gen.Generate()
			mu.Lock()
			seen[id] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 20)
	assert.True(t, seen["item_20"])
}
