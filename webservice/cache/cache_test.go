package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCacheSetGet(t *testing.T) {
	c := New(10)

	_, found := c.Get("records:group=601-31")
	assert.False(t, found)

	c.Set("records:group=601-31", []string{"Физика"})
	value, found := c.Get("records:group=601-31")
	require.True(t, found)
	assert.Equal(t, []string{"Физика"}, value)

	stats := c.Stats()
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
	assert.Equal(t, 0.5, stats.HitRate)
}

func TestQueryCachePromotion(t *testing.T) {
	c := New(10)
	c.Set("k", "v")

	stats := c.Stats()
	assert.Equal(t, 1, stats.Level3Size)

	// Третье обращение поднимает на второй уровень
	for i := 0; i < 2; i++ {
		_, found := c.Get("k")
		require.True(t, found)
	}
	stats = c.Stats()
	assert.Equal(t, 0, stats.Level3Size)
	assert.Equal(t, 1, stats.Level2Size)

	// Пятое обращение поднимает на первый
	for i := 0; i < 2; i++ {
		_, found := c.Get("k")
		require.True(t, found)
	}
	stats = c.Stats()
	assert.Equal(t, 0, stats.Level2Size)
	assert.Equal(t, 1, stats.Level1Size)
}

func TestQueryCacheUpdateKeepsLevel(t *testing.T) {
	c := New(10)
	c.Set("k", "старое")
	for i := 0; i < 2; i++ {
		c.Get("k")
	}
	require.Equal(t, 1, c.Stats().Level2Size)

	c.Set("k", "новое")
	assert.Equal(t, 1, c.Stats().Level2Size)

	value, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, "новое", value)
}

func TestQueryCacheEviction(t *testing.T) {
	c := New(3)
	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("k%d", i), i)
	}
	require.Equal(t, 3, c.Stats().TotalSize)

	c.Set("k3", 3)
	stats := c.Stats()
	assert.Equal(t, 3, stats.TotalSize)
	assert.Equal(t, 1, stats.Evictions)

	_, found := c.Get("k3")
	assert.True(t, found)
}

func TestQueryCacheEvictsColdFirst(t *testing.T) {
	c := New(2)
	c.Set("горячий", 1)
	for i := 0; i < 2; i++ {
		c.Get("горячий")
	}
	c.Set("холодный", 2)

	c.Set("новый", 3)

	_, found := c.Get("горячий")
	assert.True(t, found)
	_, found = c.Get("холодный")
	assert.False(t, found)
}

func TestQueryCacheRemoveAndClear(t *testing.T) {
	c := New(10)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Remove("a")
	_, found := c.Get("a")
	assert.False(t, found)

	c.Clear()
	assert.Equal(t, 0, c.Stats().TotalSize)
	_, found = c.Get("b")
	assert.False(t, found)
}
