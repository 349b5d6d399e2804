package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "/quotes", Key("/quotes", ""))
	assert.Equal(t, "/quotes?category=Life", Key("/quotes", "category=Life"))
}

func TestCacheSetGetInvalidate(t *testing.T) {
	c := New(time.Minute)
	_, ok := c.Get("/quotes")
	assert.False(t, ok)

	c.Set("/quotes", Entry{Status: 200, Body: []byte("[]")})
	c.Set("/quotes?category=Life", Entry{Status: 200, Body: []byte("[1]")})

	got, ok := c.Get("/quotes")
	require.True(t, ok)
	assert.Equal(t, []byte("[]"), got.Body)
	assert.Equal(t, 2, c.ItemCount())

	c.Invalidate()
	assert.Zero(t, c.ItemCount())
	_, ok = c.Get("/quotes")
	assert.False(t, ok)
}

func TestCacheExpires(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Set("k", Entry{Status: 200})
	assert.Eventually(t, func() bool {
		_, ok := c.Get("k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}
