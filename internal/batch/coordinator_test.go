package batch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyToManyPartialFailure(t *testing.T) {
	c := New(nil)
	failing := errors.New("remote unavailable")

	result := c.ApplyToMany(context.Background(), []string{"id1", "id2", "id3"}, func(ctx context.Context, id string) error {
		if id == "id2" {
			return failing
		}
		return nil
	})

	assert.Equal(t, []string{"id1", "id3"}, result.Succeeded)
	require.Len(t, result.Failed, 1)
	assert.Equal(t, failing, result.Failed["id2"])
	assert.False(t, result.AllSucceeded())
	assert.Equal(t, map[string]string{"id2": "remote unavailable"}, result.FailedMessages())
}

func TestApplyToManyAllSucceed(t *testing.T) {
	c := New(nil)

	var mu sync.Mutex
	seen := make(map[string]int)

	result := c.ApplyToMany(context.Background(), []string{"a", "b", "c"}, func(ctx context.Context, id string) error {
		mu.Lock()
		seen[id]++
		mu.Unlock()
		return nil
	})

	assert.Equal(t, []string{"a", "b", "c"}, result.Succeeded)
	assert.True(t, result.AllSucceeded())
	assert.Equal(t, map[string]int{"a": 1, "b": 1, "c": 1}, seen)
}

func TestApplyToManyEmptyInput(t *testing.T) {
	c := New(nil)
	result := c.ApplyToMany(context.Background(), nil, func(ctx context.Context, id string) error {
		t.Fatal("operation must not run for empty input")
		return nil
	})
	assert.Empty(t, result.Succeeded)
	assert.True(t, result.AllSucceeded())
}

func TestApplyToManyPreservesInputOrder(t *testing.T) {
	c := New(nil)
	ids := []string{"z", "m", "a", "q"}
	result := c.ApplyToMany(context.Background(), ids, func(ctx context.Context, id string) error {
		return nil
	})
	assert.Equal(t, ids, result.Succeeded)
}
