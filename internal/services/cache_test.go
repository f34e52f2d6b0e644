package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCacheKeepsItemsOnFailure(t *testing.T) {
	var c listCache[int]

	items, err := c.load(context.Background(), "numbers", func(context.Context) ([]int, error) {
		return []int{1, 2}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, items)

	boom := errors.New("boom")
	_, err = c.load(context.Background(), "numbers", func(context.Context) ([]int, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []int{1, 2}, c.snapshot())
	assert.False(t, c.isLoading())
}

func TestListCacheReportsLoading(t *testing.T) {
	var c listCache[string]
	release := make(chan struct{})
	started := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.load(context.Background(), "names", func(context.Context) ([]string, error) {
			close(started)
			<-release
			return nil, nil
		})
	}()

	<-started
	assert.True(t, c.isLoading())
	close(release)
	<-done
	assert.False(t, c.isLoading())
	assert.Equal(t, []string{}, c.snapshot())
}

func TestListCacheSnapshotIsACopy(t *testing.T) {
	var c listCache[int]
	_, err := c.load(context.Background(), "numbers", func(context.Context) ([]int, error) {
		return []int{1}, nil
	})
	require.NoError(t, err)

	snap := c.snapshot()
	snap[0] = 99
	assert.Equal(t, []int{1}, c.snapshot())
}
