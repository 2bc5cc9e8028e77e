package session

import (
	"context"
	"testing"

	"github.com/angelmondragon/mahalaxmi-storefront/pkg/redis/redistest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlashesArePoppedOnce(t *testing.T) {
	ctx := context.Background()
	kv, _ := redistest.New(t)
	flashes, err := NewFlashes(kv)
	require.NoError(t, err)

	require.NoError(t, flashes.Add(ctx, "s1", FlashSuccess, "Added to cart"))
	require.NoError(t, flashes.Add(ctx, "s1", FlashError, "Only 2 left"))

	got, err := flashes.Pop(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []Flash{
		{Kind: FlashSuccess, Message: "Added to cart"},
		{Kind: FlashError, Message: "Only 2 left"},
	}, got)

	again, err := flashes.Pop(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, again)
}
