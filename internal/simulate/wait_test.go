package simulate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWait(t *testing.T) {
	start := time.Now()
	require.NoError(t, Wait(context.Background(), 20*time.Millisecond))
	require.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	require.NoError(t, Wait(context.Background(), 0))
}

func TestWait_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	start := time.Now()
	require.ErrorIs(t, Wait(ctx, time.Minute), context.Canceled)
	require.Less(t, time.Since(start), time.Second)

	require.ErrorIs(t, Wait(ctx, 0), context.Canceled)
}
