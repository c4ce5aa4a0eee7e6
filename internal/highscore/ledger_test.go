package highscore

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRaiseIfGreater(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(NewMemoryRepo(0))

	raised, err := l.RaiseIfGreater(ctx, 5)
	require.NoError(t, err)
	assert.True(t, raised)

	raised, err = l.RaiseIfGreater(ctx, 5)
	require.NoError(t, err)
	assert.False(t, raised, "equal score must not count as a new high score")

	raised, err = l.RaiseIfGreater(ctx, 3)
	require.NoError(t, err)
	assert.False(t, raised)

	got, err := l.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, got)
}

func TestMonotonicOverSequence(t *testing.T) {
	tests := []struct {
		name    string
		initial int
		scores  []int
		want    int
	}{
		{"empty sequence keeps initial", 4, nil, 4},
		{"max of scores", 0, []int{3, 7, 2, 7, 5}, 7},
		{"initial dominates", 12, []int{3, 7, 10}, 12},
		{"zeros", 0, []int{0, 0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			l := NewLedger(NewMemoryRepo(tt.initial))

			prev := tt.initial
			for _, s := range tt.scores {
				_, err := l.RaiseIfGreater(ctx, s)
				require.NoError(t, err)
				cur, err := l.Get(ctx)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, cur, prev)
				prev = cur
			}

			got, err := l.Get(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(NewMemoryRepo(9))

	require.NoError(t, l.Reset(ctx))
	got, err := l.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	raised, err := l.RaiseIfGreater(ctx, 1)
	require.NoError(t, err)
	assert.True(t, raised)
}

func TestConcurrentRaises(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(NewMemoryRepo(0))

	var wg sync.WaitGroup
	var mu sync.Mutex
	newHighs := 0
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			raised, err := l.RaiseIfGreater(ctx, score)
			assert.NoError(t, err)
			if raised {
				mu.Lock()
				newHighs++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	got, err := l.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, got)
	assert.GreaterOrEqual(t, newHighs, 1)
}
