package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/histquiz/internal/trivia"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, 10, d.Amount)
	assert.Equal(t, trivia.DifficultyEasy, d.Difficulty)
	assert.Equal(t, trivia.TypeMultiple, d.Type)
	assert.NoError(t, d.Validate())
}

func TestClampAmount(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 10},
		{-3, 10},
		{1, 1},
		{7, 7},
		{20, 20},
		{21, 20},
		{500, 20},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampAmount(tt.in), "ClampAmount(%d)", tt.in)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       Settings
		wantErr bool
	}{
		{"defaults", Defaults(), false},
		{"unset difficulty", Settings{Amount: 5, Type: trivia.TypeBoolean}, false},
		{"amount too high", Settings{Amount: 21, Difficulty: trivia.DifficultyHard, Type: trivia.TypeMultiple}, true},
		{"bad difficulty", Settings{Amount: 5, Difficulty: "extreme", Type: trivia.TypeMultiple}, true},
		{"bad type", Settings{Amount: 5, Difficulty: trivia.DifficultyEasy, Type: "essay"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStoreSaveOverwritesWholesale(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	st, err := NewStore(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), st.Current())
	assert.False(t, st.Saved())

	next := Settings{Amount: 15, Difficulty: trivia.DifficultyHard, Type: trivia.TypeBoolean}
	require.NoError(t, st.Save(ctx, next))
	assert.Equal(t, next, st.Current())
	assert.True(t, st.Saved())

	stored, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, stored)
}

func TestMemoryRepoNotSaved(t *testing.T) {
	_, err := NewMemoryRepo().Read(context.Background())
	assert.ErrorIs(t, err, ErrNotSaved)
}

func TestStoreWithDefaults(t *testing.T) {
	ctx := context.Background()
	d := Settings{Amount: 5, Difficulty: trivia.DifficultyUnset, Type: trivia.TypeBoolean}

	st, err := NewStore(ctx, NewMemoryRepo(), WithDefaults(d))
	require.NoError(t, err)
	assert.Equal(t, d, st.Current())
	assert.Equal(t, d, st.Defaults())

	st, err = NewStore(ctx, NewMemoryRepo(), WithDefaults(Settings{Amount: 50}))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), st.Current(), "invalid defaults are ignored")
}

type brokenRepo struct{ MemoryRepo }

func (b *brokenRepo) Read(context.Context) (Settings, error) { return Settings{}, errors.New("corrupt") }

func TestNewStoreReadFailure(t *testing.T) {
	_, err := NewStore(context.Background(), &brokenRepo{})
	assert.Error(t, err)
}

func TestStoreRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	st, err := NewStore(ctx, NewMemoryRepo())
	require.NoError(t, err)

	err = st.Save(ctx, Settings{Amount: 0, Difficulty: trivia.DifficultyEasy, Type: trivia.TypeMultiple})
	require.Error(t, err)
	assert.Equal(t, Defaults(), st.Current())
}

type failingRepo struct{ MemoryRepo }

func (f *failingRepo) Write(context.Context, Settings) error { return errors.New("disk full") }

func TestStoreKeepsCurrentOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	st, err := NewStore(ctx, &failingRepo{})
	require.NoError(t, err)

	err = st.Save(ctx, Settings{Amount: 3, Difficulty: trivia.DifficultyMedium, Type: trivia.TypeMultiple})
	require.Error(t, err)
	assert.Equal(t, Defaults(), st.Current())
	assert.False(t, st.Saved())
}

func TestNewStoreFallsBackOnInvalidStored(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	require.NoError(t, repo.Write(ctx, Settings{Amount: 99, Difficulty: "x", Type: "y"}))

	st, err := NewStore(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), st.Current())
	assert.False(t, st.Saved())
}

func TestNewStoreSavedFromRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	require.NoError(t, repo.Write(ctx, Settings{Amount: 4, Type: trivia.TypeBoolean}))

	st, err := NewStore(ctx, repo)
	require.NoError(t, err)
	assert.True(t, st.Saved())
	assert.Equal(t, 4, st.Current().Amount)
}
