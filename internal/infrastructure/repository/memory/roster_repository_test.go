package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/roster-manager/internal/domain/roster"
)

func TestRosterRepository_AppendPreservesInsertionOrder(t *testing.T) {
	repo := NewRosterRepository(nil)

	require.NoError(t, repo.Append(t.Context(), roster.Player{Name: "Angel", Position: roster.PositionMidfielder, Club: "Aston Villa", Value: 20}))
	require.NoError(t, repo.Append(t.Context(), roster.Player{Name: "John", Position: roster.PositionForward, Club: "Liverpool", Value: 50}))

	players, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Angel", players[0].Name)
	assert.Equal(t, "John", players[1].Name)
}

func TestRosterRepository_RemoveShiftsLaterIndices(t *testing.T) {
	repo := NewRosterRepository([]roster.Player{
		{Name: "a", Position: roster.PositionGoalkeeper, Club: "x", Value: 1},
		{Name: "b", Position: roster.PositionDefender, Club: "y", Value: 2},
		{Name: "c", Position: roster.PositionForward, Club: "z", Value: 3},
	})

	removed, found, err := repo.Remove(t.Context(), 1)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "b", removed.Name)

	players, err := repo.List(t.Context())
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "a", players[0].Name)
	assert.Equal(t, "c", players[1].Name)
}

func TestRosterRepository_OutOfRange(t *testing.T) {
	repo := NewRosterRepository(SeedPlayers())

	for _, index := range []int{-1, len(SeedPlayers())} {
		_, found, err := repo.Get(t.Context(), index)
		require.NoError(t, err)
		assert.False(t, found, "Get(%d)", index)

		_, found, err = repo.Remove(t.Context(), index)
		require.NoError(t, err)
		assert.False(t, found, "Remove(%d)", index)

		_, found, err = repo.Mutate(t.Context(), index, func(p roster.Player) (roster.Player, error) {
			return p, nil
		})
		require.NoError(t, err)
		assert.False(t, found, "Mutate(%d)", index)
	}

	players, err := repo.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, players, len(SeedPlayers()))
}

func TestRosterRepository_MutateErrorLeavesRosterUnchanged(t *testing.T) {
	repo := NewRosterRepository([]roster.Player{
		{Name: "a", Position: roster.PositionGoalkeeper, Club: "x", Value: 10},
	})

	_, found, err := repo.Mutate(t.Context(), 0, func(roster.Player) (roster.Player, error) {
		return roster.Player{}, fmt.Errorf("boom")
	})
	require.Error(t, err)
	require.True(t, found)

	got, found, err := repo.Get(t.Context(), 0)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, float64(10), got.Value)
}

func TestRosterRepository_ConcurrentAppendAndRemove(t *testing.T) {
	repo := NewRosterRepository(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = repo.Append(t.Context(), roster.Player{Name: "p", Position: roster.PositionForward, Club: "c", Value: 1})
		}()
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = repo.Remove(t.Context(), 0)
		}()
	}
	wg.Wait()

	players, err := repo.List(t.Context())
	require.NoError(t, err)
	assert.Len(t, players, 30)
}
