package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/roster-manager/internal/domain/roster"
)

// RosterRepository keeps the roster as an ordered in-process slice. All
// mutations run under a single write lock so concurrent requests cannot
// interleave index shifts; reads return snapshot copies.
type RosterRepository struct {
	mu      sync.RWMutex
	players []roster.Player
}

func NewRosterRepository(players []roster.Player) *RosterRepository {
	out := make([]roster.Player, len(players))
	copy(out, players)

	return &RosterRepository{players: out}
}

func (r *RosterRepository) List(_ context.Context) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Player, 0, len(r.players))
	out = append(out, r.players...)

	return out, nil
}

func (r *RosterRepository) Get(_ context.Context, index int) (roster.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.players) {
		return roster.Player{}, false, nil
	}

	return r.players[index], true, nil
}

func (r *RosterRepository) Append(_ context.Context, p roster.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players = append(r.players, p)

	return nil
}

// Mutate applies fn to the entry at index while holding the write lock, so
// the read-modify-write cycle is atomic with respect to other operations.
// If fn returns an error the roster is left unchanged.
func (r *RosterRepository) Mutate(_ context.Context, index int, fn func(roster.Player) (roster.Player, error)) (roster.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.players) {
		return roster.Player{}, false, nil
	}

	updated, err := fn(r.players[index])
	if err != nil {
		return roster.Player{}, true, err
	}
	r.players[index] = updated

	return updated, true, nil
}

func (r *RosterRepository) Remove(_ context.Context, index int) (roster.Player, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.players) {
		return roster.Player{}, false, nil
	}

	removed := r.players[index]
	r.players = append(r.players[:index], r.players[index+1:]...)

	return removed, true, nil
}
