package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/roster-manager/internal/domain/roster"
)

// RosterService owns every roster operation exposed over the API. The
// repository serializes mutations; the service adds validation and maps
// domain failures onto sentinel errors.
type RosterService struct {
	rosterRepo roster.Repository
}

func NewRosterService(rosterRepo roster.Repository) *RosterService {
	return &RosterService{rosterRepo: rosterRepo}
}

type CreatePlayerInput struct {
	Name     string
	Position string
	Club     string
	Value    float64
}

func (s *RosterService) CreatePlayer(ctx context.Context, in CreatePlayerInput) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CreatePlayer")
	defer span.End()

	p, err := roster.NewPlayer(in.Name, roster.Position(in.Position), in.Club, in.Value)
	if err != nil {
		return roster.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.rosterRepo.Append(ctx, p); err != nil {
		return roster.Player{}, fmt.Errorf("append player: %w", err)
	}

	return p, nil
}

func (s *RosterService) ListPlayers(ctx context.Context) ([]roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListPlayers")
	defer span.End()

	players, err := s.rosterRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return players, nil
}

// AdjustPlayerValue shifts a player's market value by amount. Negative
// amounts reduce the value by their magnitude and the result is not floored
// at zero.
func (s *RosterService) AdjustPlayerValue(ctx context.Context, index int, amount float64) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AdjustPlayerValue")
	defer span.End()

	updated, found, err := s.rosterRepo.Mutate(ctx, index, func(p roster.Player) (roster.Player, error) {
		return p.WithValueDelta(amount), nil
	})
	if err != nil {
		return roster.Player{}, fmt.Errorf("adjust player value: %w", err)
	}
	if !found {
		return roster.Player{}, fmt.Errorf("%w: player index=%d", ErrNotFound, index)
	}

	return updated, nil
}

// SetPlayerValue replaces a player's market value; negative inputs are
// coerced to their absolute value.
func (s *RosterService) SetPlayerValue(ctx context.Context, index int, newValue float64) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SetPlayerValue")
	defer span.End()

	updated, found, err := s.rosterRepo.Mutate(ctx, index, func(p roster.Player) (roster.Player, error) {
		return p.WithValue(newValue), nil
	})
	if err != nil {
		return roster.Player{}, fmt.Errorf("set player value: %w", err)
	}
	if !found {
		return roster.Player{}, fmt.Errorf("%w: player index=%d", ErrNotFound, index)
	}

	return updated, nil
}

func (s *RosterService) TransferPlayer(ctx context.Context, index int, newClub string, fee float64) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.TransferPlayer")
	defer span.End()

	updated, found, err := s.rosterRepo.Mutate(ctx, index, func(p roster.Player) (roster.Player, error) {
		return p.TransferTo(newClub, fee)
	})
	if err != nil {
		if found {
			return roster.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return roster.Player{}, fmt.Errorf("transfer player: %w", err)
	}
	if !found {
		return roster.Player{}, fmt.Errorf("%w: player index=%d", ErrNotFound, index)
	}

	return updated, nil
}

func (s *RosterService) RemovePlayer(ctx context.Context, index int) (roster.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemovePlayer")
	defer span.End()

	removed, found, err := s.rosterRepo.Remove(ctx, index)
	if err != nil {
		return roster.Player{}, fmt.Errorf("remove player: %w", err)
	}
	if !found {
		return roster.Player{}, fmt.Errorf("%w: player index=%d", ErrNotFound, index)
	}

	return removed, nil
}
