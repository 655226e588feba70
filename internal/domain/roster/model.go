package roster

import (
	"fmt"
	"math"
	"strings"
)

// Position represents the football position categories a player can hold.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DF"
	PositionMidfielder Position = "CM"
	PositionForward    Position = "FW"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// Player is a roster entry. Players carry no stable identifier; they are
// addressed by their current index in the roster, and deleting an entry
// shifts every later index down by one.
type Player struct {
	Name     string
	Position Position
	Club     string
	Value    float64
}

// NewPlayer builds a validated player. Name and club are trimmed on write;
// the market value is in millions and must not be negative at creation.
func NewPlayer(name string, position Position, club string, value float64) (Player, error) {
	p := Player{
		Name:     strings.TrimSpace(name),
		Position: position,
		Club:     strings.TrimSpace(club),
		Value:    value,
	}
	if err := p.Validate(); err != nil {
		return Player{}, err
	}

	return p, nil
}

func (p Player) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid position %q: must be one of GK, DF, CM, FW", p.Position)
	}
	if p.Club == "" {
		return fmt.Errorf("player club is required")
	}
	if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
		return fmt.Errorf("player value must be a finite number")
	}
	if p.Value < 0 {
		return fmt.Errorf("player value cannot be negative")
	}

	return nil
}

// WithValueDelta applies a market value adjustment. A negative amount reduces
// the value by its magnitude, and the result is deliberately not floored at
// zero: repeated markdowns can push a value below zero through this path.
func (p Player) WithValueDelta(amount float64) Player {
	p.Value += amount
	return p
}

// WithValue replaces the market value outright, coercing negative inputs to
// their absolute value.
func (p Player) WithValue(newValue float64) Player {
	p.Value = math.Abs(newValue)
	return p
}

// TransferTo moves the player to a new club for the given fee. The fee
// overwrites the market value directly once validated.
func (p Player) TransferTo(newClub string, fee float64) (Player, error) {
	newClub = strings.TrimSpace(newClub)
	if newClub == "" {
		return Player{}, fmt.Errorf("new club cannot be empty")
	}
	// fee < 0 is false for NaN, so non-finite fees need their own check or
	// they would land in Value and break JSON encoding of the roster.
	if math.IsNaN(fee) || math.IsInf(fee, 0) {
		return Player{}, fmt.Errorf("transfer fee must be a finite number")
	}
	if fee < 0 {
		return Player{}, fmt.Errorf("transfer fee cannot be negative")
	}

	p.Club = newClub
	p.Value = fee

	return p, nil
}
