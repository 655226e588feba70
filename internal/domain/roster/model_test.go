package roster

import (
	"math"
	"strings"
	"testing"
)

func TestNewPlayer_TrimsNameAndClub(t *testing.T) {
	p, err := NewPlayer("  Erling Haaland ", PositionForward, " Manchester City  ", 180)
	if err != nil {
		t.Fatalf("new player failed: %v", err)
	}
	if p.Name != "Erling Haaland" {
		t.Fatalf("expected trimmed name, got %q", p.Name)
	}
	if p.Club != "Manchester City" {
		t.Fatalf("expected trimmed club, got %q", p.Club)
	}
}

func TestNewPlayer_Validation(t *testing.T) {
	cases := []struct {
		name     string
		player   string
		position Position
		club     string
		value    float64
		wantErr  string
	}{
		{name: "blank name", player: "   ", position: PositionForward, club: "PSG", value: 10, wantErr: "name is required"},
		{name: "blank club", player: "Jude", position: PositionMidfielder, club: " ", value: 10, wantErr: "club is required"},
		{name: "unknown position", player: "Jude", position: Position("ST"), club: "Real Madrid", value: 10, wantErr: "invalid position"},
		{name: "negative value", player: "Jude", position: PositionMidfielder, club: "Real Madrid", value: -1, wantErr: "cannot be negative"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPlayer(tc.player, tc.position, tc.club, tc.value)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestWithValueDelta_NotFlooredAtZero(t *testing.T) {
	p := Player{Name: "Mike", Position: PositionGoalkeeper, Club: "Chelsea", Value: 30}

	p = p.WithValueDelta(5)
	if p.Value != 35 {
		t.Fatalf("expected value 35, got %v", p.Value)
	}

	p = p.WithValueDelta(-40)
	if p.Value != -5 {
		t.Fatalf("expected value -5 (no floor at zero), got %v", p.Value)
	}
}

func TestWithValue_CoercesNegativeInput(t *testing.T) {
	p := Player{Name: "Mike", Position: PositionGoalkeeper, Club: "Chelsea", Value: 30}

	p = p.WithValue(-42)
	if p.Value != 42 {
		t.Fatalf("expected abs-coerced value 42, got %v", p.Value)
	}
}

func TestTransferTo(t *testing.T) {
	p := Player{Name: "John", Position: PositionForward, Club: "Liverpool", Value: 50}

	moved, err := p.TransferTo("  Real Madrid ", 200)
	if err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if moved.Club != "Real Madrid" {
		t.Fatalf("expected club Real Madrid, got %q", moved.Club)
	}
	if moved.Value != 200 {
		t.Fatalf("expected value overwritten by fee, got %v", moved.Value)
	}

	if _, err := p.TransferTo("   ", 10); err == nil {
		t.Fatalf("expected error for blank club")
	}
	if _, err := p.TransferTo("PSG", -1); err == nil {
		t.Fatalf("expected error for negative fee")
	}
}

func TestTransferTo_RejectsNonFiniteFees(t *testing.T) {
	p := Player{Name: "John", Position: PositionForward, Club: "Liverpool", Value: 50}

	for name, fee := range map[string]float64{
		"NaN":  math.NaN(),
		"+Inf": math.Inf(1),
		"-Inf": math.Inf(-1),
	} {
		if _, err := p.TransferTo("PSG", fee); err == nil {
			t.Fatalf("expected error for %s fee", name)
		}
	}
}

func TestValidate_RejectsNonFiniteValue(t *testing.T) {
	if _, err := NewPlayer("John", PositionForward, "Liverpool", math.NaN()); err == nil {
		t.Fatalf("expected error for NaN value")
	}
	if _, err := NewPlayer("John", PositionForward, "Liverpool", math.Inf(1)); err == nil {
		t.Fatalf("expected error for Inf value")
	}
}
