package memory

import "github.com/riskibarqy/roster-manager/internal/domain/roster"

// SeedPlayers returns the default roster loaded on startup when seeding is
// enabled. Values are market values in millions.
func SeedPlayers() []roster.Player {
	return []roster.Player{
		{Name: "Erling Haaland", Position: roster.PositionForward, Club: "Manchester City", Value: 180},
		{Name: "Jude Bellingham", Position: roster.PositionMidfielder, Club: "Real Madrid", Value: 150},
		{Name: "Kylian Mbappé", Position: roster.PositionForward, Club: "PSG", Value: 180},
		{Name: "Vinicius Jr", Position: roster.PositionForward, Club: "Real Madrid", Value: 150},
		{Name: "Phil Foden", Position: roster.PositionMidfielder, Club: "Manchester City", Value: 130},
	}
}
