package core

import "time"

// Settings are the tunable game rules shared by the hub and every room.
type Settings struct {
	// TileCount is the board width and height in cells.
	TileCount int
	// TickInterval is the base simulation step period.
	TickInterval time.Duration
	// MinTickInterval is the floor the single-player speed-up stops at.
	MinTickInterval time.Duration
	// SpeedupStep is subtracted from the interval at each score threshold.
	SpeedupStep time.Duration
	// SpeedupEvery is the score threshold (in points) triggering a speed-up.
	SpeedupEvery int
	// MaxPlayers bounds room capacity, MinPlayers gates the match start.
	MaxPlayers int
	MinPlayers int
	// FoodReward is the score granted per food eaten.
	FoodReward int
	// RespawnAttempts caps rejection sampling for respawn placement.
	RespawnAttempts int
}

// DefaultSettings mirrors the classic 20x20 board at 120ms per tick.
func DefaultSettings() Settings {
	return Settings{
		TileCount:       20,
		TickInterval:    120 * time.Millisecond,
		MinTickInterval: 60 * time.Millisecond,
		SpeedupStep:     5 * time.Millisecond,
		SpeedupEvery:    50,
		MaxPlayers:      4,
		MinPlayers:      2,
		FoodReward:      10,
		RespawnAttempts: 50,
	}
}

// spawnCell is where a fresh snake starts outside a multiplayer match.
func (s Settings) spawnCell() Point {
	return Point{X: s.TileCount / 2, Y: s.TileCount / 2}
}

// startCell assigns multiplayer start positions by seat index, one per board
// quadrant.
func (s Settings) startCell(seat int) Point {
	q := s.TileCount / 4
	cells := []Point{
		{X: q, Y: q},
		{X: 3 * q, Y: q},
		{X: q, Y: 3 * q},
		{X: 3 * q, Y: 3 * q},
	}
	if seat < 0 || seat >= len(cells) {
		return cells[0]
	}
	return cells[seat]
}
