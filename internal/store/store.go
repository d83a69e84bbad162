package store

import (
	"context"
	"time"
)

// Score is one persisted game result.
type Score struct {
	ID         int64     `json:"id"`
	PlayerName string    `json:"playerName"`
	Score      int       `json:"score"`
	Mode       string    `json:"gameMode"`
	CreatedAt  time.Time `json:"createdAt"`
}

// LeaderboardEntry is a ranked per-player aggregate row.
type LeaderboardEntry struct {
	Rank       int       `json:"rank"`
	Name       string    `json:"name"`
	Score      int       `json:"score"`
	TotalGames int       `json:"totalGames"`
	TotalScore int       `json:"totalScore"`
	LastPlayed time.Time `json:"lastPlayed"`
}

// WindowEntry aggregates a player's best result inside a time window.
type WindowEntry struct {
	Name        string `json:"name"`
	BestScore   int    `json:"bestScore"`
	GamesPlayed int    `json:"gamesPlayed"`
}

// PlayerStats holds lifetime aggregates for one player name.
type PlayerStats struct {
	Name         string    `json:"name"`
	TotalGames   int       `json:"totalGames"`
	BestScore    int       `json:"bestScore"`
	TotalScore   int       `json:"totalScore"`
	AverageScore float64   `json:"averageScore"`
	FirstPlayed  time.Time `json:"firstPlayed"`
	LastPlayed   time.Time `json:"lastPlayed"`
}

// ScoreStore is the durable leaderboard sink. Writers on the gameplay path
// call SaveScore fire-and-forget; queries serve the REST API only and are
// never issued from a tick. Implementations must tolerate concurrent writes
// from multiple rooms.
type ScoreStore interface {
	// SaveScore records a finished run and updates the player aggregate,
	// returning the new score row id.
	SaveScore(ctx context.Context, playerName string, score int, mode string) (int64, error)

	// GlobalLeaderboard returns per-player best scores, highest first; ties
	// rank the earlier achiever higher (last_played ascending).
	GlobalLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)

	// RecentScores returns the newest raw score rows.
	RecentScores(ctx context.Context, limit int) ([]Score, error)

	// TopScoresSince aggregates each player's best score over the trailing
	// window of days.
	TopScoresSince(ctx context.Context, days, limit int) ([]WindowEntry, error)

	// PlayerStats returns lifetime aggregates, or nil when the player has
	// never saved a score.
	PlayerStats(ctx context.Context, name string) (*PlayerStats, error)

	// Close releases the underlying database.
	Close() error
}
