package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vovakirdan/snake-arena-server/internal/store"
)

// SQLiteStore implements store.ScoreStore for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	player_name TEXT NOT NULL,
	score       INTEGER NOT NULL,
	game_mode   TEXT NOT NULL DEFAULT 'singleplayer',
	created_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS players (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	name         TEXT NOT NULL UNIQUE,
	total_games  INTEGER NOT NULL DEFAULT 0,
	best_score   INTEGER NOT NULL DEFAULT 0,
	total_score  INTEGER NOT NULL DEFAULT 0,
	first_played DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	last_played  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_scores_player_name ON scores(player_name);
CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC);
CREATE INDEX IF NOT EXISTS idx_scores_created_at ON scores(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_players_best_score ON players(best_score DESC);
`

// New opens (or creates) the score database and applies the schema.
// dbPath may be ":memory:" for tests.
func New(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// SQLite works best with a single connection; serializing here also
	// makes concurrent saves from multiple rooms safe by construction.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveScore inserts a score row and upserts the player aggregate in one
// transaction.
func (s *SQLiteStore) SaveScore(ctx context.Context, playerName string, score int, mode string) (int64, error) {
	if mode == "" {
		mode = "singleplayer"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO scores (player_name, score, game_mode) VALUES (?, ?, ?)`,
		playerName, score, mode,
	)
	if err != nil {
		return 0, fmt.Errorf("insert score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO players (name, total_games, best_score, total_score, last_played)
		VALUES (?, 1, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET
			total_games = total_games + 1,
			best_score  = MAX(best_score, excluded.best_score),
			total_score = total_score + excluded.total_score,
			last_played = CURRENT_TIMESTAMP`,
		playerName, score, score,
	)
	if err != nil {
		return 0, fmt.Errorf("upsert player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// GlobalLeaderboard returns per-player best scores ordered best_score DESC,
// last_played ASC, so of two equal scores the earlier one ranks higher.
func (s *SQLiteStore) GlobalLeaderboard(ctx context.Context, limit int) ([]store.LeaderboardEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, best_score, total_games, total_score, last_played
		FROM players
		WHERE best_score > 0
		ORDER BY best_score DESC, last_played ASC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []store.LeaderboardEntry{}
	for rows.Next() {
		var e store.LeaderboardEntry
		if err := rows.Scan(&e.Name, &e.Score, &e.TotalGames, &e.TotalScore, &e.LastPlayed); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		e.Rank = len(entries) + 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// RecentScores returns the newest raw score rows.
func (s *SQLiteStore) RecentScores(ctx context.Context, limit int) ([]store.Score, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_name, score, game_mode, created_at
		FROM scores
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent scores: %w", err)
	}
	defer rows.Close()

	scores := []store.Score{}
	for rows.Next() {
		var sc store.Score
		if err := rows.Scan(&sc.ID, &sc.PlayerName, &sc.Score, &sc.Mode, &sc.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		scores = append(scores, sc)
	}
	return scores, rows.Err()
}

// TopScoresSince aggregates per-player best scores over the trailing window.
func (s *SQLiteStore) TopScoresSince(ctx context.Context, days, limit int) ([]store.WindowEntry, error) {
	window := fmt.Sprintf("-%d days", days)
	rows, err := s.db.QueryContext(ctx, `
		SELECT player_name, MAX(score), COUNT(*)
		FROM scores
		WHERE created_at >= datetime('now', ?)
		GROUP BY player_name
		ORDER BY MAX(score) DESC, COUNT(*) DESC
		LIMIT ?`, window, limit)
	if err != nil {
		return nil, fmt.Errorf("query window scores: %w", err)
	}
	defer rows.Close()

	entries := []store.WindowEntry{}
	for rows.Next() {
		var e store.WindowEntry
		if err := rows.Scan(&e.Name, &e.BestScore, &e.GamesPlayed); err != nil {
			return nil, fmt.Errorf("scan window row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// PlayerStats returns lifetime aggregates, or nil if the player is unknown.
func (s *SQLiteStore) PlayerStats(ctx context.Context, name string) (*store.PlayerStats, error) {
	var st store.PlayerStats
	err := s.db.QueryRowContext(ctx, `
		SELECT p.name, p.total_games, p.best_score, p.total_score,
			COALESCE((SELECT AVG(score) FROM scores s WHERE s.player_name = p.name), 0),
			p.first_played, p.last_played
		FROM players p
		WHERE p.name = ?`, name).Scan(
		&st.Name,
		&st.TotalGames,
		&st.BestScore,
		&st.TotalScore,
		&st.AverageScore,
		&st.FirstPlayed,
		&st.LastPlayed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query player stats: %w", err)
	}
	return &st, nil
}
