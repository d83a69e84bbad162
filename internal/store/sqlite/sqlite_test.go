package sqlite

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveScoreUpsertsPlayerAggregate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.SaveScore(ctx, "alice", 40, "singleplayer")
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == 0 {
		t.Fatal("expected a row id")
	}
	if _, err := s.SaveScore(ctx, "alice", 25, "multiplayer"); err != nil {
		t.Fatalf("save: %v", err)
	}

	stats, err := s.PlayerStats(ctx, "alice")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats == nil {
		t.Fatal("expected aggregate row")
	}
	if stats.TotalGames != 2 || stats.BestScore != 40 || stats.TotalScore != 65 {
		t.Fatalf("unexpected aggregates: %+v", stats)
	}
	if stats.AverageScore != 32.5 {
		t.Fatalf("average = %v, want 32.5", stats.AverageScore)
	}
}

func TestSaveScoreDefaultsMode(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveScore(ctx, "alice", 10, ""); err != nil {
		t.Fatalf("save: %v", err)
	}

	scores, err := s.RecentScores(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(scores) != 1 || scores[0].Mode != "singleplayer" {
		t.Fatalf("unexpected rows: %+v", scores)
	}
}

func TestGlobalLeaderboardOrdering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, row := range []struct {
		name  string
		score int
	}{
		{"carol", 10},
		{"alice", 50},
		{"bob", 30},
	} {
		if _, err := s.SaveScore(ctx, row.name, row.score, "singleplayer"); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	entries, err := s.GlobalLeaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("want 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"alice", "bob", "carol"} {
		if entries[i].Name != want || entries[i].Rank != i+1 {
			t.Fatalf("row %d = %+v, want %s at rank %d", i, entries[i], want, i+1)
		}
	}
}

func TestGlobalLeaderboardTieGoesToEarlierPlayer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveScore(ctx, "alice", 30, "singleplayer"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.SaveScore(ctx, "bob", 30, "singleplayer"); err != nil {
		t.Fatalf("save: %v", err)
	}
	// Push the timestamps apart; CURRENT_TIMESTAMP has second resolution.
	if _, err := s.db.Exec(`UPDATE players SET last_played = datetime('now', '-1 hour') WHERE name = 'alice'`); err != nil {
		t.Fatalf("backdate: %v", err)
	}

	entries, err := s.GlobalLeaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if entries[0].Name != "alice" || entries[1].Name != "bob" {
		t.Fatalf("tie must rank the earlier score first: %+v", entries)
	}
}

func TestGlobalLeaderboardSkipsZeroScores(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveScore(ctx, "alice", 0, "singleplayer"); err != nil {
		t.Fatalf("save: %v", err)
	}

	entries, err := s.GlobalLeaderboard(ctx, 10)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("zero-score players should be hidden: %+v", entries)
	}
}

func TestTopScoresSinceWindow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := s.SaveScore(ctx, "alice", 20, "singleplayer"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.SaveScore(ctx, "alice", 45, "singleplayer"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.SaveScore(ctx, "bob", 35, "singleplayer"); err != nil {
		t.Fatalf("save: %v", err)
	}
	// A stale row must fall outside the 7-day window.
	if _, err := s.db.Exec(
		`INSERT INTO scores (player_name, score, game_mode, created_at)
		 VALUES ('carol', 99, 'singleplayer', datetime('now', '-10 days'))`); err != nil {
		t.Fatalf("seed old row: %v", err)
	}

	entries, err := s.TopScoresSince(ctx, 7, 10)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 entries inside the window, got %+v", entries)
	}
	if entries[0].Name != "alice" || entries[0].BestScore != 45 || entries[0].GamesPlayed != 2 {
		t.Fatalf("unexpected leader: %+v", entries[0])
	}
	if entries[1].Name != "bob" || entries[1].BestScore != 35 {
		t.Fatalf("unexpected runner-up: %+v", entries[1])
	}
}

func TestRecentScoresNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, name := range []string{"alice", "bob", "carol"} {
		if _, err := s.SaveScore(ctx, name, 10*(i+1), "singleplayer"); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	scores, err := s.RecentScores(ctx, 2)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("limit not applied: %+v", scores)
	}
	if scores[0].PlayerName != "carol" || scores[1].PlayerName != "bob" {
		t.Fatalf("rows not newest-first: %+v", scores)
	}
}

func TestPlayerStatsUnknownPlayer(t *testing.T) {
	s := newTestStore(t)

	stats, err := s.PlayerStats(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats != nil {
		t.Fatalf("expected nil for unknown player, got %+v", stats)
	}
}
