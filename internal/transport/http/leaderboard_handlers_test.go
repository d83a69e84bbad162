package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/vovakirdan/snake-arena-server/internal/store"
)

func seedScores(t *testing.T, s *testServer) {
	t.Helper()
	ctx := context.Background()
	for _, row := range []struct {
		name  string
		score int
	}{
		{"alice", 50},
		{"alice", 20},
		{"bob", 30},
	} {
		if _, err := s.scores.SaveScore(ctx, row.name, row.score, "singleplayer"); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthEndpoint(t *testing.T) {
	s := startTestServer(t)
	resp, err := http.Get(s.ts.URL + "/health")
	if err != nil {
		t.Fatalf("get health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health = %d", resp.StatusCode)
	}
}

func TestGlobalLeaderboardEndpoint(t *testing.T) {
	s := startTestServer(t)
	seedScores(t, s)

	var entries []store.LeaderboardEntry
	if code := getJSON(t, s.ts.URL+"/api/leaderboard/global", &entries); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(entries) != 2 {
		t.Fatalf("want 2 players, got %+v", entries)
	}
	if entries[0].Name != "alice" || entries[0].Score != 50 || entries[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", entries[0])
	}
	if entries[1].Name != "bob" || entries[1].TotalGames != 1 {
		t.Fatalf("unexpected runner-up: %+v", entries[1])
	}
}

func TestGlobalLeaderboardLimit(t *testing.T) {
	s := startTestServer(t)
	seedScores(t, s)

	var entries []store.LeaderboardEntry
	getJSON(t, s.ts.URL+"/api/leaderboard/global?limit=1", &entries)
	if len(entries) != 1 || entries[0].Name != "alice" {
		t.Fatalf("limit not applied: %+v", entries)
	}

	// Bad limit values fall back to the default instead of erroring.
	if code := getJSON(t, s.ts.URL+"/api/leaderboard/global?limit=bogus", &entries); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
}

func TestWeeklyLeaderboardEndpoint(t *testing.T) {
	s := startTestServer(t)
	seedScores(t, s)

	var entries []store.WindowEntry
	if code := getJSON(t, s.ts.URL+"/api/leaderboard/weekly", &entries); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(entries) != 2 || entries[0].Name != "alice" || entries[0].BestScore != 50 || entries[0].GamesPlayed != 2 {
		t.Fatalf("unexpected window entries: %+v", entries)
	}
}

func TestRecentScoresEndpoint(t *testing.T) {
	s := startTestServer(t)
	seedScores(t, s)

	var scores []store.Score
	if code := getJSON(t, s.ts.URL+"/api/scores/recent?limit=2", &scores); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(scores) != 2 {
		t.Fatalf("limit not applied: %+v", scores)
	}
}

func TestSessionLeaderboardEmpty(t *testing.T) {
	s := startTestServer(t)

	var scores []json.RawMessage
	if code := getJSON(t, s.ts.URL+"/api/leaderboard/session", &scores); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if len(scores) != 0 {
		t.Fatalf("no one is connected, got %+v", scores)
	}
}

func TestPlayerStatsEndpoint(t *testing.T) {
	s := startTestServer(t)
	seedScores(t, s)

	var stats store.PlayerStats
	if code := getJSON(t, s.ts.URL+"/api/players/alice/stats", &stats); code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if stats.TotalGames != 2 || stats.BestScore != 50 || stats.TotalScore != 70 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	if code := getJSON(t, s.ts.URL+"/api/players/nobody/stats", nil); code != http.StatusNotFound {
		t.Fatalf("unknown player status = %d", code)
	}
}

func TestSaveScoreEndpoint(t *testing.T) {
	s := startTestServer(t)

	body, _ := json.Marshal(SaveScoreRequest{PlayerName: "carol", Score: 15, GameMode: "singleplayer"})
	resp, err := http.Post(s.ts.URL+"/api/score", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var entries []store.LeaderboardEntry
	getJSON(t, s.ts.URL+"/api/leaderboard/global", &entries)
	if len(entries) != 1 || entries[0].Name != "carol" || entries[0].Score != 15 {
		t.Fatalf("submitted score missing: %+v", entries)
	}
}

func TestSaveScoreValidation(t *testing.T) {
	s := startTestServer(t)

	for _, body := range []string{
		`{"playerName":"x","score":10}`,  // name too short
		`{"playerName":"carol","score":-5}`, // negative score
		`not json`,
	} {
		resp, err := http.Post(s.ts.URL+"/api/score", "application/json", bytes.NewReader([]byte(body)))
		if err != nil {
			t.Fatalf("post: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, resp.StatusCode)
		}
	}
}
