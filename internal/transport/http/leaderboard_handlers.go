package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/snake-arena-server/internal/core"
	"github.com/vovakirdan/snake-arena-server/internal/store"
)

// LeaderboardHandlers serves the REST leaderboard API from the score store
// and the hub's in-memory session view.
type LeaderboardHandlers struct {
	hub    *core.Hub
	scores store.ScoreStore
	log    *zerolog.Logger
}

// NewLeaderboardHandlers creates the REST handler set.
func NewLeaderboardHandlers(hub *core.Hub, scores store.ScoreStore, logger *zerolog.Logger) *LeaderboardHandlers {
	return &LeaderboardHandlers{hub: hub, scores: scores, log: logger}
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SaveScoreRequest is the out-of-band score submission body.
type SaveScoreRequest struct {
	PlayerName string `json:"playerName" binding:"required,min=2"`
	Score      int    `json:"score" binding:"min=0"`
	GameMode   string `json:"gameMode"`
}

func queryInt(c *gin.Context, key string, def, max int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}

// Global handles GET /api/leaderboard/global.
func (h *LeaderboardHandlers) Global(c *gin.Context) {
	limit := queryInt(c, "limit", 10, 100)
	entries, err := h.scores.GlobalLeaderboard(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to fetch global leaderboard")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "database error"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Session handles GET /api/leaderboard/session: best scores of currently
// connected players, served from memory.
func (h *LeaderboardHandlers) Session(c *gin.Context) {
	limit := queryInt(c, "limit", 10, 100)
	c.JSON(http.StatusOK, h.hub.SessionScores(limit))
}

// Weekly handles GET /api/leaderboard/weekly.
func (h *LeaderboardHandlers) Weekly(c *gin.Context) {
	days := queryInt(c, "days", 7, 365)
	limit := queryInt(c, "limit", 10, 100)
	entries, err := h.scores.TopScoresSince(c.Request.Context(), days, limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to fetch weekly leaderboard")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "database error"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Recent handles GET /api/scores/recent.
func (h *LeaderboardHandlers) Recent(c *gin.Context) {
	limit := queryInt(c, "limit", 20, 100)
	scores, err := h.scores.RecentScores(c.Request.Context(), limit)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to fetch recent scores")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "database error"})
		return
	}
	c.JSON(http.StatusOK, scores)
}

// PlayerStats handles GET /api/players/:name/stats.
func (h *LeaderboardHandlers) PlayerStats(c *gin.Context) {
	name := c.Param("name")
	stats, err := h.scores.PlayerStats(c.Request.Context(), name)
	if err != nil {
		h.log.Error().Err(err).Str("player", name).Msg("failed to fetch player stats")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "database error"})
		return
	}
	if stats == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "player not found"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// SaveScore handles POST /api/score.
func (h *LeaderboardHandlers) SaveScore(c *gin.Context) {
	var req SaveScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if _, err := h.scores.SaveScore(c.Request.Context(), req.PlayerName, req.Score, req.GameMode); err != nil {
		h.log.Error().Err(err).Str("player", req.PlayerName).Msg("failed to save score")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to save score"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
