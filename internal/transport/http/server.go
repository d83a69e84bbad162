package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/snake-arena-server/internal/config"
	"github.com/vovakirdan/snake-arena-server/internal/core"
	"github.com/vovakirdan/snake-arena-server/internal/store"
)

// NewServer builds the HTTP server: the WebSocket game channel plus the REST
// leaderboard API.
func NewServer(hub *core.Hub, scores store.ScoreStore, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(LoggerMiddleware(logger), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.String(stdhttp.StatusOK, "ok")
	})
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg, logger)))

	lb := NewLeaderboardHandlers(hub, scores, logger)
	api := router.Group("/api")
	{
		api.GET("/leaderboard/global", lb.Global)
		api.GET("/leaderboard/session", lb.Session)
		api.GET("/leaderboard/weekly", lb.Weekly)
		api.GET("/scores/recent", lb.Recent)
		api.GET("/players/:name/stats", lb.PlayerStats)
		api.POST("/score", lb.SaveScore)
	}

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}
