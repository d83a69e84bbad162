package config

import "time"

// GameConfig holds the tunable simulation rules.
type GameConfig struct {
	TileCount       int           `mapstructure:"tile_count" yaml:"tile_count"`
	TickInterval    time.Duration `mapstructure:"tick_interval" yaml:"tick_interval"`
	MinTickInterval time.Duration `mapstructure:"min_tick_interval" yaml:"min_tick_interval"`
	SpeedupStep     time.Duration `mapstructure:"speedup_step" yaml:"speedup_step"`
	SpeedupEvery    int           `mapstructure:"speedup_every" yaml:"speedup_every"`
	MaxPlayers      int           `mapstructure:"max_players" yaml:"max_players"`
	MinPlayers      int           `mapstructure:"min_players" yaml:"min_players"`
	FoodReward      int           `mapstructure:"food_reward" yaml:"food_reward"`
	RespawnAttempts int           `mapstructure:"respawn_attempts" yaml:"respawn_attempts"`
}

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	MessagesPerMinute int           `mapstructure:"messages_per_minute" yaml:"messages_per_minute"`
	Game              GameConfig    `mapstructure:"game" yaml:"game"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		DatabasePath:      "snake_scores.db",
		LogLevel:          "info",
		MessagesPerMinute: 600,
		Game: GameConfig{
			TileCount:       20,
			TickInterval:    120 * time.Millisecond,
			MinTickInterval: 60 * time.Millisecond,
			SpeedupStep:     5 * time.Millisecond,
			SpeedupEvery:    50,
			MaxPlayers:      4,
			MinPlayers:      2,
			FoodReward:      10,
			RespawnAttempts: 50,
		},
	}
}
