package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoinGame  = "join-game"
	InboundTypeMove      = "player-move"
	InboundTypeStartGame = "start-game"
	InboundTypeGameOver  = "game-over"
	InboundTypeRespawn   = "player-respawn"
	InboundTypeLeave     = "player-leave"

	OutboundTypeEvent = "event"
	OutboundTypeError = "error"
)

// Server event names carried in Outbound.Event.
const (
	EventPlayerJoined       = "player-joined"
	EventPlayerCount        = "player-count-update"
	EventRoomUpdate         = "room-update"
	EventGameStarted        = "game-started"
	EventMatchStarted       = "multiplayer-game-started"
	EventGameUpdate         = "game-update"
	EventPlayerMoved        = "player-moved"
	EventPlayerDied         = "player-died"
	EventScoreSaved         = "score-saved"
	EventPlayerRespawned    = "player-respawned"
	EventPlayerDisconnected = "player-disconnected"
	EventMatchEnded         = "multiplayer-game-ended"
)

// Cell is one grid coordinate on the wire.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// JoinGameData asks to enter the arena under a display name.
type JoinGameData struct {
	PlayerName string `json:"playerName"`
	GameMode   string `json:"gameMode"`
}

// MoveData requests a direction change: up, down, left or right.
type MoveData struct {
	Direction string `json:"direction"`
}

// GameOverData submits the score of a finished run.
type GameOverData struct {
	Score int `json:"score"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Event string `json:"event,omitempty"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// GamePlayer is the full per-member view in snapshots and match starts.
type GamePlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Snake []Cell `json:"snake"`
	Food  Cell   `json:"food"`
	Score int    `json:"score"`
	Alive bool   `json:"isAlive"`
}

// RoomPlayer is the reduced pre-start roster view.
type RoomPlayer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Alive bool   `json:"isAlive"`
}

// PlayerJoinedData confirms a join.
type PlayerJoinedData struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	GameMode   string `json:"gameMode"`
}

// PlayerCountData is the global online counter broadcast.
type PlayerCountData struct {
	Total       int `json:"total"`
	Multiplayer int `json:"multiplayer"`
}

// RoomUpdateData is the waiting-room roster broadcast.
type RoomUpdateData struct {
	RoomID  string       `json:"roomId"`
	Players []RoomPlayer `json:"players"`
}

// InitialState seeds a single-player board.
type InitialState struct {
	Snake []Cell `json:"snake"`
	Food  Cell   `json:"food"`
	Score int    `json:"score"`
}

// GameStartedData confirms a single-player start.
type GameStartedData struct {
	GameMode     string       `json:"gameMode"`
	InitialState InitialState `json:"initialState"`
}

// MatchStartedData announces a multiplayer start with every seat placed.
type MatchStartedData struct {
	Players []GamePlayer `json:"players"`
}

// GameUpdateData is the authoritative per-tick snapshot. Clients render
// exactly this state and must not extrapolate between updates.
type GameUpdateData struct {
	Players []GamePlayer `json:"players"`
}

// PlayerMovedData relays a peer's direction change.
type PlayerMovedData struct {
	PlayerID  string `json:"playerId"`
	Direction string `json:"direction"`
	Snake     []Cell `json:"snake"`
}

// PlayerDiedData tells peers a member's run ended.
type PlayerDiedData struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Score      int    `json:"score"`
}

// ScoreSavedData acknowledges a game-over submission.
type ScoreSavedData struct {
	Score int `json:"score"`
}

// PlayerRespawnedData is sent to the respawned player in full; peers receive
// it without food and score.
type PlayerRespawnedData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name,omitempty"`
	Snake    []Cell `json:"snake"`
	Food     *Cell  `json:"food,omitempty"`
	Score    *int   `json:"score,omitempty"`
}

// PlayerDisconnectedData tells peers a member left the room.
type PlayerDisconnectedData struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

// MatchResult is one row of the final ranking.
type MatchResult struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// MatchEndedData carries the final ranking, best score first.
type MatchEndedData struct {
	Results []MatchResult `json:"results"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
