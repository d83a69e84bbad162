package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventPlayerJoined confirms a join to the joining player.
	EventPlayerJoined EventKind = iota
	// EventPlayerCount refreshes the global online counters for everyone.
	EventPlayerCount
	// EventRoomUpdate carries the pre-start roster of a room.
	EventRoomUpdate
	// EventGameStarted confirms a single-player game with its initial state.
	EventGameStarted
	// EventMatchStarted announces a multiplayer match with all seats placed.
	EventMatchStarted
	// EventGameUpdate is the per-tick snapshot clients render from.
	EventGameUpdate
	// EventPlayerMoved relays a peer's direction change mid-match.
	EventPlayerMoved
	// EventPlayerDied tells room peers that a member finished their run.
	EventPlayerDied
	// EventScoreSaved acknowledges a game-over score submission.
	EventScoreSaved
	// EventPlayerRespawned delivers the respawned state to the player itself.
	EventPlayerRespawned
	// EventPeerRespawned is the reduced respawn notice for room peers.
	EventPeerRespawned
	// EventPlayerDisconnected tells room peers a member left.
	EventPlayerDisconnected
	// EventMatchEnded carries the final ranking of a finished match.
	EventMatchEnded
	// EventError reports a rejected command.
	EventError
)

// PlayerView is the immutable per-member state embedded in broadcasts. The
// snake slice is always a copy; views must not be mutated after construction.
type PlayerView struct {
	ID        string
	Name      string
	Snake     []Point
	Food      Point
	Score     int
	Alive     bool
	Direction string
}

// Counts is the payload of EventPlayerCount.
type Counts struct {
	Total       int
	Multiplayer int
}

// Event describes something that happened in the game to one client.
type Event struct {
	Kind    EventKind
	RoomID  string
	Mode    GameMode
	Player  PlayerView   // the subject of the event, when there is one
	Players []PlayerView // roster, snapshot, or ranked results
	Counts  Counts
	Score   int
	Error   *CoreError
}
