package core

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoinGame registers a player with a name and mode.
	CommandJoinGame CommandKind = iota
	// CommandMove requests a direction change.
	CommandMove
	// CommandStartGame starts a solo game or requests a match start.
	CommandStartGame
	// CommandGameOver submits the final score of a finished run.
	CommandGameOver
	// CommandRespawn asks to re-enter a running match after dying.
	CommandRespawn
	// CommandLeaveGame leaves the current game gracefully.
	CommandLeaveGame
)

// Command represents an action requested by a client.
type Command struct {
	Kind      CommandKind
	Name      string
	Mode      GameMode
	Direction string
	Score     int
}
