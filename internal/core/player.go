package core

import (
	"sync"
	"time"
)

// GameMode selects between a solo board and a shared room.
type GameMode string

const (
	ModeSingleplayer GameMode = "singleplayer"
	ModeMultiplayer  GameMode = "multiplayer"
)

// Player is the authoritative server-side record for one connection.
//
// The identity fields (ID, Events) are fixed for the connection's lifetime.
// Name and Mode are set once by a successful join. The game-state fields
// (Snake, Direction, Food, Score, Alive) are guarded by the owning room's
// lock while a game is running, and by the hub lock otherwise; the hub always
// acquires locks in hub-then-room order, and a room's tick takes only its own
// lock, so the two contexts never interleave on the same player.
type Player struct {
	ID     string
	Name   string
	Mode   GameMode
	Events chan *Event

	Snake     []Point
	Direction Point
	Food      Point
	Score     int
	BestScore int
	Alive     bool

	LastGameAt time.Time

	room *Room

	closeOnce sync.Once
}

// NewPlayer constructs a connected but not yet joined player.
func NewPlayer(id string) *Player {
	return &Player{
		ID:     id,
		Events: make(chan *Event, 16),
	}
}

func (p *Player) joined() bool { return p.Name != "" }

func (p *Player) head() Point { return p.Snake[0] }

// send delivers an event without blocking. Slow consumers lose events rather
// than stalling the tick that produced them.
func (p *Player) send(ev *Event) {
	select {
	case p.Events <- ev:
	default:
	}
}

// close releases the outbound channel exactly once, ending the writer loop.
func (p *Player) close() {
	p.closeOnce.Do(func() { close(p.Events) })
}

// reset gives the player a fresh single-segment body at spawn with new food.
func (p *Player) reset(spawn Point, s Settings) {
	p.Score = 0
	p.Alive = true
	p.Direction = Point{}
	p.Snake = []Point{spawn}
	p.Food = randomFreeCell(s.TileCount, s.TileCount*s.TileCount, func(c Point) bool {
		return c == spawn
	})
}

// summary copies the visible state into an immutable broadcast view.
func (p *Player) summary() PlayerView {
	snake := make([]Point, len(p.Snake))
	copy(snake, p.Snake)
	return PlayerView{
		ID:    p.ID,
		Name:  p.Name,
		Snake: snake,
		Food:  p.Food,
		Score: p.Score,
		Alive: p.Alive,
	}
}

// rosterEntry is the reduced pre-start view (no body or food yet).
func (p *Player) rosterEntry() PlayerView {
	return PlayerView{
		ID:    p.ID,
		Name:  p.Name,
		Score: p.Score,
		Alive: p.Alive,
	}
}
