package core

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// RoomState tracks the match lifecycle.
type RoomState int

const (
	// RoomOpen accepts joins and waits for a start request.
	RoomOpen RoomState = iota
	// RoomRunning has a live tick loop; membership is frozen by the hub.
	RoomRunning
	// RoomEnded has broadcast its results and waits to be drained or rearmed.
	RoomEnded
)

// Room is one isolated match: a member list, a state machine, and a tick
// loop. A solo room runs a single-player board through the same machinery so
// every mutation of in-game state happens under exactly one lock.
type Room struct {
	ID   string
	solo bool

	mu       sync.Mutex
	state    RoomState
	members  []*Player
	stop     chan struct{} // non-nil while the loop runs; replaced on restart
	settings Settings
	log      *zerolog.Logger
}

func newRoom(id string, solo bool, s Settings, logger *zerolog.Logger) *Room {
	return &Room{
		ID:       id,
		solo:     solo,
		settings: s,
		log:      logger,
	}
}

// newSoloRoom wraps a single player's board in a room of its own.
func newSoloRoom(id string, p *Player, s Settings, logger *zerolog.Logger) *Room {
	r := newRoom(id, true, s, logger)
	r.members = []*Player{p}
	return r
}

// State reports the current lifecycle phase.
func (r *Room) State() RoomState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Join seats a player if the room is still open and has capacity.
func (r *Room) Join(p *Player) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != RoomOpen || len(r.members) >= r.settings.MaxPlayers {
		return false
	}
	r.members = append(r.members, p)
	return true
}

// Remove drops a member, notifies the others, and returns how many remain.
// When the last member leaves the loop is cancelled so the timer can never
// fire against an abandoned room.
func (r *Room) Remove(p *Player) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.members[:0]
	for _, m := range r.members {
		if m != p {
			kept = append(kept, m)
		}
	}
	r.members = kept
	if len(r.members) == 0 {
		r.stopLoopLocked()
		r.state = RoomEnded
		return 0
	}
	r.broadcastExceptLocked(nil, &Event{
		Kind:   EventPlayerDisconnected,
		RoomID: r.ID,
		Player: PlayerView{ID: p.ID, Name: p.Name},
	})
	return len(r.members)
}

// BroadcastRoster pushes the pre-start member list to everyone seated.
func (r *Room) BroadcastRoster() {
	r.mu.Lock()
	defer r.mu.Unlock()
	roster := make([]PlayerView, 0, len(r.members))
	for _, m := range r.members {
		roster = append(roster, m.rosterEntry())
	}
	r.broadcastExceptLocked(nil, &Event{Kind: EventRoomUpdate, RoomID: r.ID, Players: roster})
}

// Start arms a multiplayer match. The first request wins; later requests and
// rooms below the member threshold are no-ops. A finished room can be
// restarted the same way once it again meets the threshold.
func (r *Room) Start() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == RoomRunning || len(r.members) < r.settings.MinPlayers {
		return false
	}
	for i, m := range r.members {
		m.reset(r.settings.startCell(i), r.settings)
	}
	r.state = RoomRunning
	r.broadcastExceptLocked(nil, &Event{
		Kind:    EventMatchStarted,
		RoomID:  r.ID,
		Players: r.snapshotLocked(),
	})
	r.startLoopLocked()
	r.log.Info().Str("room_id", r.ID).Int("members", len(r.members)).Msg("match started")
	return true
}

// StartSolo resets the single seat and (re)starts the loop. Restarting an
// already running board only resets the snake; the interval follows the
// score, so the speed resets with it.
func (r *Room) StartSolo() *Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.members[0]
	p.reset(r.settings.spawnCell(), r.settings)
	if r.state != RoomRunning {
		r.state = RoomRunning
		r.startLoopLocked()
	}
	return &Event{Kind: EventGameStarted, Mode: ModeSingleplayer, Player: p.summary()}
}

// SetDirection applies a direction change under the room lock.
func (r *Room) SetDirection(p *Player, d Point) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return applyDirection(p, d)
}

// MarkDead records an externally reported death (the game-over command) and
// tells the rest of the room. A solo board just stops.
func (r *Room) MarkDead(p *Player, score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.Alive = false
	if r.solo {
		r.stopLoopLocked()
		r.state = RoomEnded
		return
	}
	r.broadcastExceptLocked(p, &Event{
		Kind:   EventPlayerDied,
		RoomID: r.ID,
		Player: PlayerView{ID: p.ID, Name: p.Name, Score: score},
	})
}

// Respawn re-enters a dead player into a running match at a sampled cell.
func (r *Room) Respawn(p *Player) bool {
	if r.solo {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != RoomRunning || p.Alive {
		return false
	}
	p.Score = 0
	p.Direction = Point{}
	p.Snake = []Point{respawnCell(p, r.members, r.settings)}
	p.Food = regenerateFood(p, r.settings)
	p.Alive = true
	p.send(&Event{Kind: EventPlayerRespawned, RoomID: r.ID, Player: p.summary()})
	r.broadcastExceptLocked(p, &Event{
		Kind:   EventPeerRespawned,
		RoomID: r.ID,
		Player: p.summary(),
	})
	r.log.Debug().Str("room_id", r.ID).Str("player", p.Name).Msg("player respawned")
	return true
}

// RelayMove forwards a direction change to the rest of a running match.
func (r *Room) RelayMove(p *Player, token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	view := p.summary()
	view.Direction = token
	r.broadcastExceptLocked(p, &Event{Kind: EventPlayerMoved, RoomID: r.ID, Player: view})
}

// Shutdown cancels the loop regardless of state.
func (r *Room) Shutdown() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLoopLocked()
}

func (r *Room) startLoopLocked() {
	stop := make(chan struct{})
	r.stop = stop
	go r.run(stop)
}

func (r *Room) stopLoopLocked() {
	if r.stop != nil {
		close(r.stop)
		r.stop = nil
	}
}

func (r *Room) run(stop chan struct{}) {
	timer := time.NewTimer(r.interval())
	defer timer.Stop()
	for {
		select {
		case <-stop:
			return
		case <-timer.C:
		}
		if r.tick(stop) {
			return
		}
		timer.Reset(r.interval())
	}
}

// tick advances the room once. It returns true when the loop must exit,
// either because the match ended or because the loop was cancelled between
// the timer firing and the lock being taken.
func (r *Room) tick(stop chan struct{}) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != RoomRunning || r.stop != stop {
		return true
	}
	alive := stepPlayers(r.members, r.settings)
	r.broadcastExceptLocked(nil, &Event{
		Kind:    EventGameUpdate,
		RoomID:  r.ID,
		Players: r.snapshotLocked(),
	})
	if alive == 0 {
		r.finishLocked()
		return true
	}
	return false
}

func (r *Room) finishLocked() {
	r.stopLoopLocked()
	r.state = RoomEnded
	if !r.solo {
		r.broadcastExceptLocked(nil, &Event{
			Kind:    EventMatchEnded,
			RoomID:  r.ID,
			Players: rankMembers(r.members),
		})
		r.log.Info().Str("room_id", r.ID).Msg("match ended")
	}
}

func (r *Room) interval() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	iv := r.settings.TickInterval
	if r.solo && len(r.members) == 1 && r.settings.SpeedupEvery > 0 {
		steps := r.members[0].Score / r.settings.SpeedupEvery
		iv -= time.Duration(steps) * r.settings.SpeedupStep
		if iv < r.settings.MinTickInterval {
			iv = r.settings.MinTickInterval
		}
	}
	return iv
}

func (r *Room) snapshotLocked() []PlayerView {
	views := make([]PlayerView, 0, len(r.members))
	for _, m := range r.members {
		views = append(views, m.summary())
	}
	return views
}

// broadcastExceptLocked fans an event out to every member but skip. Sends are
// non-blocking; per-member ordering matches tick order because all broadcasts
// happen under the room lock.
func (r *Room) broadcastExceptLocked(skip *Player, ev *Event) {
	for _, m := range r.members {
		if m == skip {
			continue
		}
		m.send(ev)
	}
}
