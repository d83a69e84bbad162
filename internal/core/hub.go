package core

import (
	"context"
	"sort"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/snake-arena-server/internal/store"
)

const minNameLen = 2

// saveTimeout bounds the fire-and-forget score write so a wedged store can
// never pile up goroutines forever.
const saveTimeout = 5 * time.Second

// Hub is the session registry: the single source of truth for who is online,
// which player sits in which room, and the matchmaker seating new
// multiplayer joins.
//
// Registry state (the client map, the room list, player identity and
// bestScore) is guarded by mu. Per-game state is guarded by the owning
// room's lock. The hub always acquires mu before a room lock, and a room's
// tick loop takes only its own lock, so event handling and ticking never
// interleave on the same player.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Player
	rooms   []*Room // creation order; the matchmaker fills oldest first

	settings Settings
	scores   store.ScoreStore
	log      zerolog.Logger
}

// NewHub constructs the registry. The score store may be nil in tests;
// persistence is then skipped.
func NewHub(settings Settings, scores store.ScoreStore, logger *zerolog.Logger) *Hub {
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Hub{
		clients:  make(map[string]*Player),
		settings: settings,
		scores:   scores,
		log:      l,
	}
}

// Register adds a freshly accepted connection to the registry.
func (h *Hub) Register(p *Player) {
	h.mu.Lock()
	h.clients[p.ID] = p
	h.mu.Unlock()
	h.log.Debug().Str("player_id", p.ID).Msg("connection registered")
}

// Unregister removes a connection entirely, tearing down room membership and
// closing the outbound channel.
func (h *Hub) Unregister(p *Player) {
	h.removePlayer(p, true)
	h.log.Debug().Str("player_id", p.ID).Msg("connection unregistered")
}

// Dispatch runs one client command to completion. Every command is
// best-effort: invalid or stale requests degrade to a no-op or an error
// event on the issuing client, never a fault that could reach a room loop.
func (h *Hub) Dispatch(p *Player, cmd *Command) {
	switch cmd.Kind {
	case CommandJoinGame:
		h.JoinGame(p, cmd.Name, cmd.Mode)
	case CommandMove:
		h.Move(p, cmd.Direction)
	case CommandStartGame:
		h.StartGame(p)
	case CommandGameOver:
		h.GameOver(p, cmd.Score)
	case CommandRespawn:
		h.Respawn(p)
	case CommandLeaveGame:
		h.Leave(p)
	}
}

// JoinGame validates the name, initializes the player at the spawn cell, and
// seats multiplayer joins through the matchmaker.
func (h *Hub) JoinGame(p *Player, name string, mode GameMode) {
	h.mu.Lock()
	if p.joined() {
		h.mu.Unlock()
		p.send(&Event{Kind: EventError, Error: coreError(ErrCodeAlreadyJoined, ErrAlreadyJoined.Error())})
		return
	}
	if utf8.RuneCountInString(name) < minNameLen {
		h.mu.Unlock()
		p.send(&Event{Kind: EventError, Error: coreError(ErrCodeInvalidName, ErrInvalidName.Error())})
		return
	}
	if mode != ModeMultiplayer {
		mode = ModeSingleplayer
	}
	p.Name = name
	p.Mode = mode
	p.reset(h.settings.spawnCell(), h.settings)
	var room *Room
	if mode == ModeMultiplayer {
		room = h.assignRoomLocked(p)
	}
	h.mu.Unlock()

	if room != nil {
		room.BroadcastRoster()
	}
	p.send(&Event{Kind: EventPlayerJoined, Mode: mode, Player: PlayerView{ID: p.ID, Name: name}})
	h.broadcastCounts()
	h.log.Info().Str("player_id", p.ID).Str("name", name).Str("mode", string(mode)).Msg("player joined")
}

// assignRoomLocked is the matchmaker: first-fit over rooms in creation
// order, so the oldest open room fills first; a new room is created only
// when no open room has a seat.
func (h *Hub) assignRoomLocked(p *Player) *Room {
	for _, r := range h.rooms {
		if r.Join(p) {
			p.room = r
			return r
		}
	}
	r := newRoom(uuid.NewString(), false, h.settings, &h.log)
	r.Join(p)
	p.room = r
	h.rooms = append(h.rooms, r)
	h.log.Info().Str("room_id", r.ID).Msg("room created")
	return r
}

// Move applies a direction change. Reversing straight into the neck is
// ignored, identically for solo and multiplayer play.
func (h *Hub) Move(p *Player, token string) {
	d, ok := ParseDirection(token)
	if !ok {
		return
	}
	h.mu.Lock()
	if !p.joined() {
		h.mu.Unlock()
		return
	}
	room := p.room
	mode := p.Mode
	if room == nil {
		// Not seated yet: pre-game state is registry-owned.
		applyDirection(p, d)
		h.mu.Unlock()
		return
	}
	h.mu.Unlock()
	if room.SetDirection(p, d) && mode == ModeMultiplayer {
		room.RelayMove(p, token)
	}
}

// StartGame begins a solo board, or requests a match start: the first
// request from any member arms the whole room.
func (h *Hub) StartGame(p *Player) {
	h.mu.Lock()
	if !p.joined() {
		h.mu.Unlock()
		return
	}
	if p.Mode == ModeSingleplayer {
		room := p.room
		if room == nil {
			room = newSoloRoom(uuid.NewString(), p, h.settings, &h.log)
			p.room = room
		}
		h.mu.Unlock()
		p.send(room.StartSolo())
		return
	}
	room := p.room
	h.mu.Unlock()
	if room != nil {
		room.Start()
	}
}

// GameOver records a finished run: bestScore is monotonic, the score is
// persisted without blocking the event path, and room peers learn of the
// death. The match itself continues until every member is dead.
func (h *Hub) GameOver(p *Player, score int) {
	h.mu.Lock()
	if !p.joined() || score < 0 {
		h.mu.Unlock()
		return
	}
	if score > p.BestScore {
		p.BestScore = score
	}
	p.LastGameAt = time.Now()
	room := p.room
	name := p.Name
	mode := p.Mode
	if room == nil {
		p.Alive = false
	}
	h.mu.Unlock()

	if room != nil {
		room.MarkDead(p, score)
	}
	if h.scores != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
			defer cancel()
			if _, err := h.scores.SaveScore(ctx, name, score, string(mode)); err != nil {
				h.log.Warn().Err(err).Str("player", name).Int("score", score).Msg("failed to persist score")
			}
		}()
	}
	// Acknowledged optimistically; a store failure is logged, not surfaced.
	p.send(&Event{Kind: EventScoreSaved, Score: score})
}

// Respawn re-enters a dead multiplayer player into their running match.
func (h *Hub) Respawn(p *Player) {
	h.mu.Lock()
	room := p.room
	mode := p.Mode
	h.mu.Unlock()
	if mode != ModeMultiplayer || room == nil {
		return
	}
	room.Respawn(p)
}

// Leave detaches the player from their room and the registry but keeps the
// connection open, allowing a fresh join on the same socket.
func (h *Hub) Leave(p *Player) {
	h.removePlayer(p, false)
}

func (h *Hub) removePlayer(p *Player, disconnect bool) {
	h.mu.Lock()
	room := p.room
	p.room = nil
	wasJoined := p.joined()
	if disconnect {
		delete(h.clients, p.ID)
	}
	h.mu.Unlock()

	// Leave the room before touching game state: while the player is seated,
	// those fields belong to the room lock, and peers need the name for the
	// disconnect notice.
	if room != nil && room.Remove(p) == 0 {
		h.dropRoom(room)
	}

	h.mu.Lock()
	p.Name = ""
	p.Mode = ""
	p.Alive = false
	h.mu.Unlock()

	if disconnect {
		p.close()
	}
	if wasJoined {
		h.broadcastCounts()
	}
}

// dropRoom deletes an emptied room from the matchmaking list. Its loop is
// already cancelled by the last Remove.
func (h *Hub) dropRoom(room *Room) {
	h.mu.Lock()
	kept := h.rooms[:0]
	for _, r := range h.rooms {
		if r != room {
			kept = append(kept, r)
		}
	}
	h.rooms = kept
	h.mu.Unlock()
	h.log.Info().Str("room_id", room.ID).Msg("room deleted, no players left")
}

// broadcastCounts pushes the global online counters to every connection.
func (h *Hub) broadcastCounts() {
	h.mu.Lock()
	defer h.mu.Unlock()
	var total, multi int
	for _, c := range h.clients {
		if !c.joined() {
			continue
		}
		total++
		if c.Mode == ModeMultiplayer {
			multi++
		}
	}
	ev := &Event{Kind: EventPlayerCount, Counts: Counts{Total: total, Multiplayer: multi}}
	for _, c := range h.clients {
		c.send(ev)
	}
}

// SessionScore is one row of the in-memory session leaderboard.
type SessionScore struct {
	Name  string    `json:"name"`
	Score int       `json:"score"`
	At    time.Time `json:"at"`
}

// SessionScores lists connected players who finished at least one run,
// best-first, capped at limit.
func (h *Hub) SessionScores(limit int) []SessionScore {
	h.mu.Lock()
	scores := make([]SessionScore, 0, len(h.clients))
	for _, c := range h.clients {
		if c.joined() && c.BestScore > 0 {
			scores = append(scores, SessionScore{Name: c.Name, Score: c.BestScore, At: c.LastGameAt})
		}
	}
	h.mu.Unlock()
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}

// Shutdown stops every room loop and closes every client channel. Called
// once on process exit, after the HTTP server has stopped accepting.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	rooms := make([]*Room, len(h.rooms))
	copy(rooms, h.rooms)
	clients := make([]*Player, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
		if c.room != nil && c.room.solo {
			rooms = append(rooms, c.room)
		}
	}
	h.mu.Unlock()

	for _, r := range rooms {
		r.Shutdown()
	}
	for _, c := range clients {
		c.close()
	}
	h.log.Info().Int("connections", len(clients)).Int("rooms", len(rooms)).Msg("hub drained")
}
