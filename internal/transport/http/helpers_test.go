package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/snake-arena-server/internal/config"
	"github.com/vovakirdan/snake-arena-server/internal/core"
	"github.com/vovakirdan/snake-arena-server/internal/proto"
	"github.com/vovakirdan/snake-arena-server/internal/store/sqlite"
)

// envelope mirrors proto.Outbound with the payload left raw so each test can
// decode just the part it asserts on.
type envelope struct {
	Type  string          `json:"type"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
	Error *proto.Error    `json:"error"`
}

type testServer struct {
	ts     *httptest.Server
	hub    *core.Hub
	scores *sqlite.SQLiteStore
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()

	scores, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	cfg := config.Default()
	cfg.Game.TickInterval = time.Hour // event-driven tests advance state explicitly
	logger := zerolog.Nop()
	hub := core.NewHub(core.Settings{
		TileCount:       cfg.Game.TileCount,
		TickInterval:    cfg.Game.TickInterval,
		MinTickInterval: cfg.Game.MinTickInterval,
		SpeedupStep:     cfg.Game.SpeedupStep,
		SpeedupEvery:    cfg.Game.SpeedupEvery,
		MaxPlayers:      cfg.Game.MaxPlayers,
		MinPlayers:      cfg.Game.MinPlayers,
		FoodReward:      cfg.Game.FoodReward,
		RespawnAttempts: cfg.Game.RespawnAttempts,
	}, scores, &logger)

	srv := NewServer(hub, scores, cfg, &logger)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(func() {
		ts.Close()
		hub.Shutdown()
		scores.Close()
	})
	return &testServer{ts: ts, hub: hub, scores: scores}
}

func (s *testServer) wsURL() string {
	return "ws" + strings.TrimPrefix(s.ts.URL, "http") + "/ws"
}

func dialWS(t *testing.T, s *testServer) (*websocket.Conn, context.Context) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	conn, _, err := websocket.Dial(ctx, s.wsURL(), nil)
	if err != nil {
		cancel()
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() {
		conn.Close(websocket.StatusNormalClosure, "test done")
		cancel()
	})
	return conn, ctx
}

func sendMessage(t *testing.T, ctx context.Context, conn *websocket.Conn, msgType string, data any) {
	t.Helper()

	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			t.Fatalf("marshal %s payload: %v", msgType, err)
		}
		raw = b
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: msgType, Data: raw}); err != nil {
		t.Fatalf("write %s: %v", msgType, err)
	}
}

// mustReadEvent reads frames until one carries the wanted event name,
// skipping unrelated broadcasts such as player counts.
func mustReadEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()

	for i := 0; i < 50; i++ {
		var env envelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			t.Fatalf("read while waiting for %q: %v", event, err)
		}
		if env.Type == proto.OutboundTypeError {
			t.Fatalf("unexpected error frame while waiting for %q: %+v", event, env.Error)
		}
		if env.Event == event {
			return env.Data
		}
	}
	t.Fatalf("event %q never arrived", event)
	return nil
}

func mustReadError(t *testing.T, ctx context.Context, conn *websocket.Conn) *proto.Error {
	t.Helper()

	for i := 0; i < 50; i++ {
		var env envelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			t.Fatalf("read while waiting for error frame: %v", err)
		}
		if env.Type == proto.OutboundTypeError {
			if env.Error == nil {
				t.Fatal("error frame without body")
			}
			return env.Error
		}
	}
	t.Fatal("error frame never arrived")
	return nil
}

func joinArena(t *testing.T, ctx context.Context, conn *websocket.Conn, name, mode string) proto.PlayerJoinedData {
	t.Helper()

	sendMessage(t, ctx, conn, proto.InboundTypeJoinGame, proto.JoinGameData{PlayerName: name, GameMode: mode})
	raw := mustReadEvent(t, ctx, conn, proto.EventPlayerJoined)
	var joined proto.PlayerJoinedData
	if err := json.Unmarshal(raw, &joined); err != nil {
		t.Fatalf("decode player-joined: %v", err)
	}
	return joined
}
