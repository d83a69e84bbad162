package http

import (
	"encoding/json"

	"github.com/vovakirdan/snake-arena-server/internal/core"
	"github.com/vovakirdan/snake-arena-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error, error) {
	switch inbound.Type {
	case proto.InboundTypeJoinGame:
		var join proto.JoinGameData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind: core.CommandJoinGame,
			Name: join.PlayerName,
			Mode: core.GameMode(join.GameMode),
		}, nil, nil
	case proto.InboundTypeMove:
		var move proto.MoveData
		if err := json.Unmarshal(inbound.Data, &move); err != nil {
			return nil, nil, err
		}
		if move.Direction == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "direction is required"}, nil
		}
		return &core.Command{
			Kind:      core.CommandMove,
			Direction: move.Direction,
		}, nil, nil
	case proto.InboundTypeStartGame:
		return &core.Command{Kind: core.CommandStartGame}, nil, nil
	case proto.InboundTypeGameOver:
		var over proto.GameOverData
		if err := json.Unmarshal(inbound.Data, &over); err != nil {
			return nil, nil, err
		}
		return &core.Command{
			Kind:  core.CommandGameOver,
			Score: over.Score,
		}, nil, nil
	case proto.InboundTypeRespawn:
		return &core.Command{Kind: core.CommandRespawn}, nil, nil
	case proto.InboundTypeLeave:
		return &core.Command{Kind: core.CommandLeaveGame}, nil, nil
	default:
		return nil, &proto.Error{Code: "invalid_message", Msg: "unknown message type"}, nil
	}
}

func toCells(points []core.Point) []proto.Cell {
	cells := make([]proto.Cell, len(points))
	for i, p := range points {
		cells[i] = proto.Cell{X: p.X, Y: p.Y}
	}
	return cells
}

func toGamePlayer(v core.PlayerView) proto.GamePlayer {
	return proto.GamePlayer{
		ID:    v.ID,
		Name:  v.Name,
		Snake: toCells(v.Snake),
		Food:  proto.Cell{X: v.Food.X, Y: v.Food.Y},
		Score: v.Score,
		Alive: v.Alive,
	}
}

func toGamePlayers(views []core.PlayerView) []proto.GamePlayer {
	players := make([]proto.GamePlayer, len(views))
	for i, v := range views {
		players[i] = toGamePlayer(v)
	}
	return players
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventPlayerJoined:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPlayerJoined,
			Data: proto.PlayerJoinedData{
				PlayerID:   event.Player.ID,
				PlayerName: event.Player.Name,
				GameMode:   string(event.Mode),
			},
		}
	case core.EventPlayerCount:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPlayerCount,
			Data: proto.PlayerCountData{
				Total:       event.Counts.Total,
				Multiplayer: event.Counts.Multiplayer,
			},
		}
	case core.EventRoomUpdate:
		players := make([]proto.RoomPlayer, len(event.Players))
		for i, v := range event.Players {
			players[i] = proto.RoomPlayer{ID: v.ID, Name: v.Name, Score: v.Score, Alive: v.Alive}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventRoomUpdate,
			Data:  proto.RoomUpdateData{RoomID: event.RoomID, Players: players},
		}
	case core.EventGameStarted:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventGameStarted,
			Data: proto.GameStartedData{
				GameMode: string(event.Mode),
				InitialState: proto.InitialState{
					Snake: toCells(event.Player.Snake),
					Food:  proto.Cell{X: event.Player.Food.X, Y: event.Player.Food.Y},
					Score: event.Player.Score,
				},
			},
		}
	case core.EventMatchStarted:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMatchStarted,
			Data:  proto.MatchStartedData{Players: toGamePlayers(event.Players)},
		}
	case core.EventGameUpdate:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventGameUpdate,
			Data:  proto.GameUpdateData{Players: toGamePlayers(event.Players)},
		}
	case core.EventPlayerMoved:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPlayerMoved,
			Data: proto.PlayerMovedData{
				PlayerID:  event.Player.ID,
				Direction: event.Player.Direction,
				Snake:     toCells(event.Player.Snake),
			},
		}
	case core.EventPlayerDied:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPlayerDied,
			Data: proto.PlayerDiedData{
				PlayerID:   event.Player.ID,
				PlayerName: event.Player.Name,
				Score:      event.Player.Score,
			},
		}
	case core.EventScoreSaved:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventScoreSaved,
			Data:  proto.ScoreSavedData{Score: event.Score},
		}
	case core.EventPlayerRespawned:
		food := proto.Cell{X: event.Player.Food.X, Y: event.Player.Food.Y}
		score := event.Player.Score
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPlayerRespawned,
			Data: proto.PlayerRespawnedData{
				PlayerID: event.Player.ID,
				Snake:    toCells(event.Player.Snake),
				Food:     &food,
				Score:    &score,
			},
		}
	case core.EventPeerRespawned:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPlayerRespawned,
			Data: proto.PlayerRespawnedData{
				PlayerID: event.Player.ID,
				Name:     event.Player.Name,
				Snake:    toCells(event.Player.Snake),
			},
		}
	case core.EventPlayerDisconnected:
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventPlayerDisconnected,
			Data: proto.PlayerDisconnectedData{
				PlayerID:   event.Player.ID,
				PlayerName: event.Player.Name,
			},
		}
	case core.EventMatchEnded:
		results := make([]proto.MatchResult, len(event.Players))
		for i, v := range event.Players {
			results[i] = proto.MatchResult{Name: v.Name, Score: v.Score}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeEvent,
			Event: proto.EventMatchEnded,
			Data:  proto.MatchEndedData{Results: results},
		}
	case core.EventError:
		if event.Error == nil {
			return proto.Outbound{Type: proto.OutboundTypeError, Error: &proto.Error{Code: "unknown", Msg: "unknown error"}}
		}
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{Type: proto.OutboundTypeEvent}
	}
}
