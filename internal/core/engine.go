package core

import "sort"

// stepPlayers advances every listed player by one tick and returns how many
// are alive afterwards. The caller holds the lock serializing access to the
// players' game state.
//
// Movement runs in two phases so the outcome never depends on iteration
// order: first every moving head is computed from that player's own pre-move
// state, then each head is resolved against walls, the player's own pre-move
// body, every other pre-tick-alive player's pre-move body, and the other
// computed heads. Two heads landing on the same cell kill both players.
func stepPlayers(players []*Player, s Settings) (alive int) {
	type move struct {
		p    *Player
		head Point
	}

	moves := make([]move, 0, len(players))
	for _, p := range players {
		if !p.Alive || p.Direction == (Point{}) {
			continue
		}
		moves = append(moves, move{p: p, head: p.head().Add(p.Direction)})
	}

	dead := make(map[*Player]bool, len(moves))
	for _, m := range moves {
		switch {
		case !inBounds(m.head, s.TileCount):
			dead[m.p] = true
		case containsPoint(m.p.Snake, m.head):
			dead[m.p] = true
		default:
			for _, other := range players {
				if other == m.p || !other.Alive {
					continue
				}
				if containsPoint(other.Snake, m.head) {
					dead[m.p] = true
					break
				}
			}
			if !dead[m.p] {
				for _, om := range moves {
					if om.p != m.p && om.head == m.head {
						dead[m.p] = true
						break
					}
				}
			}
		}
	}

	for _, m := range moves {
		if dead[m.p] {
			m.p.Alive = false
			continue
		}
		m.p.Snake = append([]Point{m.head}, m.p.Snake...)
		if m.head == m.p.Food {
			m.p.Score += s.FoodReward
			m.p.Food = regenerateFood(m.p, s)
		} else {
			m.p.Snake = m.p.Snake[:len(m.p.Snake)-1]
		}
	}

	for _, p := range players {
		if p.Alive {
			alive++
		}
	}
	return alive
}

// regenerateFood places new food anywhere off the eating player's own
// post-move body. Other players' bodies are fair game: each player has a
// private food item.
func regenerateFood(p *Player, s Settings) Point {
	return randomFreeCell(s.TileCount, s.TileCount*s.TileCount, func(c Point) bool {
		return containsPoint(p.Snake, c)
	})
}

// respawnCell samples a cell avoiding every other alive player's body,
// accepting the last candidate once the attempt budget is spent.
func respawnCell(self *Player, players []*Player, s Settings) Point {
	return randomFreeCell(s.TileCount, s.RespawnAttempts, func(c Point) bool {
		for _, other := range players {
			if other == self || !other.Alive {
				continue
			}
			if containsPoint(other.Snake, c) {
				return true
			}
		}
		return false
	})
}

// applyDirection sets a direction unless the player is dead or the move
// would reverse straight into the neck. The caller holds whichever lock owns
// the player's game state.
func applyDirection(p *Player, d Point) bool {
	if !p.Alive || len(p.Snake) == 0 {
		return false
	}
	if len(p.Snake) > 1 && p.head().Add(d) == p.Snake[1] {
		return false
	}
	p.Direction = d
	return true
}

// rankMembers orders members by score descending; ties keep join order.
func rankMembers(members []*Player) []PlayerView {
	ranked := make([]PlayerView, 0, len(members))
	for _, m := range members {
		ranked = append(ranked, m.rosterEntry())
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}
