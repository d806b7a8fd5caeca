package server

import (
	"time"

	"two-thirds/internal/game"
)

// snapshot is the state payload served to API and websocket clients. The
// host token never appears here, and player numbers stay hidden until the
// room is revealed.
func snapshot(room *Room, players []Player) map[string]any {
	playerViews := make([]map[string]any, 0, len(players))
	for _, player := range players {
		view := map[string]any{
			"id":        player.ID,
			"name":      player.Name,
			"submitted": player.Number != nil,
			"joined_at": player.CreatedAt.Format(time.RFC3339),
		}
		if room.Status == statusRevealed && player.Number != nil {
			view["number"] = *player.Number
		}
		playerViews = append(playerViews, view)
	}

	state := map[string]any{
		"room": map[string]any{
			"code":       room.Code,
			"status":     room.Status,
			"created_at": room.CreatedAt.Format(time.RFC3339),
		},
		"players": playerViews,
	}

	if room.Status == statusRevealed {
		state["results"] = resultView(players)
	}
	return state
}

func resultView(players []Player) map[string]any {
	result := game.Compute(entriesFor(players))
	winners := make([]map[string]any, 0, len(result.Winners))
	for _, winner := range result.Winners {
		winners = append(winners, map[string]any{
			"player_id": winner.PlayerID,
			"name":      winner.Name,
			"number":    winner.Number,
			"distance":  game.Distance(winner, result),
		})
	}
	return map[string]any{
		"average":    result.Average,
		"two_thirds": result.TwoThirds,
		"winners":    winners,
	}
}
