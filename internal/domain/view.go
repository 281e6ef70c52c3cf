package domain

// HandView is what a viewer learns about one hand: always the count, the
// cards only for their own seat.
type HandView struct {
	Count int    `json:"count"`
	Cards []Card `json:"cards,omitempty"`
}

// RedactedState is the projection of a GameState that is safe to cross the
// trust boundary to a client. It carries no draw-pile contents, no other
// player's cards, and no seed (the seed reconstructs the draw pile).
type RedactedState struct {
	ID              string    `json:"id"`
	Phase           Phase     `json:"phase"`
	Players         []Player  `json:"players"`
	CurrentPlayerID string    `json:"current_player_id"`
	Direction       Direction `json:"direction"`

	TopCard      Card  `json:"top_card"`
	CurrentColor Color `json:"current_color"`

	DrawPileSize int    `json:"draw_pile_size"`
	DiscardPile  []Card `json:"discard_pile"`

	Hands map[string]HandView `json:"hands"`

	DrawCount        int   `json:"draw_count"`
	CanPlayDrawnCard bool  `json:"can_play_drawn_card"`
	LastDrawnCard    *Card `json:"last_drawn_card,omitempty"`

	Settings Settings `json:"settings"`
}

// RedactedView projects the state for one viewer. An empty viewerID produces
// a spectator view with every hand hidden. The drawn-card reference is
// private to the player who drew it.
func RedactedView(s *GameState, viewerID string) RedactedState {
	players := make([]Player, len(s.Players))
	copy(players, s.Players)

	discard := make([]Card, len(s.DiscardPile))
	copy(discard, s.DiscardPile)

	hands := make(map[string]HandView, len(s.Players))
	for _, p := range s.Players {
		hv := HandView{Count: len(s.Hands[p.ID])}
		if p.ID == viewerID {
			cards := make([]Card, len(s.Hands[p.ID]))
			copy(cards, s.Hands[p.ID])
			hv.Cards = cards
		}
		hands[p.ID] = hv
	}

	var drawn *Card
	if s.LastDrawnCard != nil && s.CurrentPlayerID == viewerID {
		c := *s.LastDrawnCard
		drawn = &c
	}

	return RedactedState{
		ID:               s.ID,
		Phase:            s.Phase,
		Players:          players,
		CurrentPlayerID:  s.CurrentPlayerID,
		Direction:        s.Direction,
		TopCard:          s.TopCard,
		CurrentColor:     s.CurrentColor,
		DrawPileSize:     len(s.DrawPile),
		DiscardPile:      discard,
		Hands:            hands,
		DrawCount:        s.DrawCount,
		CanPlayDrawnCard: s.CanPlayDrawnCard,
		LastDrawnCard:    drawn,
		Settings:         s.Settings,
	}
}
