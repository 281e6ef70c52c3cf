package domain

// LegalMoves returns every move the given player may submit right now. It is
// the single source of truth for move validity: the bots pick from it and the
// relay rejects anything outside it. An empty result is not an error; it means
// the player simply cannot act (wrong phase or not their turn).
func LegalMoves(s *GameState, playerID string) []Move {
	if s.Phase != PhasePlaying || s.CurrentPlayerID != playerID {
		return nil
	}

	hand := s.Hands[playerID]
	var moves []Move

	// A pending forced draw takes priority over everything else. The player
	// may answer with a stackable draw card when stacking is on; otherwise
	// the only option is to take the cards.
	if s.DrawCount > 0 {
		if s.Settings.StackDrawCards {
			for _, card := range hand {
				switch card.Kind {
				case KindDrawTwo:
					if s.TopCard.Kind == KindDrawTwo || s.TopCard.Kind == KindWildDrawFour {
						moves = append(moves, Move{Type: MovePlayCard, CardID: card.ID})
					}
				case KindWildDrawFour:
					for _, color := range SuitColors {
						moves = append(moves, Move{Type: MovePlayCard, CardID: card.ID, ChosenColor: color})
					}
				}
			}
		}
		if len(moves) == 0 {
			moves = append(moves, Move{Type: MoveDrawCard})
		}
		return moves
	}

	// After a voluntary draw the player may play that card if it fits, and
	// may always pass instead.
	if s.CanPlayDrawnCard && s.LastDrawnCard != nil {
		drawn := *s.LastDrawnCard
		if isCardPlayable(drawn, s.TopCard, s.CurrentColor) {
			if drawn.IsWild() {
				for _, color := range SuitColors {
					moves = append(moves, Move{Type: MovePlayCard, CardID: drawn.ID, ChosenColor: color})
				}
			} else {
				moves = append(moves, Move{Type: MovePlayCard, CardID: drawn.ID})
			}
		}
		moves = append(moves, Move{Type: MovePassTurn})
		return moves
	}

	// Normal turn: every playable card in hand, wilds fanned out per color.
	for _, card := range hand {
		if !isCardPlayable(card, s.TopCard, s.CurrentColor) {
			continue
		}
		if card.IsWild() {
			// Wild-draw-four is only legal when the player holds no other
			// card of the active color.
			if card.Kind == KindWildDrawFour && holdsColorBesides(hand, s.CurrentColor, card.ID) {
				continue
			}
			for _, color := range SuitColors {
				moves = append(moves, Move{Type: MovePlayCard, CardID: card.ID, ChosenColor: color})
			}
		} else {
			moves = append(moves, Move{Type: MovePlayCard, CardID: card.ID})
		}
	}

	if len(moves) == 0 {
		moves = append(moves, Move{Type: MoveDrawCard})
	}

	if len(hand) == 1 && s.Settings.SpellCallRequired {
		moves = append(moves, Move{Type: MoveCallSpell})
	}

	return moves
}

// isCardPlayable reports whether card may land on top of topCard given the
// active color. Wilds always fit; otherwise the color must match, or the kind
// must match (numbers additionally by value).
func isCardPlayable(card, topCard Card, currentColor Color) bool {
	if card.IsWild() {
		return true
	}
	if card.Color == currentColor {
		return true
	}
	if card.Kind == topCard.Kind {
		if card.Kind == KindNumber {
			return card.Value == topCard.Value
		}
		return true
	}
	return false
}

// holdsColorBesides reports whether the hand contains a card of the given
// color other than the card with excludeID.
func holdsColorBesides(hand []Card, color Color, excludeID string) bool {
	for _, c := range hand {
		if c.ID != excludeID && c.Color == color {
			return true
		}
	}
	return false
}

// hasStackableCard reports whether the hand can answer the current forced
// draw: a draw-two on a draw-two/wild-draw-four top, or any wild-draw-four.
func hasStackableCard(hand []Card, topCard Card) bool {
	for _, c := range hand {
		if c.Kind == KindDrawTwo && (topCard.Kind == KindDrawTwo || topCard.Kind == KindWildDrawFour) {
			return true
		}
		if c.Kind == KindWildDrawFour {
			return true
		}
	}
	return false
}
