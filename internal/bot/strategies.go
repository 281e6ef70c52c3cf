package bot

import "github.com/dianbrown/SpellStack/internal/domain"

// EasyBot plays a uniformly random legal move.
type EasyBot struct{}

func (b *EasyBot) ChooseMove(state *domain.GameState, playerID string, rng *domain.RNG) (domain.Move, bool) {
	moves := domain.LegalMoves(state, playerID)
	if len(moves) == 0 {
		return domain.Move{}, false
	}
	move, _ := domain.Choice(rng, moves)
	return move, true
}

// MediumBot works down an ordered heuristic: close out a one-card hand, then
// disrupt with action cards, then keep the active color, then spend wilds on
// the color it holds most of, then any other play, then whatever is left
// (usually a draw).
type MediumBot struct{}

func (b *MediumBot) ChooseMove(state *domain.GameState, playerID string, rng *domain.RNG) (domain.Move, bool) {
	moves := domain.LegalMoves(state, playerID)
	if len(moves) == 0 {
		return domain.Move{}, false
	}
	return chooseMediumMove(state, playerID, moves, rng), true
}

// HardBot runs the medium heuristic but switches to pure disruption whenever
// an opponent is within two cards of going out.
type HardBot struct{}

func (b *HardBot) ChooseMove(state *domain.GameState, playerID string, rng *domain.RNG) (domain.Move, bool) {
	moves := domain.LegalMoves(state, playerID)
	if len(moves) == 0 {
		return domain.Move{}, false
	}

	// Run the medium pick first so the RNG stream stays aligned with the
	// medium tier for identical histories.
	mediumMove := chooseMediumMove(state, playerID, moves, rng)

	hand := state.Hands[playerID]
	minOpponent := -1
	for _, p := range state.Players {
		if p.ID == playerID {
			continue
		}
		if minOpponent == -1 || p.HandSize < minOpponent {
			minOpponent = p.HandSize
		}
	}

	if minOpponent != -1 && minOpponent <= 2 {
		disruptive := filterPlays(moves, hand, func(c domain.Card) bool {
			switch c.Kind {
			case domain.KindDrawTwo, domain.KindWildDrawFour, domain.KindSkip, domain.KindReverse:
				return true
			}
			return false
		})
		if len(disruptive) > 0 {
			move, _ := domain.Choice(rng, disruptive)
			return move, true
		}
	}

	return mediumMove, true
}

func chooseMediumMove(state *domain.GameState, playerID string, moves []domain.Move, rng *domain.RNG) domain.Move {
	hand := state.Hands[playerID]

	// Down to one card: any play lines up the win.
	if len(hand) == 1 {
		if plays := playMoves(moves); len(plays) > 0 {
			move, _ := domain.Choice(rng, plays)
			return move
		}
	}

	actions := filterPlays(moves, hand, func(c domain.Card) bool {
		switch c.Kind {
		case domain.KindSkip, domain.KindReverse, domain.KindDrawTwo, domain.KindWildDrawFour:
			return true
		}
		return false
	})
	if len(actions) > 0 {
		move, _ := domain.Choice(rng, actions)
		return move
	}

	colorMatches := filterPlays(moves, hand, func(c domain.Card) bool {
		return c.Color == state.CurrentColor
	})
	if len(colorMatches) > 0 {
		move, _ := domain.Choice(rng, colorMatches)
		return move
	}

	wilds := filterPlays(moves, hand, func(c domain.Card) bool {
		return c.IsWild()
	})
	if len(wilds) > 0 {
		move, _ := domain.Choice(rng, wilds)
		move.ChosenColor = bestColorChoice(hand, state.CurrentColor)
		return move
	}

	if plays := playMoves(moves); len(plays) > 0 {
		move, _ := domain.Choice(rng, plays)
		return move
	}

	move, _ := domain.Choice(rng, moves)
	return move
}

func playMoves(moves []domain.Move) []domain.Move {
	var out []domain.Move
	for _, m := range moves {
		if m.Type == domain.MovePlayCard {
			out = append(out, m)
		}
	}
	return out
}

// filterPlays keeps play-card moves whose card satisfies keep.
func filterPlays(moves []domain.Move, hand []domain.Card, keep func(domain.Card) bool) []domain.Move {
	var out []domain.Move
	for _, m := range moves {
		if m.Type != domain.MovePlayCard {
			continue
		}
		if c, ok := findCard(hand, m.CardID); ok && keep(c) {
			out = append(out, m)
		}
	}
	return out
}

func findCard(hand []domain.Card, cardID string) (domain.Card, bool) {
	for _, c := range hand {
		if c.ID == cardID {
			return c, true
		}
	}
	return domain.Card{}, false
}

// bestColorChoice returns the suit the hand holds most of, ties broken toward
// the current active color.
func bestColorChoice(hand []domain.Card, currentColor domain.Color) domain.Color {
	counts := map[domain.Color]int{}
	for _, c := range hand {
		if !c.IsWild() {
			counts[c.Color]++
		}
	}

	best := currentColor
	max := counts[currentColor]
	for _, color := range domain.SuitColors {
		if counts[color] > max {
			max = counts[color]
			best = color
		}
	}
	return best
}
