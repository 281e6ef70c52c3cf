package domain

import (
	"errors"
	"fmt"
)

// ErrInsufficientCards is returned when a deal asks for more cards than the
// deck holds.
var ErrInsufficientCards = errors.New("not enough cards in deck to deal")

// NewDeck produces the full 108-card catalog in insertion order: per color one
// 0, two each of 1-9, two each of skip/reverse/draw-two, then 4 wild and 4
// wild-draw-four. The caller shuffles.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	id := 0
	next := func() string {
		s := fmt.Sprintf("card-%d", id)
		id++
		return s
	}

	for _, color := range SuitColors {
		deck = append(deck, Card{ID: next(), Color: color, Kind: KindNumber, Value: 0})

		for value := 1; value <= 9; value++ {
			for copies := 0; copies < 2; copies++ {
				deck = append(deck, Card{ID: next(), Color: color, Kind: KindNumber, Value: value})
			}
		}

		for _, kind := range []Kind{KindSkip, KindReverse, KindDrawTwo} {
			for copies := 0; copies < 2; copies++ {
				deck = append(deck, Card{ID: next(), Color: color, Kind: kind})
			}
		}
	}

	for i := 0; i < 4; i++ {
		deck = append(deck, Card{ID: next(), Color: ColorWild, Kind: KindWild})
	}
	for i := 0; i < 4; i++ {
		deck = append(deck, Card{ID: next(), Color: ColorWild, Kind: KindWildDrawFour})
	}

	return deck
}

// DealCards deals perPlayer cards to each player id by popping off the deck
// end, and returns the hands plus the remaining deck. The input deck is not
// mutated. No card ends up in two hands or in both a hand and the remainder.
func DealCards(deck []Card, playerIDs []string, perPlayer int) (map[string][]Card, []Card, error) {
	remaining := make([]Card, len(deck))
	copy(remaining, deck)

	hands := make(map[string][]Card, len(playerIDs))
	for _, id := range playerIDs {
		hands[id] = []Card{}
	}

	for round := 0; round < perPlayer; round++ {
		for _, id := range playerIDs {
			if len(remaining) == 0 {
				return nil, nil, ErrInsufficientCards
			}
			card := remaining[len(remaining)-1]
			remaining = remaining[:len(remaining)-1]
			hands[id] = append(hands[id], card)
		}
	}

	return hands, remaining, nil
}

// CardPoints is the scoring value of a single card: face value for numbers,
// 20 for skip/reverse/draw-two, 50 for wild types.
func CardPoints(c Card) int {
	switch c.Kind {
	case KindNumber:
		return c.Value
	case KindSkip, KindReverse, KindDrawTwo:
		return 20
	case KindWild, KindWildDrawFour:
		return 50
	default:
		return 0
	}
}

// HandScore sums card points over a hand; an empty hand scores 0.
func HandScore(hand []Card) int {
	total := 0
	for _, c := range hand {
		total += CardPoints(c)
	}
	return total
}
