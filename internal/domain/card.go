package domain

import "fmt"

// Color is a card suit or the wild marker.
type Color string

const (
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorYellow Color = "yellow"
	// ColorWild marks wild-type cards; it is never a valid active color.
	ColorWild Color = "wild"
	// ColorNone is the zero value, used on moves that carry no color choice.
	ColorNone Color = ""
)

// SuitColors are the four concrete colors, in the order wild color choices are
// enumerated. Keep the order stable: legal-move ordering feeds the bots.
var SuitColors = [4]Color{ColorRed, ColorGreen, ColorBlue, ColorYellow}

// Kind is the card type.
type Kind string

const (
	KindNumber       Kind = "number"
	KindSkip         Kind = "skip"
	KindReverse      Kind = "reverse"
	KindDrawTwo      Kind = "draw_two"
	KindWild         Kind = "wild"
	KindWildDrawFour Kind = "wild_draw_four"
)

// Card is a single SpellStack card. Value is only meaningful for number cards.
// Cards are immutable once created and identified by ID.
type Card struct {
	ID    string `json:"id"`
	Color Color  `json:"color"`
	Kind  Kind   `json:"kind"`
	Value int    `json:"value"`
}

// IsWild reports whether the card is a wild or wild-draw-four.
func (c Card) IsWild() bool {
	return c.Kind == KindWild || c.Kind == KindWildDrawFour
}

func (c Card) String() string {
	if c.Kind == KindNumber {
		return fmt.Sprintf("%s %d", c.Color, c.Value)
	}
	if c.IsWild() {
		return string(c.Kind)
	}
	return fmt.Sprintf("%s %s", c.Color, c.Kind)
}
