package domain

const (
	// DeckSize is the fixed catalog size: 25 cards per color plus 8 wilds.
	DeckSize = 108
	// HandSize is the number of cards dealt to each player.
	HandSize = 7
	// MinPlayers and MaxPlayers bound the seat count for a game.
	MinPlayers = 2
	MaxPlayers = 4
)
