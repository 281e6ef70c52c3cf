package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dianbrown/SpellStack/internal/domain"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// C holds pre-configured color objects for printing to the console.
var C = struct {
	Info, Warn, Header, Prompt, Win *color.Color
}{
	Info:   color.New(color.FgCyan),
	Warn:   color.New(color.FgHiYellow),
	Header: color.New(color.FgWhite, color.Bold),
	Prompt: color.New(color.FgHiWhite),
	Win:    color.New(color.FgGreen, color.Bold),
}

// suitColors maps card colors to terminal colors.
var suitColors = map[domain.Color]*color.Color{
	domain.ColorRed:    color.New(color.FgRed),
	domain.ColorGreen:  color.New(color.FgGreen),
	domain.ColorBlue:   color.New(color.FgBlue),
	domain.ColorYellow: color.New(color.FgYellow),
	domain.ColorWild:   color.New(color.FgMagenta),
}

// ColorizeCard renders a card in its suit color.
func ColorizeCard(c domain.Card) string {
	if col, ok := suitColors[c.Color]; ok {
		return col.Sprint(c.String())
	}
	return c.String()
}

// ColorizeColor renders a color name in its own color.
func ColorizeColor(c domain.Color) string {
	if col, ok := suitColors[c]; ok {
		return col.Sprint(string(c))
	}
	return string(c)
}

// RenderTable prints the table from one viewer's perspective: the top card,
// the active color, the turn direction and every opponent's card count.
func RenderTable(view domain.RedactedState) {
	C.Header.Println("\n--- Table ---")
	C.Info.Printf("Top card: %s   Active color: %s   Direction: %s\n",
		ColorizeCard(view.TopCard), ColorizeColor(view.CurrentColor), view.Direction)
	if view.DrawCount > 0 {
		C.Warn.Printf("Pending forced draw: %d cards\n", view.DrawCount)
	}
	for _, p := range view.Players {
		marker := "  "
		if p.ID == view.CurrentPlayerID {
			marker = "> "
		}
		C.Info.Printf("%s%s: %d cards\n", marker, p.Name, view.Hands[p.ID].Count)
	}
	C.Info.Printf("Draw pile: %d cards\n", view.DrawPileSize)
}

// RenderHand prints the viewer's own hand, numbered for selection.
func RenderHand(cards []domain.Card) {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = fmt.Sprintf("[%d] %s", i+1, ColorizeCard(c))
	}
	C.Info.Printf("Your hand: %s\n", strings.Join(parts, "  "))
}

// DescribeMove renders a move for selection menus.
func DescribeMove(m domain.Move, hand []domain.Card) string {
	switch m.Type {
	case domain.MovePlayCard:
		label := m.CardID
		for _, c := range hand {
			if c.ID == m.CardID {
				label = ColorizeCard(c)
				break
			}
		}
		if m.ChosenColor != domain.ColorNone {
			return fmt.Sprintf("play %s choosing %s", label, ColorizeColor(m.ChosenColor))
		}
		return fmt.Sprintf("play %s", label)
	case domain.MoveDrawCard:
		return "draw a card"
	case domain.MovePassTurn:
		return "pass"
	case domain.MoveCallSpell:
		return "call spell!"
	default:
		return string(m.Type)
	}
}

// RenderResult prints the round outcome as a score table.
func RenderResult(state *domain.GameState, result domain.Result) {
	C.Header.Println("\n--- ROUND OVER ---")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Player", "Cards Left", "Hand Score"})
	for _, p := range state.Players {
		t.AppendRow(table.Row{p.Name, len(state.Hands[p.ID]), result.Scores[p.ID]})
	}
	t.Render()

	if result.Winner != "" {
		if winner := state.PlayerByID(result.Winner); winner != nil {
			C.Win.Printf("%s wins the round!\n", winner.Name)
		}
	}
}

// RenderStandings prints a win tally over a batch of simulated games.
func RenderStandings(players []domain.PlayerInfo, wins map[string]int, games, unfinished int) {
	C.Header.Println("\n--- STANDINGS ---")

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Player", "Wins", "Win %"})
	for _, p := range players {
		pct := float64(wins[p.ID]) / float64(games) * 100
		t.AppendRow(table.Row{p.Name, wins[p.ID], fmt.Sprintf("%.1f", pct)})
	}
	t.Render()

	if unfinished > 0 {
		C.Warn.Printf("%d of %d games were cut off without a winner\n", unfinished, games)
	}
}
