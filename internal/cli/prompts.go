package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dianbrown/SpellStack/internal/domain"

	"github.com/peterh/liner"
)

// PromptMove asks the player to pick one of their legal moves by number.
func PromptMove(line *liner.State, moves []domain.Move, hand []domain.Card) (domain.Move, error) {
	for i, m := range moves {
		C.Prompt.Printf("  %d) %s\n", i+1, DescribeMove(m, hand))
	}

	for {
		input, err := line.Prompt("Your move> ")
		if err != nil {
			if err == liner.ErrPromptAborted || err == io.EOF {
				return domain.Move{}, fmt.Errorf("input aborted")
			}
			return domain.Move{}, err
		}

		choice, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil || choice < 1 || choice > len(moves) {
			C.Warn.Printf("Enter a number between 1 and %d.\n", len(moves))
			continue
		}
		line.AppendHistory(input)
		return moves[choice-1], nil
	}
}
