package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dianbrown/SpellStack/internal/app"
	"github.com/dianbrown/SpellStack/internal/bot"
	"github.com/dianbrown/SpellStack/internal/domain"

	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
)

const humanPlayerID = "you"

// maxStepsPerGame caps runaway games; well-formed bot games finish in far
// fewer moves.
const maxStepsPerGame = 2000

// CLI manages all command-line interactions.
type CLI struct {
	log  *logrus.Logger
	line *liner.State
}

// NewCLI creates a new command-line interface manager.
func NewCLI(log *logrus.Logger) *CLI {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &CLI{
		log:  log,
		line: line,
	}
}

// Run is the main entry point for the CLI application.
func (c *CLI) Run(args []string, seed string, difficulty bot.Difficulty) error {
	defer c.line.Close()
	if len(args) < 1 {
		c.printUsage()
		return errors.New("no command provided")
	}

	switch args[0] {
	case "play":
		opponents := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 || n > 3 {
				c.printUsage()
				return errors.New("opponents must be 1-3")
			}
			opponents = n
		}
		return c.runSoloGame(seed, opponents, difficulty)
	case "simulate":
		games := 10
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n < 1 {
				c.printUsage()
				return errors.New("game count must be positive")
			}
			games = n
		}
		return c.runSimulation(seed, games, difficulty)
	default:
		c.printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func (c *CLI) printUsage() {
	C.Header.Println("Usage:")
	C.Info.Println("  spellstack play [opponents]     play a solo game against 1-3 bots")
	C.Info.Println("  spellstack simulate [games]     run bot-only games and tally winners")
}

// runSoloGame plays one interactive round against bots.
func (c *CLI) runSoloGame(seed string, opponents int, difficulty bot.Difficulty) error {
	players := []domain.PlayerInfo{{ID: humanPlayerID, Name: "You"}}
	agents := make(map[string]*bot.Agent, opponents)
	for i := 0; i < opponents; i++ {
		identity := bot.GetBotIdentity(i)
		players = append(players, domain.PlayerInfo{
			ID:    identity.UserID,
			Name:  identity.DisplayName,
			IsBot: true,
		})
		brain, err := bot.NewBrain(difficulty)
		if err != nil {
			return err
		}
		agents[identity.UserID] = &bot.Agent{
			ID:         identity.UserID,
			Name:       identity.DisplayName,
			Difficulty: difficulty,
			Strategy:   brain,
		}
	}

	svc := app.NewService()
	game, _, err := svc.StartGame(players, seed, nil)
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}
	c.log.WithFields(logrus.Fields{"seed": seed, "players": len(players)}).Debug("game started")

	for step := 0; !domain.IsTerminal(game) && step < maxStepsPerGame; step++ {
		current := game.CurrentPlayerID

		if current == humanPlayerID {
			RenderTable(domain.RedactedView(game, humanPlayerID))
			RenderHand(game.Hands[humanPlayerID])

			moves := domain.LegalMoves(game, humanPlayerID)
			move, err := PromptMove(c.line, moves, game.Hands[humanPlayerID])
			if err != nil {
				return err
			}

			next, events, err := svc.SubmitMove(game, current, move)
			if err != nil {
				C.Warn.Printf("Rejected: %v\n", err)
				continue
			}
			game = next
			c.renderEvents(game, events, humanPlayerID)
			continue
		}

		agent := agents[current]
		move, ok := agent.Play(game)
		if !ok {
			var events []app.Event
			game, events = svc.ResolveForcedDraw(game)
			c.renderEvents(game, events, humanPlayerID)
			continue
		}

		next, events, err := svc.SubmitMove(game, current, move)
		if err != nil {
			return fmt.Errorf("bot %s submitted a rejected move: %w", current, err)
		}
		game = next
		c.renderEvents(game, events, humanPlayerID)
	}

	RenderResult(game, domain.Score(game))
	return nil
}

// renderEvents narrates the moves of other players.
func (c *CLI) renderEvents(game *domain.GameState, events []app.Event, viewerID string) {
	for _, ev := range events {
		switch payload := ev.Payload.(type) {
		case app.CardPlayedPayload:
			name := playerName(game, payload.UserID)
			if payload.ChosenColor != domain.ColorNone {
				C.Info.Printf("%s plays %s and picks %s\n", name, ColorizeCard(payload.Card), ColorizeColor(payload.ChosenColor))
			} else {
				C.Info.Printf("%s plays %s\n", name, ColorizeCard(payload.Card))
			}
		case app.CardsDrawnPayload:
			if payload.Forced {
				C.Info.Printf("%s is forced to draw %d cards\n", playerName(game, payload.UserID), payload.Count)
			} else {
				C.Info.Printf("%s draws a card\n", playerName(game, payload.UserID))
			}
		case app.TurnPassedPayload:
			C.Info.Printf("%s passes\n", playerName(game, payload.UserID))
		case app.SpellCalledPayload:
			C.Warn.Printf("%s calls spell! One card left.\n", playerName(game, payload.UserID))
		}
	}
}

func playerName(game *domain.GameState, id string) string {
	if p := game.PlayerByID(id); p != nil {
		return p.Name
	}
	return id
}

// runSimulation plays bot-only rounds and tallies winners. Each game gets a
// deterministic seed derived from the base seed and its index, so a run is
// reproducible end to end.
func (c *CLI) runSimulation(seed string, games int, difficulty bot.Difficulty) error {
	C.Header.Printf("--- Simulating %d games ---\n", games)

	players := []domain.PlayerInfo{}
	agents := map[string]*bot.Agent{}
	for i := 0; i < 3; i++ {
		identity := bot.GetBotIdentity(i)
		players = append(players, domain.PlayerInfo{ID: identity.UserID, Name: identity.DisplayName, IsBot: true})
		brain, err := bot.NewBrain(difficulty)
		if err != nil {
			return err
		}
		agents[identity.UserID] = &bot.Agent{ID: identity.UserID, Name: identity.DisplayName, Difficulty: difficulty, Strategy: brain}
	}

	svc := app.NewService()
	wins := map[string]int{}
	unfinished := 0

	for g := 0; g < games; g++ {
		gameSeed := fmt.Sprintf("%s-%d", seed, g)
		game, _, err := svc.StartGame(players, gameSeed, nil)
		if err != nil {
			return fmt.Errorf("game %d failed to start: %w", g, err)
		}

		for step := 0; !domain.IsTerminal(game) && step < maxStepsPerGame; step++ {
			current := game.CurrentPlayerID
			move, ok := agents[current].Play(game)
			if !ok {
				game, _ = svc.ResolveForcedDraw(game)
				continue
			}
			next, _, err := svc.SubmitMove(game, current, move)
			if err != nil {
				return fmt.Errorf("game %d: bot %s rejected: %w", g, current, err)
			}
			game = next
		}

		result := domain.Score(game)
		if result.Winner == "" {
			unfinished++
			c.log.WithField("seed", gameSeed).Warn("game hit the step cap without a winner")
			continue
		}
		wins[result.Winner]++
	}

	RenderStandings(players, wins, games, unfinished)
	return nil
}
