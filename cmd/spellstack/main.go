package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dianbrown/SpellStack/internal/bot"
	"github.com/dianbrown/SpellStack/internal/cli"

	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Parse command-line flags
	logLevel := flag.String("loglevel", "info", "Set logging level (debug, info, warn, error)")
	seed := flag.String("seed", "", "Game seed; same seed replays the same deck (default: current time)")
	difficulty := flag.String("difficulty", "medium", "Bot difficulty (easy, medium, hard)")
	identities := flag.String("identities", "", "Optional path to a bot identities JSON file")
	flag.Parse()

	// 2. Set up top-level dependencies (Logger)
	log := logrus.New()
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true, ForceColors: true})

	// 3. Load the bot identity pool if one was provided
	if *identities != "" {
		if err := bot.LoadIdentities(*identities); err != nil {
			log.Warnf("Falling back to built-in bot identities: %v", err)
		}
	}

	if *seed == "" {
		*seed = fmt.Sprintf("%d", time.Now().UnixNano())
	}

	// 4. Create the CLI, injecting the logger, and run
	ui := cli.NewCLI(log)
	if err := ui.Run(flag.Args(), *seed, bot.Difficulty(*difficulty)); err != nil {
		log.Errorf("Application exited with error: %v", err)
		os.Exit(1)
	}
}
