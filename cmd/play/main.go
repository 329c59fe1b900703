// Package main provides the terminal version of the guessing game. It
// renders each round's stat table to a PNG in the output directory and
// reads guesses from stdin.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ntbapp/ntb-server/internal/career"
	"github.com/ntbapp/ntb-server/internal/config"
	"github.com/ntbapp/ntb-server/internal/game"
	"github.com/ntbapp/ntb-server/internal/lahman"
	"github.com/ntbapp/ntb-server/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		Environment: cfg.App.Environment,
	})

	if err := run(cfg, log); err != nil {
		log.Fatal("Game failed", "error", err)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("  NAME THAT BALLPLAYER")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("Loading Lahman database...")

	store, err := lahman.Load(cfg.Data.Dir, log.Logger)
	if err != nil {
		return err
	}

	policy := career.PreferStronger
	if cfg.Game.CategoryPolicy == "random" {
		policy = career.RandomWhenBoth
	}

	manager, err := game.NewManager(store, cfg.Filter(), policy, log.Logger)
	if err != nil {
		return err
	}
	fmt.Printf("Player pool: %d eligible players (mode: %s)\n", manager.PoolSize(), cfg.Game.Mode)

	if err := os.MkdirAll(cfg.Game.OutputDir, 0o755); err != nil {
		return err
	}

	sess, err := manager.Create()
	if err != nil {
		return err
	}

	in := bufio.NewScanner(os.Stdin)
	for {
		if err := playRound(sess, cfg.Game.OutputDir, in); err != nil {
			return err
		}

		st := sess.State()
		if !st.Revealed {
			// Stdin closed or the player quit mid-round.
			fmt.Printf("\n  Final score: %d/%d\n", st.ScoreCorrect, st.ScoreTotal)
			fmt.Printf("  Best streak: %d\n", st.BestStreak)
			return nil
		}

		if _, err := sess.Next(); err != nil {
			return err
		}
	}
}

// playRound runs one round: it writes the hidden stat table, then reads
// guesses until the round resolves or the player quits.
func playRound(sess *game.Session, outputDir string, in *bufio.Scanner) error {
	imgPath := filepath.Join(outputDir, "current_player.png")
	if err := writeImage(sess, imgPath); err != nil {
		return err
	}

	st := sess.State()
	fmt.Printf("\n%s\n", strings.Repeat("-", 60))
	fmt.Printf("  Round %d  |  Score: %d/%d  |  Streak: %d  |  Best: %d\n",
		st.Round, st.ScoreCorrect, st.ScoreTotal, st.Streak, st.BestStreak)
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("  Stats image saved to: %s\n", imgPath)
	fmt.Println("  Open it and study the stats!")
	fmt.Println()

	for {
		fmt.Print("  Your guess (or 'hint' / 'give up' / 'quit'): ")
		if !in.Scan() {
			return in.Err()
		}
		input := strings.TrimSpace(in.Text())

		switch strings.ToLower(input) {
		case "quit":
			return nil

		case "give up":
			st = sess.GiveUp()
			fmt.Printf("\n  The answer was: %s\n", st.PlayerName)
			return revealImage(sess, outputDir)

		case "hint":
			st = sess.Hint()
			fmt.Printf("  Hint: %s\n", st.HintText)

		case "":
			continue

		default:
			st = sess.Guess(input)
			if st.Revealed {
				fmt.Printf("\n  Correct! It's %s!\n", st.PlayerName)
				return revealImage(sess, outputDir)
			}
			fmt.Printf("  Not %s. Try again!\n", input)
		}
	}
}

func revealImage(sess *game.Session, outputDir string) error {
	path := filepath.Join(outputDir, "revealed_player.png")
	if err := writeImage(sess, path); err != nil {
		return err
	}
	fmt.Printf("  Revealed image: %s\n", path)
	return nil
}

func writeImage(sess *game.Session, path string) error {
	img, err := sess.Image()
	if err != nil {
		return err
	}
	return os.WriteFile(path, img, 0o644)
}
