package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"longwar/internal/game"
	gamelog "longwar/internal/log"
	"longwar/internal/sim"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "search":
		runSearch(os.Args[2:])
	case "replay":
		runReplay(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  longwar search [--games N] [--workers W] [--out FILE] [--max-moves M]")
	fmt.Println("  longwar replay --deck STRING [--verbose] [--max-moves M]")
	fmt.Println("  longwar replay --decks FILE --deck-num N [--verbose]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  search  Shuffle and simulate many decks, recording every new high score")
	fmt.Println("  replay  Deterministically replay a single 52-card deck")
	fmt.Println()
	fmt.Println("Deck strings use '-' for plain cards and J, Q, K, A for face cards.")
}

func runSearch(args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	games := fs.Int("games", 100000, "number of games to simulate")
	workers := fs.Int("workers", 0, "worker count (0 = all CPUs)")
	out := fs.String("out", "high_score.txt", "high-score log file")
	maxMoves := fs.Int("max-moves", sim.DefaultMaxMoves, "per-game move ceiling")
	fs.Parse(args)

	w := *workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	fmt.Printf("Running %d games with %d workers\n", *games, w)

	stats, err := sim.Search(sim.SearchConfig{
		Games:    *games,
		Workers:  w,
		MaxMoves: *maxMoves,
		LogPath:  *out,
		OnRecord: func(r sim.Record) {
			fmt.Printf("New high score: %d moves, %d tricks, winner: Player %d\n",
				r.Moves, r.Tricks, r.Winner)
		},
		ProgressEvery: 10000,
		Progress: func(completed int, elapsed time.Duration) {
			fmt.Printf("Completed %d games (%.0f games/sec)\n",
				completed, float64(completed)/(elapsed.Seconds()+0.1))
		},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Completed %d games in %s\n", stats.Games, stats.Elapsed.Round(time.Millisecond))
	fmt.Printf("P1 wins: %d, P2 wins: %d, cycles: %d, move-limit hits: %d, errors: %d\n",
		stats.Wins[0], stats.Wins[1], stats.Cycles, stats.Limits, stats.Errors)
	fmt.Printf("Highest score: %d moves\n", stats.Best)
}

func runReplay(args []string) {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	deckStr := fs.String("deck", "", "52-character deck string")
	decksFile := fs.String("decks", "", "YAML deck library file")
	deckNum := fs.Int("deck-num", 0, "1-indexed deck number in the library")
	verbose := fs.Bool("verbose", false, "print every move")
	maxMoves := fs.Int("max-moves", 1000000, "move ceiling")
	fs.Parse(args)

	var (
		d    game.Deck
		name string
	)
	switch {
	case *deckStr != "":
		d = game.ParseDeck(*deckStr)
	case *decksFile != "" && *deckNum > 0:
		var err error
		name, d, err = game.DeckByNumber(*decksFile, *deckNum)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(1)
	}

	if !d.Valid() {
		fmt.Fprintln(os.Stderr, "Error: invalid deck configuration.")
		fmt.Fprintln(os.Stderr, "A valid deck has exactly 4 of each face card (J, Q, K, A) and 52 cards total.")
		os.Exit(1)
	}

	if name != "" {
		fmt.Printf("Replaying deck %q: %s\n", name, d)
	} else {
		fmt.Printf("Replaying deck: %s\n", d)
	}

	cfg := sim.Config{MaxMoves: *maxMoves}
	if *verbose {
		cfg.Logger = gamelog.NewTextLogger(os.Stdout)
	}
	res := sim.Play(d, cfg)

	fmt.Println()
	switch res.Outcome {
	case sim.OutcomeCycle:
		fmt.Printf("Cycle detected after %d moves and %d tricks\n", res.Moves, res.Tricks)
	case sim.OutcomeWin:
		fmt.Printf("Player %d won after %d moves and %d tricks\n", res.Winner, res.Moves, res.Tricks)
	default:
		fmt.Printf("Move limit reached (%d moves, %d tricks)\n", res.Moves, res.Tricks)
	}
	fmt.Printf("Time elapsed: %s\n", res.Elapsed.Round(time.Microsecond))
}
