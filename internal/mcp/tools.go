package mcp

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"longwar/internal/game"
	"longwar/internal/sim"
)

// logPath is where run_search appends new records, set by main.
var logPath = "high_score.txt"

// SetLogPath overrides the high-score log location.
func SetLogPath(p string) {
	logPath = p
}

// RegisterTools adds all simulation tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(replayDeckTool(), handleReplayDeck)
	s.AddTool(validateDeckTool(), handleValidateDeck)
	s.AddTool(shuffleDeckTool(), handleShuffleDeck)
	s.AddTool(runSearchTool(), handleRunSearch)
}

// --- Tool definitions ---

func replayDeckTool() mcp.Tool {
	return mcp.NewTool("replay_deck",
		mcp.WithDescription("Deterministically replay a single 52-card deck and return the outcome "+
			"(win, cycle, or move-limit), the winner, and the move and trick counts. "+
			"Deck strings use '-' for plain cards and J, Q, K, A for face cards."),
		mcp.WithString("deck", mcp.Required(), mcp.Description("52-character deck string")),
		mcp.WithNumber("max_moves", mcp.Description("Move ceiling for the run (default 100000)")),
	)
}

func validateDeckTool() mcp.Tool {
	return mcp.NewTool("validate_deck",
		mcp.WithDescription("Check whether a deck string is a valid deck: 52 cards with exactly 4 each of J, Q, K, A. "+
			"Returns the per-rank counts."),
		mcp.WithString("deck", mcp.Required(), mcp.Description("Deck string to validate")),
	)
}

func shuffleDeckTool() mcp.Tool {
	return mcp.NewTool("shuffle_deck",
		mcp.WithDescription("Produce a fresh valid random deck string (4 of each face card in random positions)."),
		mcp.WithNumber("seed", mcp.Description("Optional RNG seed for a reproducible shuffle (0 or omitted = random)")),
	)
}

func runSearchTool() mcp.Tool {
	return mcp.NewTool("run_search",
		mcp.WithDescription("Run a batch of random-deck simulations across a worker pool, recording every new "+
			"highest move count to the high-score log. Blocks until the batch completes and returns the "+
			"summary statistics and the records found."),
		mcp.WithNumber("games", mcp.Required(), mcp.Description("Number of games to simulate")),
		mcp.WithNumber("workers", mcp.Description("Worker count (0 or omitted = all CPUs)")),
	)
}

// --- Tool handlers ---

type replayView struct {
	Outcome string `json:"outcome"`
	Winner  int    `json:"winner,omitempty"`
	Moves   int    `json:"moves"`
	Tricks  int    `json:"tricks"`
	Deck    string `json:"deck"`
}

func handleReplayDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	deckStr := request.GetString("deck", "")
	d := game.ParseDeck(deckStr)
	if !d.Valid() {
		return mcp.NewToolResultError("Invalid deck: a valid deck has 52 cards with exactly 4 of each face card (J, Q, K, A)."), nil
	}

	res := sim.Play(d, sim.Config{MaxMoves: request.GetInt("max_moves", 0)})
	return mcp.NewToolResultText(respondJSON(replayView{
		Outcome: res.Outcome.String(),
		Winner:  res.Winner,
		Moves:   res.Moves,
		Tricks:  res.Tricks,
		Deck:    res.Deck.String(),
	})), nil
}

func handleValidateDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	d := game.ParseDeck(request.GetString("deck", ""))

	counts := map[string]int{}
	for _, r := range d {
		counts[r.Name()]++
	}
	return mcp.NewToolResultText(respondJSON(struct {
		Valid  bool           `json:"valid"`
		Deck   string         `json:"deck"`
		Counts map[string]int `json:"counts"`
	}{Valid: d.Valid(), Deck: d.String(), Counts: counts})), nil
}

func handleShuffleDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	seed := int64(request.GetInt("seed", 0))
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d := game.NewDeck()
	d.Shuffle(rand.New(rand.NewSource(seed)))
	return mcp.NewToolResultText(respondJSON(struct {
		Deck string `json:"deck"`
	}{Deck: d.String()})), nil
}

func handleRunSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	games := request.GetInt("games", 0)
	if games < 1 {
		return mcp.NewToolResultError("games must be >= 1"), nil
	}

	var records []replayView
	stats, err := sim.Search(sim.SearchConfig{
		Games:   games,
		Workers: request.GetInt("workers", 0),
		LogPath: logPath,
		OnRecord: func(r sim.Record) {
			records = append(records, replayView{
				Outcome: sim.OutcomeWin.String(),
				Winner:  r.Winner,
				Moves:   r.Moves,
				Tricks:  r.Tricks,
				Deck:    r.Deck.String(),
			})
		},
	})
	if err != nil {
		return mcp.NewToolResultErrorf("Search failed: %v", err), nil
	}

	return mcp.NewToolResultText(respondJSON(struct {
		Games     int          `json:"games"`
		P1Wins    int          `json:"p1_wins"`
		P2Wins    int          `json:"p2_wins"`
		Cycles    int          `json:"cycles"`
		Limits    int          `json:"move_limit_hits"`
		Errors    int          `json:"errors"`
		Best      int          `json:"best_moves"`
		ElapsedMs int64        `json:"elapsed_ms"`
		Records   []replayView `json:"records"`
	}{
		Games:     stats.Games,
		P1Wins:    stats.Wins[0],
		P2Wins:    stats.Wins[1],
		Cycles:    stats.Cycles,
		Limits:    stats.Limits,
		Errors:    stats.Errors,
		Best:      stats.Best,
		ElapsedMs: stats.Elapsed.Milliseconds(),
		Records:   records,
	})), nil
}

func respondJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return `{"error": "failed to marshal response"}`
	}
	return string(data)
}
