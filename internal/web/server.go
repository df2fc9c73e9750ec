package web

import (
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"log"
	"net/http"

	"github.com/coder/websocket"

	"longwar/internal/game"
	gamelog "longwar/internal/log"
	"longwar/internal/sim"
)

//go:embed static
var staticFiles embed.FS

// DeckInfo is the JSON representation of a library deck for /api/decks.
type DeckInfo struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Cards  string `json:"cards"`
	Valid  bool   `json:"valid"`
}

// ReplayRequest is the body of POST /api/replay.
type ReplayRequest struct {
	Deck     string `json:"deck"`
	MaxMoves int    `json:"max_moves,omitempty"`
}

// ReplayResult is the JSON form of a simulation result.
type ReplayResult struct {
	Outcome   string `json:"outcome"`
	Winner    int    `json:"winner,omitempty"`
	Moves     int    `json:"moves"`
	Tricks    int    `json:"tricks"`
	Deck      string `json:"deck"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// EventMessage is one streamed game event on the replay socket.
type EventMessage struct {
	Type   string `json:"type"`
	Seq    int    `json:"seq"`
	Move   int    `json:"move"`
	Player int    `json:"player"`
	Card   string `json:"card,omitempty"`
	Text   string `json:"text"`
}

// Server is the longwar web UI: a deck library browser plus a replay
// API. Replays are deterministic observations, not interactive play.
type Server struct {
	decksFile string
	mux       *http.ServeMux
}

// NewServer creates a web server backed by the given deck library file.
func NewServer(decksFile string) *Server {
	s := &Server{decksFile: decksFile, mux: http.NewServeMux()}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/decks", s.handleDecks)
	s.mux.HandleFunc("POST /api/replay", s.handleReplay)
	s.mux.HandleFunc("GET /ws/replay", s.handleReplayStream)
}

func (s *Server) handleDecks(w http.ResponseWriter, r *http.Request) {
	entries, err := game.ParseDeckFile(s.decksFile)
	if err != nil {
		http.Error(w, "could not read decks file", http.StatusInternalServerError)
		return
	}

	var decks []DeckInfo
	for i, e := range entries {
		d := game.ParseDeck(e.Cards)
		decks = append(decks, DeckInfo{
			Number: i + 1,
			Name:   e.Name,
			Cards:  d.String(),
			Valid:  d.Valid(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(decks)
}

func (s *Server) handleReplay(w http.ResponseWriter, r *http.Request) {
	var req ReplayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	d := game.ParseDeck(req.Deck)
	if !d.Valid() {
		http.Error(w, "invalid deck: need 52 cards with exactly 4 of each face card", http.StatusBadRequest)
		return
	}

	res := sim.Play(d, sim.Config{MaxMoves: req.MaxMoves})
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resultJSON(res))
}

// streamLogger forwards each game event as it is emitted, so a
// limit-bound replay never buffers its whole event stream in memory.
// After the first send failure it drops the remaining events.
type streamLogger struct {
	send func([]byte) error
	seq  int
	err  error
}

func (l *streamLogger) Log(e gamelog.GameEvent) {
	if l.err != nil {
		return
	}
	l.seq++
	msg, err := json.Marshal(EventMessage{
		Type:   e.Type.String(),
		Seq:    l.seq,
		Move:   e.Move,
		Player: e.Player,
		Card:   e.Card,
		Text:   e.Details,
	})
	if err != nil {
		l.err = err
		return
	}
	l.err = l.send(msg)
}

func (l *streamLogger) Events() []gamelog.GameEvent { return nil }

// handleReplayStream replays a deck over a WebSocket, one JSON message
// per game event, then a final result message.
func (s *Server) handleReplayStream(w http.ResponseWriter, r *http.Request) {
	d := game.ParseDeck(r.URL.Query().Get("deck"))
	if !d.Valid() {
		http.Error(w, "invalid deck: need 52 cards with exactly 4 of each face card", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer conn.CloseNow()

	ctx := r.Context()

	logger := &streamLogger{send: func(msg []byte) error {
		return conn.Write(ctx, websocket.MessageText, msg)
	}}
	res := sim.Play(d, sim.Config{Logger: logger})
	if logger.err != nil {
		return
	}

	final, _ := json.Marshal(struct {
		Type   string       `json:"type"`
		Result ReplayResult `json:"result"`
	}{Type: "result", Result: resultJSON(res)})
	if err := conn.Write(ctx, websocket.MessageText, final); err != nil {
		return
	}

	conn.Close(websocket.StatusNormalClosure, "replay finished")
}

func resultJSON(res sim.Result) ReplayResult {
	return ReplayResult{
		Outcome:   res.Outcome.String(),
		Winner:    res.Winner,
		Moves:     res.Moves,
		Tricks:    res.Tricks,
		Deck:      res.Deck.String(),
		ElapsedMs: res.Elapsed.Milliseconds(),
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}
