package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"longwar/internal/game"
	"longwar/internal/sim"
)

const testDecksYAML = `decks:
  - name: clustered
    cards: "JQKAJQKAJQKAJQKA------------------------------------"
  - name: broken
    cards: "JJ"
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	if err := os.WriteFile(path, []byte(testDecksYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return NewServer(path)
}

func TestHandleDecks(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/api/decks", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	var decks []DeckInfo
	if err := json.NewDecoder(rr.Body).Decode(&decks); err != nil {
		t.Fatal(err)
	}
	if len(decks) != 2 {
		t.Fatalf("decks = %d, want 2", len(decks))
	}
	if decks[0].Name != "clustered" || !decks[0].Valid {
		t.Errorf("decks[0] = %+v, want valid clustered", decks[0])
	}
	if decks[1].Valid {
		t.Errorf("short deck reported valid: %+v", decks[1])
	}
	if len(decks[1].Cards) != 52 {
		t.Errorf("decks render in canonical 52-char form, got %d chars", len(decks[1].Cards))
	}
}

func TestHandleReplay(t *testing.T) {
	srv := newTestServer(t)

	deck := "J" + strings.Repeat("-", 36) + "JJJQQQQKKKKAAAA"
	body := strings.NewReader(`{"deck": "` + deck + `"}`)
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("POST", "/api/replay", body))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rr.Code, rr.Body)
	}
	var res ReplayResult
	if err := json.NewDecoder(rr.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Outcome != "win" && res.Outcome != "cycle" && res.Outcome != "limit" {
		t.Errorf("outcome = %q", res.Outcome)
	}
	if res.Deck != deck {
		t.Errorf("deck echoed as %q, want %q", res.Deck, deck)
	}
	if res.Moves == 0 {
		t.Error("moves = 0, expected at least one move")
	}
}

func TestHandleReplayRejectsInvalidDeck(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("POST", "/api/replay", strings.NewReader(`{"deck": "JJ"}`)))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rr.Code)
	}

	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("POST", "/api/replay", strings.NewReader(`{not json`)))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad body: status = %d, want 400", rr.Code)
	}
}

func TestReplayStreamRejectsInvalidDeck(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/ws/replay?deck=JJ", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 before the socket upgrade", rr.Code)
	}
}

func TestStreamLoggerForwardsEachEvent(t *testing.T) {
	var frames [][]byte
	l := &streamLogger{send: func(msg []byte) error {
		frames = append(frames, append([]byte(nil), msg...))
		return nil
	}}

	d := game.ParseDeck("J" + strings.Repeat("-", 36) + "JJJQQQQKKKKAAAA")
	res := sim.Play(d, sim.Config{Logger: l})

	if l.err != nil {
		t.Fatalf("send error: %v", l.err)
	}
	// One frame per play plus the penalty/trick/terminal events.
	if len(frames) <= res.Moves {
		t.Errorf("frames = %d, want more than %d moves", len(frames), res.Moves)
	}
	if l.Events() != nil {
		t.Error("stream logger must not retain events")
	}

	var first EventMessage
	if err := json.Unmarshal(frames[0], &first); err != nil {
		t.Fatal(err)
	}
	if first.Seq != 1 || first.Type != "play" {
		t.Errorf("first frame = %+v, want seq 1 play", first)
	}
	var last EventMessage
	if err := json.Unmarshal(frames[len(frames)-1], &last); err != nil {
		t.Fatal(err)
	}
	if last.Type != "game_over" && last.Type != "cycle" && last.Type != "limit" {
		t.Errorf("last frame type = %q, want a terminal event", last.Type)
	}
	if last.Seq != len(frames) {
		t.Errorf("last seq = %d across %d frames", last.Seq, len(frames))
	}
}

func TestStreamLoggerStopsAfterSendError(t *testing.T) {
	sends := 0
	l := &streamLogger{send: func(msg []byte) error {
		sends++
		if sends > 1 {
			return errors.New("peer gone")
		}
		return nil
	}}

	d := game.ParseDeck("J" + strings.Repeat("-", 36) + "JJJQQQQKKKKAAAA")
	sim.Play(d, sim.Config{Logger: l})

	if l.err == nil {
		t.Fatal("send error not surfaced")
	}
	if sends != 2 {
		t.Errorf("sends = %d, want 2 (no writes after the first failure)", sends)
	}
}

func TestIndexServed(t *testing.T) {
	srv := newTestServer(t)

	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "longwar") {
		t.Error("index page missing")
	}

	rr = httptest.NewRecorder()
	srv.ServeHTTP(rr, httptest.NewRequest("GET", "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("unknown path: status = %d, want 404", rr.Code)
	}
}
