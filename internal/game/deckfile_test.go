package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testDeckYAML = `decks:
  - name: clustered
    cards: "JQKAJQKAJQKAJQKA------------------------------------"
  - name: empty-tail
    cards: "JQKA"
`

func writeDeckFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decks.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseDeckFile(t *testing.T) {
	path := writeDeckFile(t, testDeckYAML)

	entries, err := ParseDeckFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Name != "clustered" {
		t.Errorf("entries[0].Name = %q", entries[0].Name)
	}
	if !ParseDeck(entries[0].Cards).Valid() {
		t.Error("clustered deck should be valid")
	}
}

func TestDeckByNumber(t *testing.T) {
	path := writeDeckFile(t, testDeckYAML)

	name, d, err := DeckByNumber(path, 1)
	if err != nil {
		t.Fatal(err)
	}
	if name != "clustered" {
		t.Errorf("name = %q, want clustered", name)
	}
	if !d.Valid() {
		t.Error("deck 1 should be valid")
	}

	if _, _, err := DeckByNumber(path, 3); err == nil {
		t.Error("expected range error for deck 3")
	}
	if _, _, err := DeckByNumber(path, 0); err == nil {
		t.Error("expected range error for deck 0")
	}
}

func TestDeckByName(t *testing.T) {
	path := writeDeckFile(t, testDeckYAML)

	d, err := DeckByName(path, "empty-tail")
	if err != nil {
		t.Fatal(err)
	}
	// Short deck strings pad with plain cards, which leaves the face
	// counts short of a valid deck.
	if d.Valid() {
		t.Error("empty-tail deck should be invalid")
	}
	if len(d) != DeckSize {
		t.Errorf("len = %d, want %d", len(d), DeckSize)
	}

	if _, err := DeckByName(path, "missing"); err == nil {
		t.Error("expected lookup error for unknown name")
	}
}

func TestParseDeckFileErrors(t *testing.T) {
	if _, err := ParseDeckFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := writeDeckFile(t, "decks: [not: {valid")
	_, err := ParseDeckFile(path)
	if err == nil || !strings.Contains(err.Error(), "parse deck YAML") {
		t.Errorf("expected wrapped YAML parse error, got %v", err)
	}
}
