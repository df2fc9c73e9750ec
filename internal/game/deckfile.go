package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DeckFile represents the top-level YAML structure of a deck library.
type DeckFile struct {
	Decks []DeckEntry `yaml:"decks"`
}

// DeckEntry is one named deck string in the library.
type DeckEntry struct {
	Name  string `yaml:"name"`
	Cards string `yaml:"cards"`
}

// ParseDeckFile parses a YAML deck library and returns its entries in
// file order.
func ParseDeckFile(path string) ([]DeckEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var df DeckFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}

	return df.Decks, nil
}

// DeckByNumber returns the Nth deck (1-indexed) from the library.
func DeckByNumber(path string, n int) (string, Deck, error) {
	entries, err := ParseDeckFile(path)
	if err != nil {
		return "", nil, err
	}

	if n < 1 || n > len(entries) {
		return "", nil, fmt.Errorf("deck %d not found (have %d decks)", n, len(entries))
	}

	e := entries[n-1]
	return e.Name, ParseDeck(e.Cards), nil
}

// DeckByName returns the named deck from the library.
func DeckByName(path, name string) (Deck, error) {
	entries, err := ParseDeckFile(path)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.Name == name {
			return ParseDeck(e.Cards), nil
		}
	}
	return nil, fmt.Errorf("deck %q not found in %s", name, path)
}
