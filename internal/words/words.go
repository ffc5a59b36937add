// internal/words/words.go
//
// Word-list catalog for the game engine.
//
// Responsibilities:
//   - Parse YAML word-list documents into game.WordEntry values.
//   - Load the embedded default lists and, optionally, a directory of lists.
//   - Derive display names from file names ("book_4_lesson_18.yaml" → "Book 4 - Lesson 18").
//   - Hold the current set of lists for concurrent readers (Catalog).
//
// Document format (one file per list):
//
//   - word: apt
//     definitions:
//       - part_of_speech: adj
//         definition: "Well-suited; fitting; appropriate."
//
// Constraints (checked at load, see game.ValidateList):
//   • at least 8 words, no duplicates (case-insensitive), no empty words.
//   • every word has at least one definition.

package words

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/vocab-bingo/assets"
	"github.com/robalobadob/vocab-bingo/internal/game"
)

type rawDefinition struct {
	PartOfSpeech string `yaml:"part_of_speech"`
	Definition   string `yaml:"definition"`
}

type rawEntry struct {
	Word        string          `yaml:"word"`
	Definitions []rawDefinition `yaml:"definitions"`
}

// List is a named, validated word list.
type List struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Words []game.WordEntry `json:"-"`
}

// Count is the number of words in the list.
func (l List) Count() int { return len(l.Words) }

// Parse decodes and validates one word-list document.
func Parse(id string, data []byte) (List, error) {
	var raw []rawEntry
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return List{}, fmt.Errorf("list %s: parse: %w", id, err)
	}
	entries := make([]game.WordEntry, 0, len(raw))
	for _, r := range raw {
		e := game.WordEntry{Word: strings.TrimSpace(r.Word)}
		for _, d := range r.Definitions {
			text := strings.TrimSpace(d.Definition)
			if text == "" {
				continue
			}
			e.Definitions = append(e.Definitions, game.Definition{
				PartOfSpeech: strings.TrimSpace(d.PartOfSpeech),
				Text:         text,
			})
		}
		entries = append(entries, e)
	}
	if err := game.ValidateList(entries); err != nil {
		return List{}, fmt.Errorf("list %s: %w", id, err)
	}
	return List{ID: id, Name: DisplayName(id), Words: entries}, nil
}

// IDFromFile strips the directory and YAML extension from a file name.
func IDFromFile(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(strings.TrimSuffix(base, ".yaml"), ".yml")
}

// DisplayName turns "book_4_lesson_18(.yaml)" into "Book 4 - Lesson 18".
// Underscore-separated parts are grouped in label/number pairs.
func DisplayName(file string) string {
	parts := strings.Split(IDFromFile(file), "_")
	chunks := make([]string, 0, len(parts)/2+1)
	for i := 0; i < len(parts); i += 2 {
		label := parts[i]
		if label != "" {
			label = strings.ToUpper(label[:1]) + label[1:]
		}
		num := ""
		if i+1 < len(parts) {
			num = parts[i+1]
		}
		chunks = append(chunks, strings.TrimSpace(label+" "+num))
	}
	return strings.Join(chunks, " - ")
}

// LoadEmbedded parses the lists compiled into the binary.
func LoadEmbedded() ([]List, error) {
	names, err := assets.ListFiles()
	if err != nil {
		return nil, fmt.Errorf("embedded lists: %w", err)
	}
	out := make([]List, 0, len(names))
	for _, name := range names {
		data, err := assets.ReadList(name)
		if err != nil {
			return nil, fmt.Errorf("embedded list %s: %w", name, err)
		}
		l, err := Parse(IDFromFile(name), data)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// LoadDir parses every *.yaml / *.yml file in dir. Valid lists are returned
// even when some files fail; the failures are joined into the error.
func LoadDir(dir string) ([]List, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var (
		out  []List
		errs []error
	)
	for _, e := range entries {
		if e.IsDir() || !isListFile(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", path, err))
			continue
		}
		l, err := Parse(IDFromFile(e.Name()), data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, l)
	}
	return out, errors.Join(errs...)
}

// Load returns the embedded lists overlaid by the lists found in dir.
// An empty dir means embedded lists only.
func Load(dir string) ([]List, error) {
	lists, err := LoadEmbedded()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return lists, nil
	}
	extra, err := LoadDir(dir)
	return merge(lists, extra), err
}

func merge(base, overlay []List) []List {
	byID := make(map[string]int, len(base))
	out := append([]List(nil), base...)
	for i, l := range out {
		byID[l.ID] = i
	}
	for _, l := range overlay {
		if i, ok := byID[l.ID]; ok {
			out[i] = l
			continue
		}
		byID[l.ID] = len(out)
		out = append(out, l)
	}
	return out
}

func isListFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Catalog is the set of lists currently offered to players.
type Catalog struct {
	mu    sync.RWMutex
	lists map[string]List
}

// NewCatalog builds a catalog from lists.
func NewCatalog(lists []List) *Catalog {
	c := &Catalog{}
	c.Replace(lists)
	return c
}

// Replace swaps the whole set of lists. Sessions already playing keep the
// words they were started with.
func (c *Catalog) Replace(lists []List) {
	m := make(map[string]List, len(lists))
	for _, l := range lists {
		m[l.ID] = l
	}
	c.mu.Lock()
	c.lists = m
	c.mu.Unlock()
}

// Get looks up a list by id.
func (c *Catalog) Get(id string) (List, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.lists[id]
	return l, ok
}

// All returns every list sorted by display name.
func (c *Catalog) All() []List {
	c.mu.RLock()
	out := make([]List, 0, len(c.lists))
	for _, l := range c.lists {
		out = append(out, l)
	}
	c.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len is the number of lists.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lists)
}
