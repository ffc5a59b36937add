package words

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vocab-bingo/internal/game"
)

func listDoc(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "- word: word%d\n  definitions:\n    - part_of_speech: n\n      definition: \"meaning %d\"\n", i, i)
	}
	return b.String()
}

func TestParse(t *testing.T) {
	l, err := Parse("book_1_lesson_2", []byte(listDoc(9)))
	require.NoError(t, err)
	assert.Equal(t, "book_1_lesson_2", l.ID)
	assert.Equal(t, "Book 1 - Lesson 2", l.Name)
	require.Equal(t, 9, l.Count())
	assert.Equal(t, game.WordEntry{
		Word:        "word0",
		Definitions: []game.Definition{{PartOfSpeech: "n", Text: "meaning 0"}},
	}, l.Words[0])
}

func TestParseRejectsBadLists(t *testing.T) {
	noDefs := listDoc(8) + "- word: lonely\n  definitions: []\n"
	blankDef := listDoc(8) + "- word: blank\n  definitions:\n    - part_of_speech: n\n      definition: \"  \"\n"

	cases := []struct {
		name string
		doc  string
		want error
	}{
		{"short", listDoc(7), game.ErrListTooShort},
		{"no definitions", noDefs, game.ErrNoDefinitions},
		{"blank definition only", blankDef, game.ErrNoDefinitions},
		{"duplicate", listDoc(8) + listDoc(1), game.ErrDuplicateWord},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse("x", []byte(tc.doc))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := Parse("x", []byte("word: [unterminated"))
	assert.Error(t, err)
}

func TestDisplayName(t *testing.T) {
	cases := map[string]string{
		"book_4_lesson_18.yaml": "Book 4 - Lesson 18",
		"book_4_lesson_16":      "Book 4 - Lesson 16",
		"/tmp/lists/unit_3.yml": "Unit 3",
		"animals":               "Animals",
		"level_2_extra":         "Level 2 - Extra",
	}
	for in, want := range cases {
		assert.Equal(t, want, DisplayName(in), in)
	}
}

func TestLoadEmbedded(t *testing.T) {
	lists, err := LoadEmbedded()
	require.NoError(t, err)
	require.NotEmpty(t, lists)

	c := NewCatalog(lists)
	l, ok := c.Get("book_4_lesson_16")
	require.True(t, ok)
	assert.Equal(t, "Book 4 - Lesson 16", l.Name)
	assert.Equal(t, 15, l.Count())
	assert.Equal(t, "apt", l.Words[0].Word)
}

func TestLoadDirKeepsValidLists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unit_1.yaml"), []byte(listDoc(8)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unit_2.yml"), []byte(listDoc(3)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	lists, err := LoadDir(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, game.ErrListTooShort)
	require.Len(t, lists, 1)
	assert.Equal(t, "unit_1", lists[0].ID)
}

func TestLoadOverlaysDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book_4_lesson_16.yaml"), []byte(listDoc(10)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "book_5_lesson_1.yaml"), []byte(listDoc(8)), 0o644))

	lists, err := Load(dir)
	require.NoError(t, err)
	c := NewCatalog(lists)

	l, ok := c.Get("book_4_lesson_16")
	require.True(t, ok)
	assert.Equal(t, 10, l.Count(), "directory list replaces the embedded one")

	all := c.All()
	require.Len(t, all, 2)
	assert.Equal(t, "Book 4 - Lesson 16", all[0].Name)
	assert.Equal(t, "Book 5 - Lesson 1", all[1].Name)
}

func TestCatalogReload(t *testing.T) {
	dir := t.TempDir()
	c := NewCatalog(nil)
	require.NoError(t, c.Reload(dir))
	n := c.Len()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "extra.yaml"), []byte(listDoc(8)), 0o644))
	require.NoError(t, c.Reload(dir))
	assert.Equal(t, n+1, c.Len())
}

func TestWatchReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, 20*time.Millisecond, func() { reloads.Add(1) })
	}()

	// Give the watcher time to register the directory.
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "unit_9.yaml"), []byte(listDoc(8)), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644))

	require.Eventually(t, func() bool { return reloads.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}
