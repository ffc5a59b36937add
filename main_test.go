package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runListsWith(t *testing.T, dir string) (string, error) {
	t.Helper()
	listsDir = dir
	t.Cleanup(func() { listsDir = "" })
	var out bytes.Buffer
	listsCmd.SetOut(&out)
	err := runLists(listsCmd, nil)
	return out.String(), err
}

func TestListsCommand(t *testing.T) {
	out, err := runListsWith(t, "")
	require.NoError(t, err)
	assert.Contains(t, out, "book_4_lesson_16")
	assert.Contains(t, out, "Book 4 - Lesson 16")
}

func TestListsCommandReportsInvalidLists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "short.yaml"),
		[]byte("- word: one\n  definitions:\n    - part_of_speech: n\n      definition: single\n"), 0o644))

	out, err := runListsWith(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fewer than 8")
	assert.Contains(t, out, "book_4_lesson_16", "valid lists are still printed")
}
