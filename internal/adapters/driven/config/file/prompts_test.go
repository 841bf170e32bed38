package file

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs-labs/askdocs-cli/internal/core/ports/driven"
)

func TestPromptStore_LoadDefault(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptGroundedAnswer)
	require.NoError(t, err)

	assert.Contains(t, prompt, "Context:")
	assert.Contains(t, prompt, "Question:")
	assert.Equal(t, 2, strings.Count(prompt, "%s"))
}

func TestPromptStore_CreatesDefaultFilesOnFirstLoad(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// No I/O before first Load
	_, statErr := os.Stat(filepath.Join(dir, "grounded_answer.txt"))
	assert.True(t, os.IsNotExist(statErr))

	_, err = store.Load(driven.PromptGroundedAnswer)
	require.NoError(t, err)

	for _, name := range []string{"grounded_answer.txt", "chat_system.txt", "README.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestPromptStore_UserOverride(t *testing.T) {
	dir := t.TempDir()

	custom := "Answer from this context only:\n%s\n\nQ: %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "grounded_answer.txt"), []byte(custom), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptGroundedAnswer)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

func TestPromptStore_ReloadPicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load(driven.PromptChatSystem)
	require.NoError(t, err)

	edited := "You answer tersely."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chat_system.txt"), []byte(edited), 0600))

	// Cached value survives until Reload
	cached, err := store.Load(driven.PromptChatSystem)
	require.NoError(t, err)
	assert.NotEqual(t, edited, cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptChatSystem)
	require.NoError(t, err)
	assert.Equal(t, edited, fresh)
}

func TestPromptStore_UnknownPrompt(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("no_such_prompt")
	assert.Error(t, err)
}
