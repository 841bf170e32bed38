package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
)

func retrievalResult(chunks ...domain.RetrievedChunk) *domain.RetrievalResult {
	return &domain.RetrievalResult{Chunks: chunks, TotalFound: len(chunks)}
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_HasLimitFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, flag, "limit flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
	assert.Equal(t, "10", flag.DefValue)
}

func TestSearchCmd_PrintsRankedChunks(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	askService = &mockAskService{result: retrievalResult(domain.RetrievedChunk{
		Chunk: domain.Chunk{
			Content:     "Install the package with pip.",
			SourceURL:   "https://docs.example.com/setup",
			SourceTitle: "Setup",
		},
		SimilarityScore: 0.93,
	})}

	out, err := executeCommand("search", "install")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 1 chunks")
	assert.Contains(t, out, "Setup")
	assert.Contains(t, out, "0.930")
	assert.Contains(t, out, "Install the package with pip.")
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := executeCommand("search", "nothing")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching chunks found.")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	askService = &mockAskService{result: retrievalResult(domain.RetrievedChunk{
		Chunk:           domain.Chunk{Content: "text", SourceURL: "https://docs.example.com/a"},
		SimilarityScore: 0.5,
	})}

	out, err := executeCommand("search", "--json", "query")
	require.NoError(t, err)
	defer func() { searchJSON = false }()

	assert.Contains(t, out, "\"SimilarityScore\": 0.5")
	assert.Contains(t, out, "https://docs.example.com/a")
}

func TestPreview_Truncates(t *testing.T) {
	assert.Equal(t, "abc", preview("abc", 5))
	assert.Equal(t, "abcde...", preview("abcdefgh", 5))
}
