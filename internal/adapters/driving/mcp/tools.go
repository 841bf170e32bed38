package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/askdocs-labs/askdocs-cli/internal/core/domain"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question    string  `json:"question" jsonschema:"the question to answer from the indexed documentation"`
	MaxChunks   int     `json:"max_chunks,omitempty" jsonschema:"number of grounding chunks to retrieve, 1-10 (default 5)"`
	Temperature float64 `json:"temperature,omitempty" jsonschema:"generation temperature, 0.0-1.0 (default 0.1)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer          string         `json:"answer"`
	Sources         []SourceOutput `json:"sources,omitempty"`
	GroundingFailed bool           `json:"grounding_failed"`
}

// SourceOutput is one citation in an ask result.
type SourceOutput struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Preview string  `json:"preview"`
	Score   float64 `json:"score"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the text to search the indexed documentation for"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of chunks to return (default 5)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieved chunk.
type SearchResultOutput struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question using the indexed documentation, with source citations",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the indexed documentation and return the most similar chunks",
	}, s.handleSearch)
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	query := domain.NewQuery(input.Question)
	if input.MaxChunks > 0 {
		query.MaxChunks = input.MaxChunks
	}
	if input.Temperature > 0 {
		query.Temperature = input.Temperature
	}

	answer, err := s.ports.Ask.Ask(ctx, query)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:          answer.Answer,
		GroundingFailed: answer.GroundingFailed,
		Sources:         make([]SourceOutput, len(answer.Sources)),
	}
	for i, source := range answer.Sources {
		output.Sources[i] = SourceOutput{
			URL:     source.SourceURL,
			Title:   source.SourceTitle,
			Preview: source.ContentPreview,
			Score:   source.RelevanceScore,
		}
	}

	return nil, output, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 5
	}

	result := s.ports.Ask.Retrieve(ctx, input.Query, limit)

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(result.Chunks)),
		Count:   len(result.Chunks),
	}
	for i, chunk := range result.Chunks {
		output.Results[i] = SearchResultOutput{
			URL:     chunk.SourceURL,
			Title:   chunk.SourceTitle,
			Score:   chunk.SimilarityScore,
			Content: chunk.Content,
		}
	}

	return nil, output, nil
}
