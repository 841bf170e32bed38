package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for askdocs resources.
const uriScheme = "askdocs://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "pages",
		Name:        "pages",
		Description: "List of all indexed documentation pages",
		MIMEType:    "application/json",
	}, s.handlePagesResource)
}

// handlePagesResource returns the list of indexed pages.
func (s *Server) handlePagesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Docs == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	pages, err := s.ports.Docs.ListPages(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing pages: %w", err)
	}

	type pageInfo struct {
		URL        string `json:"url"`
		Title      string `json:"title"`
		ChunkCount int    `json:"chunk_count"`
		IndexedAt  string `json:"indexed_at"`
	}

	infos := make([]pageInfo, len(pages))
	for i, page := range pages {
		infos[i] = pageInfo{
			URL:        page.URL,
			Title:      page.Title,
			ChunkCount: page.ChunkCount,
			IndexedAt:  page.IndexedAt.UTC().Format("2006-01-02T15:04:05Z"),
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling pages: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
