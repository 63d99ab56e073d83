package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// resourcePrefix is the URI scheme for AutoSpec resources.
const resourcePrefix = "autospec://"

// parseAPIURI extracts the API name from an autospec://api/{name} URI.
func parseAPIURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, resourcePrefix+"api/") {
		return "", fmt.Errorf("invalid URI scheme: %s", uri)
	}

	name := strings.TrimPrefix(uri, resourcePrefix+"api/")
	if name == "" {
		return "", fmt.Errorf("empty api name in URI: %s", uri)
	}

	return name, nil
}

// handleAPIResource handles autospec://api/{name} resources.
func (s *Server) handleAPIResource(_ context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	name, err := parseAPIURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	rec, err := s.catalog.Get(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	if rec == nil {
		return nil, fmt.Errorf("api not found: %s", name)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal api record: %v", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
