package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for leadlens resources.
	uriScheme = "leadlens://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the stored request history.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "requests",
		Name:        "requests",
		Description: "Stored enrichment results for the signed-in account, newest first",
		MIMEType:    "application/json",
	}, s.handleRequestsResource)

	// Template for a single stored request.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "requests/{requestId}",
		Name:        "request",
		Description: "A single stored enrichment result",
		MIMEType:    "application/json",
	}, s.handleRequestResource)
}

// handleRequestsResource returns the stored request history.
func (s *Server) handleRequestsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Requests == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "[]",
			}},
		}, nil
	}

	requests, err := s.ports.Requests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}

	// Build simplified request list.
	type requestInfo struct {
		ID          string         `json:"id"`
		RequestTime time.Time      `json:"request_time"`
		Data        map[string]any `json:"data"`
	}

	infos := make([]requestInfo, len(requests))
	for i, r := range requests {
		infos[i] = requestInfo{
			ID:          r.ID,
			RequestTime: r.RequestTime,
			Data:        r.EnrichedData,
		}
	}

	data, err := json.MarshalIndent(infos, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling requests: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// handleRequestResource returns a single stored request by ID.
func (s *Server) handleRequestResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Requests == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	// Extract requestId from URI: leadlens://requests/{requestId}
	requestID := extractRequestID(req.Params.URI)
	if requestID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	requests, err := s.ports.Requests.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}

	var found *domain.StoredRequest
	for i := range requests {
		if requests[i].ID == requestID {
			found = &requests[i]
			break
		}
	}
	if found == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	data, err := json.MarshalIndent(found.EnrichedData, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling request: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractRequestID extracts the request ID from a URI like leadlens://requests/{requestId}.
func extractRequestID(uri string) string {
	const prefix = uriScheme + "requests/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	return strings.TrimPrefix(uri, prefix)
}
