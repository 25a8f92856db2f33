package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/leadlens-labs/leadlens-cli/internal/core/domain"
)

// EnrichInput is the input schema for the enrich_lead tool.
type EnrichInput struct {
	CompanyName string `json:"company_name" jsonschema:"the name of the company to enrich"`
	Website     string `json:"website" jsonschema:"the company website URL"`
}

// EnrichOutput is the output schema for the enrich_lead tool.
type EnrichOutput struct {
	Record map[string]any `json:"record"`
	Fields int            `json:"fields"`
}

// StatusOutput is the output schema for the session_status tool.
type StatusOutput struct {
	Phase    string `json:"phase"`
	SignedIn bool   `json:"signed_in"`
	Subject  string `json:"subject,omitempty"`
	Email    string `json:"email,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "enrich_lead",
		Description: "Enrich a lead by company name and website",
	}, s.handleEnrich)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "session_status",
		Description: "Report the current sign-in state of the session",
	}, s.handleStatus)
}

// handleEnrich handles the enrich_lead tool invocation. It runs the same
// submission flow as the interactive surfaces, so validation, busy
// guarding and deduplicated persistence all apply.
func (s *Server) handleEnrich(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input EnrichInput,
) (*mcp.CallToolResult, EnrichOutput, error) {
	if err := s.ports.Session.UpdateInput(domain.FieldCompanyName, input.CompanyName); err != nil {
		return nil, EnrichOutput{}, err
	}
	if err := s.ports.Session.UpdateInput(domain.FieldWebsite, input.Website); err != nil {
		return nil, EnrichOutput{}, err
	}

	if err := s.ports.Session.Submit(ctx); err != nil {
		return nil, EnrichOutput{}, err
	}

	record := s.ports.Session.Snapshot().LastRecord
	return nil, EnrichOutput{
		Record: record,
		Fields: len(record),
	}, nil
}

// handleStatus handles the session_status tool invocation.
func (s *Server) handleStatus(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ struct{},
) (*mcp.CallToolResult, StatusOutput, error) {
	snap := s.ports.Session.Snapshot()

	output := StatusOutput{
		Phase:    snap.Phase.String(),
		SignedIn: snap.Phase.SignedIn(),
	}
	if snap.Subject != nil {
		output.Subject = snap.Subject.DisplayName
		output.Email = snap.Subject.Email
	}

	return nil, output, nil
}
