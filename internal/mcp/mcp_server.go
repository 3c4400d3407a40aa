// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/auditview/core"
	"github.com/huangsam/auditview/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var domainEnum = mcp.Enum("finance", "operation", "opinion", "macro", "external")

var layerEnum = mcp.Enum("raw", "feature", "analysis")

// NewMCPServer initializes and configures the auditview MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Audit View Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:    baseCfg,
		dispatcher: core.NewDispatcher(contract.Logger),
	}

	// --- 1. Tool: render_audit_view ---
	s.AddTool(mcp.NewTool("render_audit_view",
		mcp.WithDescription("Render one audit-analysis payload into an ordered list of view sections."),
		mcp.WithString("domain", mcp.Description("Audit domain of the payload."), mcp.Required()),
		mcp.WithString("payload", mcp.Description("Payload as a JSON document. When omitted the payload is fetched from the DataLake.")),
		mcp.WithString("company", mcp.Description("Company identifier used for DataLake fetches (e.g. aura, beta, crisis).")),
		mcp.WithString("layer", mcp.Description("DataLake layer used for fetches. Defaults to 'analysis'."), layerEnum),
	), h.handleRenderAuditView)

	// --- 2. Tool: classify_audit_payload ---
	s.AddTool(mcp.NewTool("classify_audit_payload",
		mcp.WithDescription("Report which schema variant a payload follows and the rule that selected it."),
		mcp.WithString("domain", mcp.Description("Audit domain of the payload."), mcp.Required(), domainEnum),
		mcp.WithString("payload", mcp.Description("Payload as a JSON document. When omitted the payload is fetched from the DataLake.")),
		mcp.WithString("company", mcp.Description("Company identifier used for DataLake fetches.")),
		mcp.WithString("layer", mcp.Description("DataLake layer used for fetches."), layerEnum),
	), h.handleClassifyAuditPayload)

	// --- 3. Tool: list_audit_domains ---
	s.AddTool(mcp.NewTool("list_audit_domains",
		mcp.WithDescription("List the supported audit domains, their schema variants and marker keys."),
	), h.handleListAuditDomains)

	// --- 4. Tool: render_audit_dashboard ---
	s.AddTool(mcp.NewTool("render_audit_dashboard",
		mcp.WithDescription("Fetch and render every audit domain of one company from the DataLake."),
		mcp.WithString("company", mcp.Description("Company identifier."), mcp.Required()),
		mcp.WithString("layer", mcp.Description("DataLake layer. Defaults to 'analysis'."), layerEnum),
		mcp.WithString("domains", mcp.Description("Comma-separated domains to render. Defaults to all.")),
	), h.handleRenderAuditDashboard)

	return s
}

// StartMCPServer starts the auditview MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
