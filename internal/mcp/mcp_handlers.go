package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/auditview/core"
	"github.com/huangsam/auditview/core/payload"
	"github.com/huangsam/auditview/internal/contract"
	"github.com/huangsam/auditview/internal/datalake"
	"github.com/huangsam/auditview/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg    *contract.Config
	dispatcher *core.Dispatcher
}

func (h *toolHandler) handleRenderAuditView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.snapshotConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	domain := request.GetString("domain", "")

	raw, err := h.resolvePayload(ctx, cfg, domain, request.GetString("payload", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return jsonResult(h.dispatcher.Render(domain, raw))
}

func (h *toolHandler) handleClassifyAuditPayload(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.snapshotConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	domain := request.GetString("domain", "")

	raw, err := h.resolvePayload(ctx, cfg, domain, request.GetString("payload", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}
	res, err := h.dispatcher.Explain(domain, raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("classification failed: %v", err)), nil
	}
	return jsonResult(res)
}

func (h *toolHandler) handleListAuditDomains(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.dispatcher.Domains())
}

func (h *toolHandler) handleRenderAuditDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.snapshotConfig(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if d := request.GetString("domains", ""); d != "" {
		if cfg.Domains, err = contract.ParseDomains(d); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
		}
	}

	src, err := datalake.Open(ctx, cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dashboard failed: %v", err)), nil
	}
	defer func() { _ = src.Close() }()

	result, err := core.RenderDashboard(ctx, src, h.dispatcher, cfg.Company, cfg.Layer, cfg.Domains, cfg.Workers)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dashboard failed: %v", err)), nil
	}
	return jsonResult(result)
}

// snapshotConfig applies the company and layer arguments on top of the base config.
func (h *toolHandler) snapshotConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if c := request.GetString("company", ""); c != "" {
		c = strings.ToLower(strings.TrimSpace(c))
		if strings.ContainsAny(c, `/\.`) {
			return nil, fmt.Errorf("invalid company %q", c)
		}
		cfg.Company = c
	}
	if l := request.GetString("layer", ""); l != "" {
		layer := schema.Layer(l)
		if _, ok := schema.ValidLayers[layer]; !ok {
			return nil, fmt.Errorf("invalid layer %q", l)
		}
		cfg.Layer = layer
	}
	return cfg, nil
}

// resolvePayload parses an inline payload, or fetches it from the DataLake.
// A payload missing from the DataLake resolves to nil so it renders as empty.
func (h *toolHandler) resolvePayload(ctx context.Context, cfg *contract.Config, domain, inline string) (any, error) {
	if inline != "" {
		return payload.Parse([]byte(inline))
	}
	d := schema.Domain(domain)
	if _, ok := schema.ValidDomains[d]; !ok {
		return nil, fmt.Errorf("unknown domain %q: a payload argument is required", domain)
	}

	src, err := datalake.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	raw, err := datalake.Load(ctx, src, cfg.Company, d, cfg.Layer)
	if errors.Is(err, datalake.ErrNotFound) {
		contract.Logger.WithField("domain", domain).WithError(err).Warn("payload missing")
		return nil, nil
	}
	return raw, err
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
