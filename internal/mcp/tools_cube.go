// tools_cube.go implements the generate_cube and cube_job_status tool
// handlers. Every failure reaches the assistant as a tool error naming
// its category (validation, connectivity, authentication, host, cloud);
// nothing is swallowed and no raw stack trace crosses the protocol.

package mcp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/livecube/livecube/internal/aps"
	"github.com/livecube/livecube/internal/validate"
)

// generateCube handles generate_cube tool calls. Arguments are validated
// before any network call: a bad edge length produces zero downstream
// traffic.
func (h *handlers) generateCube(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	edge, ok := requireFloat(req, "edge_length")
	if !ok {
		return mcp.NewToolResultError("validation error: edge_length is required and must be a number"), nil
	}
	if err := validate.Edge(edge); err != nil {
		return mcp.NewToolResultError("validation error: edge_length: " + err.Error()), nil
	}

	if h.mode == ModeCloud {
		return h.generateCloud(ctx, edge)
	}
	return h.generateLocal(ctx, edge)
}

// generateLocal forwards the request to the bridge server and returns
// its response text. Connection failures are a connectivity error; a
// non-2xx bridge response keeps the category the bridge assigned it.
func (h *handlers) generateLocal(ctx context.Context, edge float64) (*mcp.CallToolResult, error) {
	u := fmt.Sprintf("%s/create_cube?edge=%s", h.bridgeURL,
		url.QueryEscape(strconv.FormatFloat(edge, 'g', -1, 64)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return mcp.NewToolResultError("validation error: " + err.Error()), nil
	}

	resp, err := h.http.Do(req)
	if err != nil {
		slog.Error("bridge call failed", "edge_mm", edge, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("connectivity error: bridge unreachable: %v", err)), nil
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("connectivity error: reading bridge response: %v", err)), nil
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		slog.Info("cube created via bridge", "edge_mm", edge)
		return mcp.NewToolResultText(string(body)), nil
	case resp.StatusCode == http.StatusBadGateway:
		return mcp.NewToolResultError("connectivity error: " + string(body)), nil
	case resp.StatusCode == http.StatusBadRequest:
		return mcp.NewToolResultError("validation error: " + string(body)), nil
	default:
		// The host's object model failed (e.g. no active document).
		return mcp.NewToolResultError("host error: " + string(body)), nil
	}
}

// generateCloud submits a Design Automation workitem and reports its
// acceptance. It does not wait for the job to finish; use
// cube_job_status to follow up.
func (h *handlers) generateCloud(ctx context.Context, edge float64) (*mcp.CallToolResult, error) {
	wi, err := h.aps.SubmitWorkItem(ctx, edge)
	if err != nil {
		return cloudError(err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("workitem %s submitted (status: %s)", wi.ID, wi.Status)), nil
}

// jobStatus handles cube_job_status tool calls.
func (h *handlers) jobStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.aps == nil {
		return mcp.NewToolResultError("cube_job_status is only available in cloud mode"), nil
	}

	id, err := req.RequireString("workitem_id")
	if err != nil {
		return mcp.NewToolResultError("validation error: workitem_id is required"), nil //nolint:nilerr
	}

	wi, err := h.aps.WorkItemStatus(ctx, id)
	if err != nil {
		return cloudError(err), nil
	}

	if wi.Status == aps.StatusFailed && wi.ReportURL != "" {
		return mcp.NewToolResultText(fmt.Sprintf("workitem %s: %s (report: %s)", wi.ID, wi.Status, wi.ReportURL)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("workitem %s: %s", wi.ID, wi.Status)), nil
}

// cloudError maps an aps error onto its category: authentication for a
// rejected token, cloud for an API rejection, connectivity otherwise.
func cloudError(err error) *mcp.CallToolResult {
	var authErr *aps.AuthError
	if errors.As(err, &authErr) {
		return mcp.NewToolResultError("authentication error: " + err.Error())
	}
	var apiErr *aps.APIError
	if errors.As(err, &apiErr) {
		return mcp.NewToolResultError("cloud error: " + err.Error())
	}
	return mcp.NewToolResultError("connectivity error: " + err.Error())
}

// requireFloat extracts a required numeric parameter from the raw
// argument map. JSON numbers decode as float64, so a single type
// assertion covers every numeric argument an LLM can send; anything
// else (string, missing, null) fails extraction and the tool rejects
// the call before any network traffic.
func requireFloat(req mcp.CallToolRequest, name string) (float64, bool) {
	args, ok := req.Params.Arguments.(map[string]any)
	if !ok {
		return 0, false
	}
	v, ok := args[name].(float64)
	return v, ok
}
