package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	stderrors "errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/sapling/internal/config"
	"github.com/hpungsan/sapling/internal/errors"
	"github.com/hpungsan/sapling/internal/ops"
	"github.com/hpungsan/sapling/internal/species"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db  *sql.DB
	cfg *config.Config
	cat *species.Catalog
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(db *sql.DB, cfg *config.Config, cat *species.Catalog) *Handlers {
	return &Handlers{db: db, cfg: cfg, cat: cat}
}

// Request types for each tool

// PlansRequest represents the arguments for offset_plans.
type PlansRequest struct {
	TargetKg *float64 `json:"target_kg"`
}

// ImpactRequest represents the arguments for offset_impact.
type ImpactRequest struct {
	Species string `json:"species"`
	Trees   int    `json:"trees"`
	Years   int    `json:"years"`
}

// SpeciesListRequest represents the arguments for species_list.
type SpeciesListRequest struct {
	IncludeSentinel bool `json:"include_sentinel,omitempty"`
}

// PledgeStoreRequest represents the arguments for pledge_store.
type PledgeStoreRequest struct {
	TargetKg float64 `json:"target_kg"`
	Species  string  `json:"species"`
	Trees    int     `json:"trees"`
	Years    int     `json:"years"`
	Note     *string `json:"note,omitempty"`
}

// PledgeIDRequest represents the arguments for pledge_fetch and pledge_delete.
type PledgeIDRequest struct {
	ID string `json:"id"`
}

// PledgeListRequest represents the arguments for pledge_list.
type PledgeListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Handler implementations

// HandlePlans handles the offset_plans tool call.
func (h *Handlers) HandlePlans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PlansRequest](req)
	if err != nil {
		return errorResult(err), nil
	}
	if input.TargetKg == nil {
		return errorResult(errors.NewInvalidRequest("target_kg is required")), nil
	}

	result, err := ops.Plans(h.cat, h.cfg, ops.PlansInput{TargetKg: *input.TargetKg})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleImpact handles the offset_impact tool call.
func (h *Handlers) HandleImpact(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ImpactRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Impact(h.cat, ops.ImpactInput{
		SpeciesID: input.Species,
		Trees:     input.Trees,
		Years:     input.Years,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleSpeciesList handles the species_list tool call.
func (h *Handlers) HandleSpeciesList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SpeciesListRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(ops.SpeciesList(h.cat, ops.SpeciesInput{IncludeSentinel: input.IncludeSentinel}))
}

// HandlePledgeStore handles the pledge_store tool call.
func (h *Handlers) HandlePledgeStore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PledgeStoreRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.PledgeStore(ctx, h.db, h.cat, h.cfg, ops.PledgeStoreInput{
		TargetKg:  input.TargetKg,
		SpeciesID: input.Species,
		Trees:     input.Trees,
		Years:     input.Years,
		Note:      input.Note,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePledgeFetch handles the pledge_fetch tool call.
func (h *Handlers) HandlePledgeFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PledgeIDRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.PledgeFetch(ctx, h.db, ops.PledgeFetchInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePledgeList handles the pledge_list tool call.
func (h *Handlers) HandlePledgeList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PledgeListRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.PledgeList(ctx, h.db, ops.PledgeListInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePledgeDelete handles the pledge_delete tool call.
func (h *Handlers) HandlePledgeDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PledgeIDRequest](req)
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.PledgeDelete(ctx, h.db, ops.PledgeDeleteInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePledgeSummary handles the pledge_summary tool call.
func (h *Handlers) HandlePledgeSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.PledgeSummary(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are never exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	var se *errors.SaplingError
	if stderrors.As(err, &se) {
		message := se.Message
		if err != error(se) {
			// Keep wrapper context
			message = err.Error()
		}
		errorObj := map[string]any{
			"code":    se.Code,
			"message": message,
			"status":  se.Status,
		}
		if se.Code != errors.ErrInternal && se.Details != nil {
			errorObj["details"] = se.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    errors.ErrInternal,
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
