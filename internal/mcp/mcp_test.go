package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/sapling/internal/config"
	"github.com/hpungsan/sapling/internal/db"
	"github.com/hpungsan/sapling/internal/errors"
	"github.com/hpungsan/sapling/internal/species"
)

// testSetup creates a temporary database and config for testing.
func testSetup(t *testing.T) (*sql.DB, *config.Config, func()) {
	t.Helper()

	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("failed to init db: %v", err)
	}

	cleanup := func() {
		database.Close()
	}

	return database, config.DefaultConfig(), cleanup
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func TestHandlePlans(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, species.Default())
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
		wantCount int
	}{
		{
			name:      "positive target",
			args:      map[string]any{"target_kg": 1000},
			wantCount: 12,
		},
		{
			name:      "zero target is empty success",
			args:      map[string]any{"target_kg": 0},
			wantCount: 0,
		},
		{
			name:      "infeasible target is empty success",
			args:      map[string]any{"target_kg": 1e9},
			wantCount: 0,
		},
		{
			name:      "missing target",
			args:      map[string]any{},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name:      "non-numeric target",
			args:      map[string]any{"target_kg": "lots"},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandlePlans(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}

			if tt.wantError {
				if !result.IsError {
					t.Fatalf("expected error result, got success")
				}
				assertErrorCode(t, result, tt.errorCode)
				return
			}

			output := parseOutput(t, result)
			plans, ok := output["plans"].([]any)
			if !ok {
				t.Fatalf("plans = %T, want array", output["plans"])
			}
			if len(plans) != tt.wantCount {
				t.Errorf("len(plans) = %d, want %d", len(plans), tt.wantCount)
			}
		})
	}
}

func TestHandlePlans_FirstPlan(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, species.Default())
	result, err := h.HandlePlans(context.Background(), makeRequest(map[string]any{"target_kg": 1000}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	output := parseOutput(t, result)
	first := output["plans"].([]any)[0].(map[string]any)
	if first["species_id"] != "bamboo" {
		t.Errorf("species_id = %v, want bamboo", first["species_id"])
	}
	if first["tree_count"] != float64(3) || first["duration_years"] != float64(10) {
		t.Errorf("first plan = %v, want 3 trees x 10 years", first)
	}
}

func TestHandleImpact(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, species.Default())
	ctx := context.Background()

	result, err := h.HandleImpact(ctx, makeRequest(map[string]any{"species": "neem", "trees": 2, "years": 3}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	output := parseOutput(t, result)
	if output["co2_absorbed_kg"] != float64(132) {
		t.Errorf("co2_absorbed_kg = %v, want 132", output["co2_absorbed_kg"])
	}
	if output["trees_per_tonne"] != float64(46) {
		t.Errorf("trees_per_tonne = %v, want 46", output["trees_per_tonne"])
	}

	result, err = h.HandleImpact(ctx, makeRequest(map[string]any{"species": "neam", "trees": 2, "years": 3}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "NOT_FOUND")
	if !strings.Contains(extractErrorMessage(result), "neem") {
		t.Errorf("expected suggestion for neem, got: %s", extractErrorMessage(result))
	}

	result, err = h.HandleImpact(ctx, makeRequest(map[string]any{"species": "neem", "trees": 0, "years": 3}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "INVALID_REQUEST")
}

func TestHandleSpeciesList(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, species.Default())
	ctx := context.Background()

	result, err := h.HandleSpeciesList(ctx, makeRequest(map[string]any{}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := parseOutput(t, result)["count"]; got != float64(11) {
		t.Errorf("count = %v, want 11", got)
	}

	result, err = h.HandleSpeciesList(ctx, makeRequest(map[string]any{"include_sentinel": true}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if got := parseOutput(t, result)["count"]; got != float64(12) {
		t.Errorf("count = %v, want 12", got)
	}
}

func TestHandlePledgeLifecycle(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, species.Default())
	ctx := context.Background()

	// Store
	result, err := h.HandlePledgeStore(ctx, makeRequest(map[string]any{
		"target_kg": 1000,
		"species":   "bamboo",
		"trees":     3,
		"years":     10,
		"note":      "office offset",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	id, ok := parseOutput(t, result)["id"].(string)
	if !ok || id == "" {
		t.Fatal("store returned no id")
	}

	// Fetch
	result, err = h.HandlePledgeFetch(ctx, makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	fetched := parseOutput(t, result)
	if fetched["note"] != "office offset" || fetched["species_id"] != "bamboo" {
		t.Errorf("fetched = %v", fetched)
	}

	// List
	result, err = h.HandlePledgeList(ctx, makeRequest(map[string]any{"limit": 5}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	listed := parseOutput(t, result)
	if items := listed["items"].([]any); len(items) != 1 {
		t.Errorf("len(items) = %d, want 1", len(items))
	}

	// Summary
	result, err = h.HandlePledgeSummary(ctx, makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	summary := parseOutput(t, result)
	if summary["trees"] != float64(3) || summary["total_sequestered_kg"] != float64(1050) {
		t.Errorf("summary = %v", summary)
	}

	// Delete
	result, err = h.HandlePledgeDelete(ctx, makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if parseOutput(t, result)["deleted"] != true {
		t.Error("deleted = false, want true")
	}

	// Fetch after delete
	result, err = h.HandlePledgeFetch(ctx, makeRequest(map[string]any{"id": id}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestHandlePledgeStore_Errors(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	h := NewHandlers(database, cfg, species.Default())
	ctx := context.Background()

	tests := []struct {
		name      string
		args      map[string]any
		errorCode string
	}{
		{
			name:      "not an offered plan",
			args:      map[string]any{"target_kg": 1000, "species": "bamboo", "trees": 4, "years": 10},
			errorCode: "INVALID_REQUEST",
		},
		{
			name:      "unknown species",
			args:      map[string]any{"target_kg": 1000, "species": "birch", "trees": 3, "years": 10},
			errorCode: "NOT_FOUND",
		},
		{
			name:      "fractional trees",
			args:      map[string]any{"target_kg": 1000, "species": "bamboo", "trees": 3.5, "years": 10},
			errorCode: "INVALID_REQUEST",
		},
		{
			name:      "note too large",
			args:      map[string]any{"target_kg": 1000, "species": "bamboo", "trees": 3, "years": 10, "note": strings.Repeat("n", 501)},
			errorCode: "NOTE_TOO_LARGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandlePledgeStore(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if !result.IsError {
				t.Fatalf("expected error result, got success")
			}
			assertErrorCode(t, result, tt.errorCode)
		})
	}
}

func TestServerRegistration(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	s := NewServer(database, cfg, species.Default(), "test")
	tools := s.ListTools()
	if tools == nil {
		t.Fatal("expected tools to be registered, got nil")
	}

	expectedTools := []string{
		"offset_plans",
		"offset_impact",
		"species_list",
		"pledge_store",
		"pledge_fetch",
		"pledge_list",
		"pledge_delete",
		"pledge_summary",
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("registered tool count = %d, want %d", len(tools), len(expectedTools))
	}

	for _, name := range expectedTools {
		if _, ok := tools[name]; !ok {
			t.Errorf("missing registered tool: %s", name)
		}
	}
}

func TestServerRegistration_WithDisabledTools(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTools = []string{"pledge_delete", "pledge_delete"}
	s := NewServer(database, cfg, species.Default(), "test")
	tools := s.ListTools()

	if len(tools) != 7 {
		t.Errorf("registered tool count = %d, want 7", len(tools))
	}
	if _, ok := tools["pledge_delete"]; ok {
		t.Error("disabled tool 'pledge_delete' should not be registered")
	}
}

func TestServerRegistration_WithDisabledTypes(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTypes = []string{"pledge"}
	s := NewServer(database, cfg, species.Default(), "test")
	tools := s.ListTools()

	if len(tools) != 3 {
		t.Errorf("registered tool count = %d, want 3", len(tools))
	}
	for name := range tools {
		if GetTypeForTool(name) == "pledge" {
			t.Errorf("tool %q of disabled type should not be registered", name)
		}
	}
}

func TestServerRegistration_AllToolsDisabled(t *testing.T) {
	database, cfg, cleanup := testSetup(t)
	defer cleanup()

	cfg.DisabledTools = AllToolNames()
	s := NewServer(database, cfg, species.Default(), "test")

	if tools := s.ListTools(); len(tools) != 0 {
		t.Errorf("registered tool count = %d, want 0 (all disabled)", len(tools))
	}
}

func TestValidateDisabledTools(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantLen int
	}{
		{"all valid", []string{"pledge_delete", "offset_impact"}, 0},
		{"one unknown", []string{"pledge_delete", "fake_tool"}, 1},
		{"all unknown", []string{"foo", "bar", "baz"}, 3},
		{"empty list", []string{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unknown := ValidateDisabledTools(tt.input)
			if len(unknown) != tt.wantLen {
				t.Errorf("ValidateDisabledTools() returned %d unknown, want %d", len(unknown), tt.wantLen)
			}
		})
	}
}

func TestValidateDisabledTypes(t *testing.T) {
	unknown := ValidateDisabledTypes([]string{"offset", "orchard", "pledge"})
	if len(unknown) != 1 || unknown[0] != "orchard" {
		t.Errorf("ValidateDisabledTypes() = %v, want [orchard]", unknown)
	}
}

func TestExpandTypesToTools(t *testing.T) {
	if got := ExpandTypesToTools(nil); got != nil {
		t.Errorf("ExpandTypesToTools(nil) = %v, want nil", got)
	}
	if got := ExpandTypesToTools([]string{"offset"}); len(got) != 2 {
		t.Errorf("ExpandTypesToTools(offset) = %v, want 2 tools", got)
	}
	if got := ExpandTypesToTools([]string{"species", "pledge"}); len(got) != 6 {
		t.Errorf("ExpandTypesToTools(species, pledge) = %v, want 6 tools", got)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != 8 {
		t.Errorf("AllToolNames() returned %d names, want 8", len(names))
	}
	if unknown := ValidateDisabledTools(names); len(unknown) != 0 {
		t.Errorf("AllToolNames() returned invalid names: %v", unknown)
	}
}

func TestErrorResult_InternalDoesNotExposeDetails(t *testing.T) {
	r := errorResult(errors.NewInternal(fmt.Errorf("sql error: open /tmp/secret.db: permission denied")))
	if !r.IsError {
		t.Fatal("expected IsError=true")
	}

	errObj := parseErrorObject(t, r)
	if errObj["code"] != string(errors.ErrInternal) {
		t.Fatalf("code=%v, want %v", errObj["code"], errors.ErrInternal)
	}
	if _, ok := errObj["details"]; ok {
		t.Fatal("expected INTERNAL errors to omit details")
	}
}

func TestErrorResult_WrappedErrorPreservesContext(t *testing.T) {
	wrappedErr := fmt.Errorf("pledge 3: %w", errors.NewPledgeNotFound("01HX"))

	errObj := parseErrorObject(t, errorResult(wrappedErr))
	if errObj["code"] != string(errors.ErrNotFound) {
		t.Errorf("code=%v, want %v", errObj["code"], errors.ErrNotFound)
	}
	if msg := errObj["message"].(string); !strings.Contains(msg, "pledge 3") {
		t.Errorf("message should contain wrapper context, got: %s", msg)
	}
}

func TestErrorResult_NonInternalIncludesDetails(t *testing.T) {
	errObj := parseErrorObject(t, errorResult(errors.NewSpeciesNotFound("mangoo", []string{"mango"})))
	if errObj["code"] != string(errors.ErrNotFound) {
		t.Fatalf("code=%v, want %v", errObj["code"], errors.ErrNotFound)
	}
	details, ok := errObj["details"].(map[string]any)
	if !ok {
		t.Fatal("expected non-INTERNAL errors to include details when present")
	}
	if suggestions := details["suggestions"].([]any); len(suggestions) != 1 || suggestions[0] != "mango" {
		t.Errorf("suggestions = %v, want [mango]", suggestions)
	}
}

func TestErrorResult_PlainError(t *testing.T) {
	errObj := parseErrorObject(t, errorResult(fmt.Errorf("boom")))
	if errObj["code"] != string(errors.ErrInternal) || errObj["message"] != "an internal error occurred" {
		t.Errorf("error = %v, want generic INTERNAL", errObj)
	}
}

func TestDecode_TypeErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]any
		wantMsg string
	}{
		{"string for number", map[string]any{"species": "teak", "trees": "four", "years": 9}, "trees must be a number"},
		{"number for string", map[string]any{"species": 7, "trees": 4, "years": 9}, "species must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decode[ImpactRequest](makeRequest(tt.args))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrInvalidRequest) {
				t.Errorf("expected INVALID_REQUEST, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}

	input, err := decode[ImpactRequest](makeRequest(map[string]any{"species": "teak", "trees": 4, "years": 9}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if input.Species != "teak" || input.Trees != 4 || input.Years != 9 {
		t.Errorf("unexpected decode result: %+v", input)
	}
}

// Helper functions

// parseOutput extracts and unmarshals the JSON output from an MCP result.
func parseOutput(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}
	var output map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &output); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	return output
}

// parseErrorObject returns the "error" object of an error result.
func parseErrorObject(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &payload); err != nil {
		t.Fatalf("failed to unmarshal error payload: %v", err)
	}
	errObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Fatal("no error object in payload")
	}
	return errObj
}

func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if len(result.Content) == 0 {
		t.Errorf("no content in error result")
		return
	}

	if code, _ := parseErrorObject(t, result)["code"].(string); code != expectedCode {
		t.Errorf("got error code %q, want %q", code, expectedCode)
	}
}

func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}
