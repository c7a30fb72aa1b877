package mcp

import "github.com/mark3labs/mcp-go/mcp"

var plansToolDef = mcp.NewTool("offset_plans",
	mcp.WithDescription("Rank tree-planting plans (species, tree count, years) that offset a CO2 target. "+
		"Plans are sorted by fewest trees, then shortest duration. A non-positive target returns an empty list."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithNumber("target_kg",
		mcp.Required(),
		mcp.Description("Kilograms of CO2 to offset"),
	),
)

var impactToolDef = mcp.NewTool("offset_impact",
	mcp.WithDescription("Compute the CO2 absorbed by a fixed number of trees over a number of years, "+
		"plus trees and years needed to offset one tonne."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("species",
		mcp.Required(),
		mcp.Description("Species id, e.g. mango or teak (see species_list)"),
	),
	mcp.WithNumber("trees",
		mcp.Required(),
		mcp.Description("Number of trees (>= 1)"),
	),
	mcp.WithNumber("years",
		mcp.Required(),
		mcp.Description("Number of years (>= 1)"),
	),
)

var speciesListToolDef = mcp.NewTool("species_list",
	mcp.WithDescription("List the tree species catalog with annual CO2 sequestration rates and typical lifetimes."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithBoolean("include_sentinel",
		mcp.Description("Include the generic 'average' entry that is never used for planning"),
	),
)

var pledgeStoreToolDef = mcp.NewTool("pledge_store",
	mcp.WithDescription("Record a commitment to one plan returned by offset_plans for the same target_kg. "+
		"Fails with INVALID_REQUEST if the species/trees/years combination is not an offered plan."),
	mcp.WithNumber("target_kg",
		mcp.Required(),
		mcp.Description("Kilograms of CO2 the plan was generated for"),
	),
	mcp.WithString("species",
		mcp.Required(),
		mcp.Description("Species id of the chosen plan"),
	),
	mcp.WithNumber("trees",
		mcp.Required(),
		mcp.Description("Tree count of the chosen plan"),
	),
	mcp.WithNumber("years",
		mcp.Required(),
		mcp.Description("Duration in years of the chosen plan"),
	),
	mcp.WithString("note",
		mcp.Description("Optional free-text note"),
	),
)

var pledgeFetchToolDef = mcp.NewTool("pledge_fetch",
	mcp.WithDescription("Fetch a stored pledge by id."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Pledge ULID"),
	),
)

var pledgeListToolDef = mcp.NewTool("pledge_list",
	mcp.WithDescription("List stored pledges, newest first."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithNumber("limit",
		mcp.Description("Max items (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Items to skip (default 0)"),
	),
)

var pledgeDeleteToolDef = mcp.NewTool("pledge_delete",
	mcp.WithDescription("Permanently delete a stored pledge."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Pledge ULID"),
	),
)

var pledgeSummaryToolDef = mcp.NewTool("pledge_summary",
	mcp.WithDescription("Total pledges, trees and CO2 across every stored pledge."),
	mcp.WithReadOnlyHintAnnotation(true),
)
