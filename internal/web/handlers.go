package web

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"github.com/hpungsan/sapling/internal/config"
	"github.com/hpungsan/sapling/internal/errors"
	"github.com/hpungsan/sapling/internal/ops"
	"github.com/hpungsan/sapling/internal/species"
)

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	cat      *species.Catalog
	renderer *Renderer
}

// HandlePlans handles GET /plans: the plan finder form and its results.
func (h *Handlers) HandlePlans(w http.ResponseWriter, r *http.Request) {
	raw := strings.TrimSpace(r.URL.Query().Get("target_kg"))

	data := PlansPageData{
		PageData: PageData{
			Title:   "Offset plans",
			Version: h.renderer.version,
			Nav:     "plans",
		},
		TargetKg:     raw,
		HasTarget:    raw != "",
		NoteMaxChars: h.noteMaxChars(),
	}

	if data.HasTarget {
		target, err := parseTarget(raw)
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		result, err := ops.Plans(h.cat, h.cfg, ops.PlansInput{TargetKg: target})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		data.Result = result
	}

	// If the request targets #results, render only the results fragment
	if r.Header.Get("HX-Target") == "results" {
		h.renderer.renderBlock(w, http.StatusOK, "plans", "plan-results", data)
		return
	}

	h.renderer.renderPage(w, r, "plans", data)
}

// noteMaxChars is the configured pledge note limit.
func (h *Handlers) noteMaxChars() int {
	if h.cfg == nil {
		return config.DefaultConfig().NoteMaxChars
	}
	return h.cfg.NoteMaxChars
}

// HandleSpecies handles GET /species: the catalog with rendered descriptions.
func (h *Handlers) HandleSpecies(w http.ResponseWriter, r *http.Request) {
	includeSentinel := parseBoolParam(r, "include_sentinel")
	result := ops.SpeciesList(h.cat, ops.SpeciesInput{IncludeSentinel: includeSentinel})

	items := make([]SpeciesView, len(result.Items))
	for i, sp := range result.Items {
		items[i] = SpeciesView{
			TreeSpecies:     sp,
			DescriptionHTML: renderMarkdown(sp.Description),
		}
	}

	h.renderer.renderPage(w, r, "species", SpeciesPageData{
		PageData: PageData{
			Title:   "Species",
			Version: h.renderer.version,
			Nav:     "species",
		},
		Items:           items,
		IncludeSentinel: includeSentinel,
	})
}

// HandlePledges handles GET /pledges: stored pledges and their totals.
func (h *Handlers) HandlePledges(w http.ResponseWriter, r *http.Request) {
	result, err := ops.PledgeList(r.Context(), h.db, ops.PledgeListInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	summary, err := ops.PledgeSummary(r.Context(), h.db)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, r, "pledges", PledgesPageData{
		PageData: PageData{
			Title:   "Pledges",
			Version: h.renderer.version,
			Nav:     "pledges",
		},
		Items:      result.Items,
		Pagination: result.Pagination,
		Summary:    summary,
	})
}

// HandleCreatePledge handles POST /pledges: commit to a plan card.
func (h *Handlers) HandleCreatePledge(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	target, err := parseTarget(r.FormValue("target_kg"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	trees, err := parseFormInt(r, "trees")
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	years, err := parseFormInt(r, "years")
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	result, err := ops.PledgeStore(r.Context(), h.db, h.cat, h.cfg, ops.PledgeStoreInput{
		TargetKg:  target,
		SpeciesID: r.FormValue("species"),
		Trees:     trees,
		Years:     years,
		Note:      ptrString(r.FormValue("note")),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// Partial request: redirect via HX-Redirect header
	if isPartial(r) {
		w.Header().Set("HX-Redirect", "/pledges")
		w.WriteHeader(http.StatusCreated)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusCreated, result)
		return
	}

	// Default: post/redirect/get
	http.Redirect(w, r, "/pledges", http.StatusSeeOther)
}

// HandleDeletePledge handles DELETE /pledges/{id}: permanently remove a pledge.
func (h *Handlers) HandleDeletePledge(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("pledge ID is required"))
		return
	}

	result, err := ops.PledgeDelete(r.Context(), h.db, ops.PledgeDeleteInput{ID: id})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	// Partial request: redirect via HX-Redirect header
	if isPartial(r) {
		w.Header().Set("HX-Redirect", "/pledges")
		w.WriteHeader(http.StatusOK)
		return
	}

	if wantsJSON(r) {
		renderJSON(w, http.StatusOK, result)
		return
	}

	// Default: redirect
	http.Redirect(w, r, "/pledges", http.StatusFound)
}

// HandleAPIPlans handles GET /api/plans: plans as JSON.
func (h *Handlers) HandleAPIPlans(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("target_kg")
	if strings.TrimSpace(raw) == "" {
		renderJSONError(w, errors.NewInvalidRequest("target_kg is required"))
		return
	}

	target, err := parseTarget(raw)
	if err != nil {
		renderJSONError(w, asSaplingError(err))
		return
	}

	result, err := ops.Plans(h.cat, h.cfg, ops.PlansInput{TargetKg: target})
	if err != nil {
		renderJSONError(w, asSaplingError(err))
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleAPIImpact handles GET /api/impact: the impact calculator as JSON.
func (h *Handlers) HandleAPIImpact(w http.ResponseWriter, r *http.Request) {
	trees, err := parseQueryInt(r, "trees")
	if err != nil {
		renderJSONError(w, asSaplingError(err))
		return
	}
	years, err := parseQueryInt(r, "years")
	if err != nil {
		renderJSONError(w, asSaplingError(err))
		return
	}

	result, err := ops.Impact(h.cat, ops.ImpactInput{
		SpeciesID: r.URL.Query().Get("species"),
		Trees:     trees,
		Years:     years,
	})
	if err != nil {
		renderJSONError(w, asSaplingError(err))
		return
	}

	renderJSON(w, http.StatusOK, result)
}

// HandleAPISpecies handles GET /api/species: the catalog as JSON.
func (h *Handlers) HandleAPISpecies(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, ops.SpeciesList(h.cat, ops.SpeciesInput{
		IncludeSentinel: parseBoolParam(r, "include_sentinel"),
	}))
}

// parseTarget parses a target_kg value. Range checks are left to ops.
func parseTarget(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, errors.NewInvalidRequest("target_kg must be a number")
	}
	return v, nil
}

// parseFormInt parses a required integer form field.
func parseFormInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r.FormValue(name)))
	if err != nil {
		return 0, errors.NewInvalidRequest(name + " must be an integer")
	}
	return v, nil
}

// parseQueryInt parses a required integer query parameter.
func parseQueryInt(r *http.Request, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		return 0, errors.NewInvalidRequest(name + " must be an integer")
	}
	return v, nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseBoolParam parses a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	s := r.URL.Query().Get(name)
	return s == "true" || s == "1"
}

// ptrString returns a pointer to s if non-empty, nil otherwise.
func ptrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
