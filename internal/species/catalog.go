package species

import (
	"fmt"
	"math"
	"strings"

	"github.com/hpungsan/sapling/internal/errors"
)

// Catalog is an ordered, read-only collection of tree species.
// It is safe for concurrent use; accessors hand out copies.
type Catalog struct {
	entries []TreeSpecies
	index   map[string]int
}

// New validates entries and builds a Catalog preserving their order.
// Rules:
// - ids are normalized and must be non-empty and unique
// - display names must be non-empty
// - rates must be finite and > 0, lifetimes > 0
// - at most one sentinel, and at least one non-sentinel entry
func New(entries []TreeSpecies) (*Catalog, error) {
	c := &Catalog{
		entries: make([]TreeSpecies, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	sentinels := 0
	for i, sp := range entries {
		sp.ID = NormalizeID(sp.ID)
		sp.DisplayName = strings.TrimSpace(sp.DisplayName)
		sp.Description = strings.TrimSpace(sp.Description)

		if sp.ID == "" {
			return nil, errors.NewInvalidCatalog(fmt.Sprintf("species[%d]: id is required", i))
		}
		if _, dup := c.index[sp.ID]; dup {
			return nil, errors.NewInvalidCatalog(fmt.Sprintf("duplicate species id: %s", sp.ID))
		}
		if sp.DisplayName == "" {
			return nil, errors.NewInvalidCatalog(fmt.Sprintf("species %s: display_name is required", sp.ID))
		}
		rate := sp.AnnualSequestrationKg
		if math.IsNaN(rate) || math.IsInf(rate, 0) || rate <= 0 {
			return nil, errors.NewInvalidCatalog(fmt.Sprintf("species %s: annual_sequestration_kg must be > 0", sp.ID))
		}
		if sp.TypicalLifetimeYears <= 0 {
			return nil, errors.NewInvalidCatalog(fmt.Sprintf("species %s: typical_lifetime_years must be > 0", sp.ID))
		}
		if sp.Sentinel {
			sentinels++
			if sentinels > 1 {
				return nil, errors.NewInvalidCatalog("catalog may contain at most one sentinel entry")
			}
		}

		c.index[sp.ID] = len(c.entries)
		c.entries = append(c.entries, sp)
	}

	if len(c.entries)-sentinels == 0 {
		return nil, errors.NewInvalidCatalog("catalog must contain at least one plannable species")
	}

	return c, nil
}

// MustNew is like New but panics on invalid input. Used for built-in tables.
func MustNew(entries []TreeSpecies) *Catalog {
	c, err := New(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// NormalizeID trims and lowercases a species id.
func NormalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// Len returns the number of entries, sentinel included.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// All returns every entry in catalog order, sentinel included.
func (c *Catalog) All() []TreeSpecies {
	out := make([]TreeSpecies, len(c.entries))
	copy(out, c.entries)
	return out
}

// Planning returns the entries eligible for plan generation (sentinel excluded),
// in catalog order.
func (c *Catalog) Planning() []TreeSpecies {
	out := make([]TreeSpecies, 0, len(c.entries))
	for _, sp := range c.entries {
		if sp.Sentinel {
			continue
		}
		out = append(out, sp)
	}
	return out
}

// Sentinel returns the generic "average" entry, if the catalog has one.
func (c *Catalog) Sentinel() (TreeSpecies, bool) {
	for _, sp := range c.entries {
		if sp.Sentinel {
			return sp, true
		}
	}
	return TreeSpecies{}, false
}

// Lookup finds a species by id (case and surrounding whitespace ignored).
// The sentinel is found like any other entry.
func (c *Catalog) Lookup(id string) (TreeSpecies, bool) {
	i, ok := c.index[NormalizeID(id)]
	if !ok {
		return TreeSpecies{}, false
	}
	return c.entries[i], true
}

// Find is Lookup with a NOT_FOUND error carrying suggestions on a miss.
func (c *Catalog) Find(id string) (TreeSpecies, error) {
	if sp, ok := c.Lookup(id); ok {
		return sp, nil
	}
	return TreeSpecies{}, errors.NewSpeciesNotFound(strings.TrimSpace(id), c.Suggest(id))
}
