package species

// SentinelID is the id of the generic entry in the built-in catalog.
const SentinelID = "average"

// Rates are kg CO2 per tree per year (EPA, Arbor Day Foundation,
// Bangladesh Forest Research Institute).
var builtinSpecies = []TreeSpecies{
	{ID: "mango", DisplayName: "Mango Tree", AnnualSequestrationKg: 20.5, TypicalLifetimeYears: 200,
		Description: "National tree of Bangladesh, excellent for carbon sequestration"},
	{ID: "neem", DisplayName: "Neem Tree", AnnualSequestrationKg: 22.0, TypicalLifetimeYears: 150,
		Description: "Native to Bangladesh, fast-growing and highly effective"},
	{ID: "coconut", DisplayName: "Coconut Tree", AnnualSequestrationKg: 18.5, TypicalLifetimeYears: 100,
		Description: "Common in coastal areas, good for carbon absorption"},
	{ID: "jackfruit", DisplayName: "Jackfruit Tree", AnnualSequestrationKg: 25.0, TypicalLifetimeYears: 80,
		Description: "National fruit of Bangladesh, excellent carbon sink"},
	{ID: "teak", DisplayName: "Teak Tree", AnnualSequestrationKg: 28.0, TypicalLifetimeYears: 300,
		Description: "Valuable hardwood, long-lived carbon storage"},
	{ID: "banyan", DisplayName: "Banyan Tree", AnnualSequestrationKg: 30.0, TypicalLifetimeYears: 500,
		Description: "Sacred tree, massive carbon sequestration capacity"},
	{ID: "gulmohar", DisplayName: "Gulmohar Tree", AnnualSequestrationKg: 19.0, TypicalLifetimeYears: 120,
		Description: "Beautiful flowering tree, good for urban areas"},
	{ID: "mahogany", DisplayName: "Mahogany Tree", AnnualSequestrationKg: 26.5, TypicalLifetimeYears: 250,
		Description: "Premium hardwood, excellent carbon storage"},
	{ID: "bamboo", DisplayName: "Bamboo", AnnualSequestrationKg: 35.0, TypicalLifetimeYears: 20,
		Description: "Fast-growing, **highest** carbon absorption rate"},
	{ID: "tamarind", DisplayName: "Tamarind Tree", AnnualSequestrationKg: 21.0, TypicalLifetimeYears: 200,
		Description: "Common in Bangladesh, good carbon sequestration"},
	{ID: "kadam", DisplayName: "Kadam Tree", AnnualSequestrationKg: 23.5, TypicalLifetimeYears: 150,
		Description: "Native flowering tree, effective carbon sink"},
	{ID: SentinelID, DisplayName: "Average Tree", AnnualSequestrationKg: 21.77, TypicalLifetimeYears: 40,
		Description: "Average carbon absorption for general calculations", Sentinel: true},
}

var builtin = MustNew(builtinSpecies)

// Default returns the built-in catalog. It is built once at package init.
func Default() *Catalog {
	return builtin
}
