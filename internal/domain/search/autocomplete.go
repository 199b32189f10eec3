package search

// Autocomplete parameters fixed by the catalog design.
const (
	// AutocompleteIndex is the prefix index over product names.
	AutocompleteIndex = "name_ac"
	// AutocompleteMaxEdits is the fuzzy tolerance for suggestions. Tighter
	// than filter matching: one edit is enough for typo recovery on prefixes.
	AutocompleteMaxEdits = 1
	// AutocompleteLimit caps the number of suggestions.
	AutocompleteLimit = 5
)

// AutocompletePlan is a single-stage name suggestion lookup.
type AutocompletePlan struct {
	query string
}

// NewAutocompletePlan creates a suggestion lookup for a partial name.
func NewAutocompletePlan(query string) AutocompletePlan {
	return AutocompletePlan{query: query}
}

// Query returns the partial name to complete.
func (p AutocompletePlan) Query() string { return p.query }

// Limit returns the suggestion cap.
func (p AutocompletePlan) Limit() int { return AutocompleteLimit }
