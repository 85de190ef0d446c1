package listing

import (
	"net/url"
	"strconv"
	"strings"

	"shelf/internal/catalog"
	"shelf/internal/session"
)

// LimitAll disables pagination when supplied as the limit parameter.
const LimitAll = "all"

// Recognized list-view parameter names. Anything else on the request is
// ignored.
const (
	paramQuery     = "q"
	paramCategory  = "category"
	paramLocation  = "location"
	paramLent      = "lent"
	paramSortField = "sort_field"
	paramSortOrder = "sort_order"
	paramLimit     = "limit"
	paramPage      = "page"
	paramReset     = "reset"
)

// filterKeys are the parameters that constitute filter state. The page number
// is deliberately absent; it navigates within a view rather than defining one.
var filterKeys = []string{
	paramQuery,
	paramCategory,
	paramLocation,
	paramLent,
	paramSortField,
	paramSortOrder,
	paramLimit,
}

var knownCategories = map[string]bool{
	catalog.CategoryBook:  true,
	catalog.CategoryCD:    true,
	catalog.CategoryVinyl: true,
	catalog.CategoryFilm:  true,
	catalog.CategoryGame:  true,
	catalog.CategoryOther: true,
}

// hasFilterKeys reports whether the request supplies any filter state at all.
func hasFilterKeys(values url.Values) bool {
	for _, key := range filterKeys {
		if values.Has(key) {
			return true
		}
	}
	return false
}

// stateFromValues captures exactly the supplied filter parameters. Keys absent
// from the request stay empty; the caller stores the result wholesale, which
// is what makes a new filter request replace rather than patch the old state.
func stateFromValues(values url.Values) session.FilterState {
	return session.FilterState{
		Query:     strings.TrimSpace(values.Get(paramQuery)),
		Category:  strings.TrimSpace(values.Get(paramCategory)),
		Location:  strings.TrimSpace(values.Get(paramLocation)),
		Lent:      strings.TrimSpace(values.Get(paramLent)),
		SortField: strings.TrimSpace(values.Get(paramSortField)),
		SortOrder: strings.TrimSpace(values.Get(paramSortOrder)),
		Limit:     strings.TrimSpace(values.Get(paramLimit)),
	}
}

// valuesFromState reconstructs request parameters from remembered state,
// omitting empty fields so the rebuilt URL carries only what was supplied.
func valuesFromState(state session.FilterState) url.Values {
	values := url.Values{}
	set := func(key, value string) {
		if value != "" {
			values.Set(key, value)
		}
	}
	set(paramQuery, state.Query)
	set(paramCategory, state.Category)
	set(paramLocation, state.Location)
	set(paramLent, state.Lent)
	set(paramSortField, state.SortField)
	set(paramSortOrder, state.SortOrder)
	set(paramLimit, state.Limit)
	return values
}

// parsePositiveInt coerces a request integer, falling back when the value is
// missing, unparseable, or not positive. Malformed input never errors here.
func parsePositiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func parseSortField(raw string) string {
	switch raw {
	case catalog.SortAdded, catalog.SortTitle, catalog.SortAuthor, catalog.SortYear:
		return raw
	default:
		return ""
	}
}

func parseSortOrder(raw string) string {
	switch raw {
	case catalog.OrderAsc, catalog.OrderDesc:
		return raw
	default:
		return ""
	}
}

func parseCategory(raw string) string {
	if knownCategories[raw] {
		return raw
	}
	return ""
}

func parseLent(raw string) catalog.LentFilter {
	switch raw {
	case "yes":
		return catalog.LentOnly
	case "no":
		return catalog.LentExcluded
	default:
		return catalog.LentAny
	}
}
