package domain

import (
	"net/url"
	"strconv"
)

// Pagination is the server-reported list metadata. The client never
// recomputes it beyond display math.
type Pagination struct {
	TotalItems   int `json:"total_items"`
	TotalPages   int `json:"total_pages"`
	CurrentPage  int `json:"current_page"`
	ItemsPerPage int `json:"items_per_page"`
}

// Showing returns the 1-based inclusive item range of the current page
// for "showing X-Y of Z" summaries. Returns (0, 0) for an empty list.
func (p Pagination) Showing() (first, last int) {
	if p.TotalItems == 0 {
		return 0, 0
	}
	first = (p.CurrentPage-1)*p.ItemsPerPage + 1
	last = first + p.ItemsPerPage - 1
	if last > p.TotalItems {
		last = p.TotalItems
	}
	return first, last
}

// Criteria is a filter-criteria object attached to list requests as
// query parameters. Implementations must be plain comparable structs
// so stores can detect changes by value.
type Criteria interface {
	Values() url.Values
}

// AssetFilter is the UI-owned filter state of an asset list. It lives
// only for the lifetime of the view and resets the page on change.
type AssetFilter struct {
	Search           string
	LocationID       int
	Condition        Condition
	ResponsibleParty string
	StartDate        string
	EndDate          string
}

func (f AssetFilter) Values() url.Values {
	v := url.Values{}
	setNonEmpty(v, "search", f.Search)
	if f.LocationID > 0 {
		v.Set("location_id", strconv.Itoa(f.LocationID))
	}
	setNonEmpty(v, "condition", string(f.Condition))
	setNonEmpty(v, "penanggung_jawab", f.ResponsibleParty)
	setNonEmpty(v, "start_date", f.StartDate)
	setNonEmpty(v, "end_date", f.EndDate)
	return v
}

// LocationFilter is the filter state of a location list.
type LocationFilter struct {
	Search string
}

func (f LocationFilter) Values() url.Values {
	v := url.Values{}
	setNonEmpty(v, "search", f.Search)
	return v
}

// UserFilter is the filter state of a user list.
type UserFilter struct {
	Search string
	Role   Role
}

func (f UserFilter) Values() url.Values {
	v := url.Values{}
	setNonEmpty(v, "search", f.Search)
	setNonEmpty(v, "role", string(f.Role))
	return v
}

func setNonEmpty(v url.Values, key, value string) {
	if value != "" {
		v.Set(key, value)
	}
}
