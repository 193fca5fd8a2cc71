package models

import "encoding/json"

// Paginate coerces (page, limit) to positive integers and returns the
// matching SQL limit/offset pair. page starts at 1.
func Paginate(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	return limit, (page - 1) * limit
}

// Page is the envelope every filter endpoint returns.
type Page struct {
	Items       json.RawMessage `json:"items"`
	TotalItems  int             `json:"totalItems"`
	CurrentPage int             `json:"currentPage"`
	TotalPages  int             `json:"totalPages"`
}

// PageData wraps a single (json_agg, count(*) over()) aggregate row into a
// Page. The aggregate row comes back with NULL data and NULL count when
// nothing matched; that maps to an empty items array, not an error.
func PageData(data json.RawMessage, count int, page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}
	if len(data) == 0 || string(data) == "null" {
		data = json.RawMessage("[]")
	}
	totalPages := (count + limit - 1) / limit
	return Page{
		Items:       data,
		TotalItems:  count,
		CurrentPage: page,
		TotalPages:  totalPages,
	}
}
