package models

// PaginatedResponse is the shared list-response envelope. Every listable
// resource (posts, comments, users) returns this exact shape.
type PaginatedResponse struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Items   any   `json:"items"`
}

// NewPaginatedResponse builds the envelope for a page defined by skip/limit.
// The page number is 1-based: skip 0..limit-1 is page 1, and so on.
func NewPaginatedResponse(total int64, skip, limit int, items any) PaginatedResponse {
	return PaginatedResponse{
		Total:   total,
		Page:    skip/limit + 1,
		PerPage: limit,
		Items:   items,
	}
}
