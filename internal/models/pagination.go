package models

// Pagination describes a page window over a collection.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// DerivePagination builds a Pagination with the navigation flags computed
// from the page counts. An empty collection has zero pages and no
// navigation in either direction.
func DerivePagination(currentPage, totalPages, totalCount int) Pagination {
	if totalCount <= 0 {
		return Pagination{CurrentPage: currentPage}
	}
	return Pagination{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalCount:  totalCount,
		HasNext:     currentPage < totalPages,
		HasPrev:     currentPage > 1,
	}
}
