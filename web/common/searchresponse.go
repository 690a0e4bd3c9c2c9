package common

type Pagination struct {
	Total int64 `json:"total"`
}

type SearchResponse struct {
	Data       any        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// NewListResponse wraps an unpaged list; total is its length.
func NewListResponse[T any](items []T) *SearchResponse {
	if items == nil {
		items = []T{}
	}
	return &SearchResponse{
		Data: items,
		Pagination: Pagination{
			Total: int64(len(items)),
		},
	}
}
