package dto

// PaginatedResponse is the envelope for every list endpoint.
type PaginatedResponse struct {
	Count   int64 `json:"count"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	Results any   `json:"results"`
}

func NewPaginatedResponse(results any, count int64, limit, offset int) *PaginatedResponse {
	return &PaginatedResponse{
		Count:   count,
		Limit:   limit,
		Offset:  offset,
		Results: results,
	}
}
