package dto

// Pagination is the page envelope returned by search.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination derives the page count from a total row count.
func NewPagination(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// SearchFilter holds the /items/search query parameters. Category and
// condition accept comma-separated multi-values.
type SearchFilter struct {
	Keyword   string   `form:"keyword"`
	Category  string   `form:"category"`
	Condition string   `form:"condition"`
	MinPrice  *float64 `form:"minPrice" binding:"omitempty,min=0"`
	MaxPrice  *float64 `form:"maxPrice" binding:"omitempty,min=0"`
	SortBy    string   `form:"sortBy"`
	Page      int      `form:"page" binding:"omitempty,min=1"`
	PageSize  int      `form:"pageSize" binding:"omitempty,min=1,max=100"`
}

// ListFilter holds the plain /items listing query parameters.
type ListFilter struct {
	Category string `form:"category"`
	Status   string `form:"status"`
	SellerID string `form:"sellerId"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"pageSize" binding:"omitempty,min=1,max=100"`
}
