package payload

// Sort order constants.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Shared pagination types.
type (
	// ListReqQuery holds the pagination parameters (bound from the query
	// string). Extra filters cannot be embedded through composition, Gin
	// validation requires them to be declared on the request struct itself.
	ListReqQuery struct {
		PageIndex *int `form:"pageIndex" binding:"required"` // page number, starting at 0
		PageSize  *int `form:"pageSize" binding:"required"`
	}
	ListResp[T any] struct {
		Rows  []T   `json:"rows"`
		Count int64 `json:"count"`
	}
)
