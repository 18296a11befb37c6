package request

import "cinema-pos/pkg/utils"

type PaginatedRequest struct {
	Page    int `json:"page" validate:"min=1"`
	PerPage int `json:"per_page" validate:"min=1,max=100"`
}

func (p PaginatedRequest) Offset() int {
	return utils.CalculateOffset(p.Page, p.Limit())
}

func (p PaginatedRequest) Limit() int {
	return utils.ClampPerPage(p.PerPage, 10, 100)
}

// OrderListRequest filters the order history.
type OrderListRequest struct {
	PaginatedRequest
	SessionID string `json:"session_id" validate:"omitempty,uuid"`
}
