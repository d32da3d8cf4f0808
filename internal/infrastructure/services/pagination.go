package services

import (
	"math"
	"strconv"
)

// PageParams holds the default and maximum page size for listings.
type PageParams struct {
	DefaultSize int
	MaxSize     int
}

// Page is one slice of a listing plus its pagination envelope.
type Page[T any] struct {
	Items       []T  `json:"items"`
	Page        int  `json:"page"`
	Size        int  `json:"size"`
	TotalItems  int  `json:"total_items"`
	TotalPages  int  `json:"total_pages"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Paginate slices items according to query parameters. Both page/size and
// offset/limit styles are accepted; offset/limit wins when present.
func Paginate[T any](items []T, params PageParams, queryParams map[string]string) Page[T] {
	totalItems := len(items)
	offset, limit := resolveSliceBounds(params, queryParams)

	// Clamp offset and end.
	offset = min(offset, totalItems)
	end := min(offset+limit, totalItems)

	totalPages := int(math.Ceil(float64(totalItems) / float64(limit)))
	if totalPages == 0 {
		totalPages = 1
	}

	sliced := items[offset:end]
	if sliced == nil {
		sliced = []T{}
	}

	return Page[T]{
		Items:       sliced,
		Page:        (offset / limit) + 1,
		Size:        limit,
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		HasNext:     end < totalItems,
		HasPrevious: offset > 0,
	}
}

// resolveSliceBounds extracts offset and limit from query parameters.
func resolveSliceBounds(params PageParams, qp map[string]string) (offset, limit int) {
	limit = params.DefaultSize

	_, hasOffset := qp["offset"]
	_, hasLimit := qp["limit"]

	if hasOffset || hasLimit {
		if n, err := strconv.Atoi(qp["offset"]); err == nil && n >= 0 {
			offset = n
		}
		if n, err := strconv.Atoi(qp["limit"]); err == nil && n > 0 {
			limit = n
		}
	} else {
		page := 1
		if n, err := strconv.Atoi(qp["page"]); err == nil && n >= 1 {
			page = n
		}
		if n, err := strconv.Atoi(qp["size"]); err == nil && n > 0 {
			limit = n
		}
		if limit <= 0 {
			limit = 10
		}
		offset = (page - 1) * limit
	}

	if params.MaxSize > 0 && limit > params.MaxSize {
		limit = params.MaxSize
	}
	if limit <= 0 {
		limit = 10
	}

	return offset, limit
}
