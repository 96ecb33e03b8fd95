package domain

// PageCount returns ceil(total/limit). Zero totals (and non-positive limits)
// yield zero pages, so an empty result set has no valid page to clamp to.
func PageCount(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ClampPage forces page into [1, totalPages] when totalPages > 0. When there
// are no pages yet the requested page collapses to 1.
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}
