package repository

const (
	defaultPageSize int64 = 20
	maxPageSize     int64 = 100
)

// clampPage normalizes page/limit to the platform defaults.
func clampPage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}
