package domain

// Default and maximum page sizes for the two paginated surfaces.
const (
	DefaultTripLimit   = 100
	MaxTripLimit       = 1000
	DefaultExportLimit = 10000
	MaxExportLimit     = 50000
)

// PaginationParams carries skip/limit values from the HTTP layer to the repo layer.
type PaginationParams struct {
	// Skip is the number of rows to skip, starting at 0.
	Skip int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// A nil or negative skip becomes 0. A nil or non-positive limit becomes
// defaultLimit, and any limit above maxLimit is capped to prevent runaway queries.
func NewPaginationParams(skip, limit *int, defaultLimit, maxLimit int) PaginationParams {
	p := PaginationParams{Skip: 0, Limit: defaultLimit}
	if skip != nil && *skip >= 0 {
		p.Skip = *skip
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > maxLimit {
			p.Limit = maxLimit
		}
	}
	return p
}

// Offset returns the zero-based row offset for a SQL OFFSET clause.
func (p PaginationParams) Offset() uint64 {
	return uint64(p.Skip)
}
