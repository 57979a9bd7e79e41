package types

// Shared types used across tableio, relindex, dashboard, etc.

type TableData struct {
	HasHeader bool       `json:"hasHeader"`
	Header    []string   `json:"header"`
	Rows      [][]string `json:"rows"`
}

type ResultSummary struct {
	Processed  int   `json:"processed"`
	Matched    int   `json:"matched"`
	Missing    int   `json:"missing"`
	DurationMS int64 `json:"durationMs"`
}

// PaginationOptions selects a window of a result list.
// Limit <= 0 means "everything after Offset".
type PaginationOptions struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Bounds clamps the window to a list of n items and returns [start, end).
func (p PaginationOptions) Bounds(n int) (int, int) {
	offset := p.Offset
	limit := p.Limit
	if limit <= 0 {
		limit = n
	}
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	if limit > n-offset {
		limit = n - offset
	}
	return offset, offset + limit
}
