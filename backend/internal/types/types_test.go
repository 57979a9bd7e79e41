package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationBounds(t *testing.T) {
	tests := []struct {
		name       string
		p          PaginationOptions
		n          int
		start, end int
	}{
		{"zero value is everything", PaginationOptions{}, 5, 0, 5},
		{"limit", PaginationOptions{Limit: 2}, 5, 0, 2},
		{"window", PaginationOptions{Limit: 2, Offset: 3}, 5, 3, 5},
		{"offset past end", PaginationOptions{Offset: 9}, 5, 5, 5},
		{"negative offset", PaginationOptions{Limit: 1, Offset: -2}, 5, 0, 1},
		{"empty list", PaginationOptions{Limit: 3}, 0, 0, 0},
		{"huge limit", PaginationOptions{Limit: math.MaxInt, Offset: 1}, 5, 1, 5},
		{"huge limit and offset", PaginationOptions{Limit: math.MaxInt, Offset: math.MaxInt}, 5, 5, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.p.Bounds(tt.n)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}
