package pagination

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromQuery(t *testing.T) {
	tests := []struct {
		page, perPage, limit string
		wantPage, wantPer    int
	}{
		{"", "", "", 1, defaultPerPage},
		{"3", "20", "", 3, 20},
		{"2", "", "50", 2, 50},
		{"0", "500", "", 1, maxPerPage},
		{"x", "y", "-4", 1, defaultPerPage},
	}
	for _, tt := range tests {
		p := FromQuery(tt.page, tt.perPage, tt.limit)
		assert.Equal(t, tt.wantPage, p.Page)
		assert.Equal(t, tt.wantPer, p.PerPage)
	}
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)
	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	empty := NewPagination(1, 10, 0)
	assert.Zero(t, empty.TotalPages)
	assert.False(t, empty.HasNext)
}

func TestMap(t *testing.T) {
	in := NewPaginatedResult([]int{1, 2}, NewPagination(1, 10, 2))
	out := Map(in, strconv.Itoa)
	assert.Equal(t, []string{"1", "2"}, out.Items)
	assert.Same(t, in.Pagination, out.Pagination)

	assert.NotNil(t, NewPaginatedResult[int](nil, nil).Items)
}
