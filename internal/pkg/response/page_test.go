package response

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageResponseTotalPages(t *testing.T) {
	tests := []struct {
		total, pageSize, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		p := NewPageResponse([]int{}, 1, tt.pageSize, tt.total)
		assert.Equal(t, tt.want, p.TotalPages, "total=%d size=%d", tt.total, tt.pageSize)
	}
}

func TestNewPageResponseNeverNull(t *testing.T) {
	body, err := json.Marshal(NewPageResponse[string](nil, 1, 20, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"page":1,"page_size":20,"total":0,"total_pages":0}`, string(body))
}

func TestMapPage(t *testing.T) {
	p := MapPage([]int{1, 2, 3}, strconv.Itoa, 2, 3, 6)
	assert.Equal(t, []string{"1", "2", "3"}, p.Items)
	assert.Equal(t, 2, p.TotalPages)
}
