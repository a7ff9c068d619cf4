package services

import (
	"testing"

	"github.com/chaimkastel/happy-hour-app-sub002/internal/app/models"
	"github.com/stretchr/testify/assert"
)

func TestPaginateDealsTotalsMatchItems(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		totalItems int
		pageLen    int
		totalPages int
		hasNext    bool
		hasPrev    bool
	}{
		{"filtered set smaller than a page", 1, 10, 3, 3, 1, false, false},
		{"empty filtered set", 1, 10, 0, 0, 0, false, false},
		{"middle page", 2, 10, 25, 10, 3, true, true},
		{"last partial page", 3, 10, 25, 5, 3, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := make([]models.Deal, tt.pageLen)
			p := paginateDeals(&models.PaginationRequest{Page: tt.page, Limit: tt.limit}, tt.totalItems, items)

			assert.Equal(t, tt.totalItems, p.TotalItems)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasNext, p.HasNext)
			assert.Equal(t, tt.hasPrev, p.HasPrev)
			assert.Len(t, p.Items, tt.pageLen)
		})
	}
}
