package booking

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildQueryParams(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		wantSortBy  string
		wantSortDir string
	}{
		{
			name:        "no sort params defaults to newest first",
			target:      "/v1/bookings/all",
			wantSortBy:  "bookings.created_at",
			wantSortDir: "DESC",
		},
		{
			name:        "sort direction only keeps a valid sort column",
			target:      "/v1/bookings/all?sort_dir=DESC",
			wantSortBy:  "bookings.created_at",
			wantSortDir: "DESC",
		},
		{
			name:        "sort column gets qualified with the bookings table",
			target:      "/v1/bookings/all?sort_by=start_time&sort_dir=ASC",
			wantSortBy:  "bookings.start_time",
			wantSortDir: "ASC",
		},
		{
			name:        "already qualified sort column is left alone",
			target:      "/v1/bookings/all?sort_by=courts.name&sort_dir=ASC",
			wantSortBy:  "courts.name",
			wantSortDir: "ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)

			queryParams := buildQueryParams(r)

			assert.Equal(t, tt.wantSortBy, queryParams.SortBy)
			assert.Equal(t, tt.wantSortDir, queryParams.SortDir)
			assert.NotEmpty(t, queryParams.SortBy, "an empty sort column would drop or break the ORDER BY clause")
		})
	}
}
