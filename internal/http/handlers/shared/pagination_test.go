package shared

import "testing"

func TestNormalizePagination(t *testing.T) {
	cases := []struct {
		name     string
		page     int
		pageSize int
		wantPage int
		wantSize int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative page", -3, 10, 1, 10},
		{"cap page size", 2, 500, 2, 100},
		{"passthrough", 3, 50, 3, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, size := NormalizePagination(tc.page, tc.pageSize)
			if page != tc.wantPage || size != tc.wantSize {
				t.Fatalf("got (%d, %d), want (%d, %d)", page, size, tc.wantPage, tc.wantSize)
			}
		})
	}
}
