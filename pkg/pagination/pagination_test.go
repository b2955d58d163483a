// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pagination_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/dishdiary/pkg/pagination"
)

/*
TestFromRequest clamps out-of-range values.
*/
func TestFromRequest(t *testing.T) {
	tests := []struct {
		query string
		want  pagination.Params
	}{
		{"", pagination.Params{Page: 1, Limit: 20}},
		{"?page=3&limit=10", pagination.Params{Page: 3, Limit: 10}},
		{"?page=-2&limit=0", pagination.Params{Page: 1, Limit: 20}},
		{"?page=abc&limit=500", pagination.Params{Page: 1, Limit: 100}},
	}

	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/recipes"+tt.query, nil)
		assert.Equal(t, tt.want, pagination.FromRequest(req), tt.query)
	}
}

/*
TestMeta computes offsets and page counts.
*/
func TestMeta(t *testing.T) {
	p := pagination.Params{Page: 3, Limit: 10}
	assert.Equal(t, 20, p.Offset())

	meta := pagination.NewMeta(p, 21)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 21, meta.Total)

	assert.Equal(t, 0, pagination.NewMeta(p, 0).TotalPages)
}
