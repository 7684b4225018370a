package domain

import (
	"math"
	"testing"
)

func TestPageRequestOffset(t *testing.T) {
	cases := []struct {
		req  PageRequest
		want int
	}{
		{PageRequest{Page: 0, Size: 20}, 0},
		{PageRequest{Page: 3, Size: 20}, 60},
		{PageRequest{Page: -2, Size: 20}, 0},
		{PageRequest{Page: 5, Size: 0}, 0},
		{PageRequest{Page: math.MaxInt / 10, Size: 10}, math.MaxInt / 10 * 10},
		{PageRequest{Page: math.MaxInt/10 + 1, Size: 10}, math.MaxInt},
		{PageRequest{Page: math.MaxInt, Size: MaxPageSize}, math.MaxInt},
	}
	for _, tc := range cases {
		if got := tc.req.Offset(); got != tc.want {
			t.Fatalf("%+v.Offset() = %d, want %d", tc.req, got, tc.want)
		}
	}
}

func TestPageRequestNormalized(t *testing.T) {
	got := PageRequest{Page: -1, Size: 0}.Normalized()
	if got.Page != 0 || got.Size != DefaultPageSize {
		t.Fatalf("unexpected normalization: %+v", got)
	}
	if got := (PageRequest{Size: 1000}).Normalized(); got.Size != MaxPageSize {
		t.Fatalf("size = %d, want %d", got.Size, MaxPageSize)
	}
}
