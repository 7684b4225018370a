package repositories

import (
	"context"
	"math"
	"testing"

	"spacecrew/internal/domain"
	"spacecrew/internal/domain/models"

	"github.com/shopspring/decimal"
)

func TestMemoryCrewMemberStore_FindAllPastTheEnd(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryCrewMemberStore()
	for _, name := range []string{"Alex", "Mira", "Zed"} {
		if _, err := store.Create(ctx, models.CrewMember{Name: name, Role: models.RolePilot, Salary: decimal.NewFromInt(1)}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	for _, req := range []domain.PageRequest{
		{Page: 1, Size: 2},
		{Page: 7, Size: 2},
		{Page: math.MaxInt / 10, Size: 20},
		{Page: math.MaxInt, Size: 100},
	} {
		page, err := store.FindAll(ctx, models.CrewMemberSample{}, req)
		if err != nil {
			t.Fatalf("FindAll(%+v) returned error: %v", req, err)
		}
		if page.TotalElements != 3 {
			t.Fatalf("FindAll(%+v) total = %d", req, page.TotalElements)
		}
		want := 0
		if req.Page == 1 {
			want = 1
		}
		if len(page.Content) != want {
			t.Fatalf("FindAll(%+v) returned %d members, want %d", req, len(page.Content), want)
		}
	}
}
