package services

import (
	"context"
	"testing"

	"spacecrew/internal/domain"
	"spacecrew/internal/domain/models"
	"spacecrew/internal/patch"
	"spacecrew/internal/repositories"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCrewService() *CrewMemberService {
	return NewCrewMemberService(repositories.NewMemoryCrewMemberStore())
}

func ptr[T any](v T) *T { return &v }

func alex() models.CrewMember {
	return models.CrewMember{
		Name:        "Alex",
		SpaceShipID: ptr(int64(7)),
		Role:        models.RoleEngineer,
		Salary:      decimal.NewFromInt(50000),
	}
}

func mustDecode(t *testing.T, raw string) patch.Document {
	t.Helper()
	doc, err := patch.Decode([]byte(raw))
	require.NoError(t, err)
	return doc
}

func TestCrewMemberService_CreateThenFind(t *testing.T) {
	ctx := context.Background()
	svc := newTestCrewService()

	in := alex()
	in.ID = 999
	created, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)

	got, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alex", got.Name)
	assert.Equal(t, models.RoleEngineer, got.Role)
	require.NotNil(t, got.SpaceShipID)
	assert.Equal(t, int64(7), *got.SpaceShipID)
	assert.Nil(t, got.Status)
	assert.True(t, got.Salary.Equal(decimal.NewFromInt(50000)))
}

func TestCrewMemberService_CreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	svc := newTestCrewService()

	cases := map[string]func(m *models.CrewMember){
		"missing name":    func(m *models.CrewMember) { m.Name = "" },
		"missing role":    func(m *models.CrewMember) { m.Role = "" },
		"blank name":      func(m *models.CrewMember) { m.Name = " \t " },
		"negative salary": func(m *models.CrewMember) { m.Salary = decimal.NewFromInt(-1) },
		"salary scale":    func(m *models.CrewMember) { m.Salary = decimal.RequireFromString("0.005") },
		"salary digits":   func(m *models.CrewMember) { m.Salary = decimal.New(1, 17) },
		"zero ship":       func(m *models.CrewMember) { m.SpaceShipID = ptr(int64(0)) },
		"unknown status":  func(m *models.CrewMember) { m.Status = ptr(models.CrewMemberStatus("LOST")) },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			m := alex()
			mutate(&m)
			_, err := svc.Create(ctx, m)
			require.Error(t, err)
			assert.True(t, domain.IsValidation(err), "got %v", err)
		})
	}

	page, err := svc.List(ctx, models.CrewMemberSample{}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, page.TotalElements)
}

func TestCrewMemberService_AcceptsLargestSalary(t *testing.T) {
	m := alex()
	m.Salary = decimal.RequireFromString("99999999999999999.99")
	created, err := newTestCrewService().Create(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "99999999999999999.99", created.Salary.String())
}

func TestCrewMemberService_TrimsNames(t *testing.T) {
	ctx := context.Background()
	svc := newTestCrewService()

	m := alex()
	m.Name = "  Alex\t"
	created, err := svc.Create(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, "Alex", created.Name)

	name := "Alex"
	page, err := svc.List(ctx, models.CrewMemberSample{Name: &name}, domain.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.TotalElements)

	patched, err := svc.Patch(ctx, created.ID, mustDecode(t, `[{"op":"replace","path":"/name","value":" Alexandra "}]`))
	require.NoError(t, err)
	assert.Equal(t, "Alexandra", patched.Name)
}

func TestCrewMemberService_MissingIDs(t *testing.T) {
	ctx := context.Background()
	svc := newTestCrewService()

	_, err := svc.FindByID(ctx, 42)
	assert.True(t, domain.IsNotFound(err), "find: %v", err)

	m := alex()
	m.ID = 42
	_, err = svc.Update(ctx, m)
	assert.True(t, domain.IsNotFound(err), "update: %v", err)

	_, err = svc.Patch(ctx, 42, mustDecode(t, `[{"op":"replace","path":"/name","value":"B"}]`))
	assert.True(t, domain.IsNotFound(err), "patch: %v", err)

	err = svc.Delete(ctx, 42)
	assert.True(t, domain.IsNotFound(err), "delete: %v", err)
}

func TestCrewMemberService_NonPositiveID(t *testing.T) {
	svc := newTestCrewService()
	_, err := svc.FindByID(context.Background(), 0)
	assert.True(t, domain.IsValidation(err))
	assert.True(t, domain.IsValidation(svc.Delete(context.Background(), -3)))
}

func TestCrewMemberService_UpdateReplacesEveryField(t *testing.T) {
	ctx := context.Background()
	svc := newTestCrewService()
	created, err := svc.Create(ctx, alex())
	require.NoError(t, err)

	replacement := models.CrewMember{
		ID:     created.ID,
		Name:   "Alexandra",
		Role:   models.RoleCaptain,
		Salary: decimal.RequireFromString("72000.50"),
	}
	updated, err := svc.Update(ctx, replacement)
	require.NoError(t, err)
	assert.Equal(t, "Alexandra", updated.Name)
	assert.Nil(t, updated.SpaceShipID)

	got, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCaptain, got.Role)
	assert.Nil(t, got.SpaceShipID)
	assert.Equal(t, "72000.5", got.Salary.String())
}

func TestCrewMemberService_PatchMergesAndKeepsID(t *testing.T) {
	ctx := context.Background()
	svc := newTestCrewService()
	created, err := svc.Create(ctx, alex())
	require.NoError(t, err)

	doc := mustDecode(t, `[
		{"op":"replace","path":"/status","value":"ON_LEAVE"},
		{"op":"replace","path":"/id","value":500},
		{"op":"replace","path":"/salary","value":51000}
	]`)
	patched, err := svc.Patch(ctx, created.ID, doc)
	require.NoError(t, err)
	assert.Equal(t, created.ID, patched.ID)
	require.NotNil(t, patched.Status)
	assert.Equal(t, models.StatusOnLeave, *patched.Status)
	assert.Equal(t, "Alex", patched.Name)

	got, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Salary.Equal(decimal.NewFromInt(51000)))

	_, err = svc.FindByID(ctx, 500)
	assert.True(t, domain.IsNotFound(err))
}

func TestCrewMemberService_PatchFailuresLeaveRecordUntouched(t *testing.T) {
	ctx := context.Background()
	svc := newTestCrewService()
	created, err := svc.Create(ctx, alex())
	require.NoError(t, err)

	_, err = svc.Patch(ctx, created.ID, mustDecode(t, `[{"op":"replace","path":"/nickname","value":"Al"}]`))
	assert.True(t, domain.IsPatchFailure(err), "unknown path: %v", err)

	_, err = svc.Patch(ctx, created.ID, mustDecode(t, `[{"op":"replace","path":"/salary","value":-5}]`))
	assert.True(t, domain.IsValidation(err), "negative salary: %v", err)

	_, err = svc.Patch(ctx, created.ID, mustDecode(t, `[{"op":"remove","path":"/salary"}]`))
	assert.True(t, domain.IsValidation(err), "removed salary: %v", err)

	_, err = svc.Patch(ctx, created.ID, mustDecode(t, `[{"op":"replace","path":"/salary","value":0.001}]`))
	assert.True(t, domain.IsValidation(err), "salary scale: %v", err)

	_, err = svc.Patch(ctx, created.ID, mustDecode(t, `[
		{"op":"replace","path":"/name","value":"Changed"},
		{"op":"test","path":"/role","value":"PILOT"}
	]`))
	assert.True(t, domain.IsPatchFailure(err), "failed test: %v", err)

	got, err := svc.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alex", got.Name)
	assert.True(t, got.Salary.Equal(decimal.NewFromInt(50000)))
}

func TestCrewMemberService_DeleteThenFind(t *testing.T) {
	ctx := context.Background()
	svc := newTestCrewService()
	created, err := svc.Create(ctx, alex())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.FindByID(ctx, created.ID)
	assert.True(t, domain.IsNotFound(err))
}

func TestCrewMemberService_ListFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	svc := newTestCrewService()

	for i, role := range []models.CrewMemberRole{
		models.RolePilot, models.RoleEngineer, models.RolePilot,
		models.RoleMedic, models.RolePilot,
	} {
		m := alex()
		m.Name = string(rune('A' + i))
		m.Role = role
		_, err := svc.Create(ctx, m)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, models.CrewMemberSample{}, domain.PageRequest{Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), all.TotalElements)
	assert.Equal(t, 3, all.TotalPages())
	assert.Len(t, all.Content, 2)

	pilots, err := svc.List(ctx, models.CrewMemberSample{Role: ptr(models.RolePilot)}, domain.PageRequest{
		Sort: []domain.Sort{{Field: "name", Direction: domain.Desc}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), pilots.TotalElements)
	require.Len(t, pilots.Content, 3)
	assert.Equal(t, "E", pilots.Content[0].Name)
	assert.Equal(t, "A", pilots.Content[2].Name)
	for _, m := range pilots.Content {
		assert.Equal(t, models.RolePilot, m.Role)
	}

	beyond, err := svc.List(ctx, models.CrewMemberSample{}, domain.PageRequest{Page: 9, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, beyond.Content)
	assert.Equal(t, int64(5), beyond.TotalElements)
}

func TestCrewMemberService_ListClampsPageSize(t *testing.T) {
	svc := newTestCrewService()
	page, err := svc.List(context.Background(), models.CrewMemberSample{}, domain.PageRequest{Page: -1, Size: 1000})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Number)
	assert.Equal(t, domain.MaxPageSize, page.Size)
}

func TestCrewMemberService_PagesSumToTotal(t *testing.T) {
	ctx := context.Background()
	svc := newTestCrewService()
	for i := 0; i < 23; i++ {
		_, err := svc.Create(ctx, alex())
		require.NoError(t, err)
	}

	seen := map[int64]bool{}
	req := domain.PageRequest{Size: 5}
	for {
		page, err := svc.List(ctx, models.CrewMemberSample{}, req)
		require.NoError(t, err)
		assert.Equal(t, int64(23), page.TotalElements)
		for _, m := range page.Content {
			assert.False(t, seen[m.ID], "id %d returned twice", m.ID)
			seen[m.ID] = true
		}
		if !page.HasNext() {
			break
		}
		req.Page++
	}
	assert.Len(t, seen, 23)
}
