package repositories

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"spacecrew/internal/domain"
	"spacecrew/internal/domain/models"
)

// MemoryCrewMemberStore keeps crew members in process memory. It backs the
// "memory" store driver and the service/handler tests.
type MemoryCrewMemberStore struct {
	mu      sync.RWMutex
	members map[int64]models.CrewMember
	nextID  int64
}

func NewMemoryCrewMemberStore() *MemoryCrewMemberStore {
	return &MemoryCrewMemberStore{
		members: make(map[int64]models.CrewMember),
		nextID:  1,
	}
}

func (s *MemoryCrewMemberStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryCrewMemberStore) FindAll(ctx context.Context, sample models.CrewMemberSample, page domain.PageRequest) (domain.Page[models.CrewMember], error) {
	if err := ctx.Err(); err != nil {
		return domain.Page[models.CrewMember]{}, err
	}
	page = page.Normalized()

	s.mu.RLock()
	matched := make([]models.CrewMember, 0, len(s.members))
	for _, m := range s.members {
		if sample.Matches(m) {
			matched = append(matched, clone(m))
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(matched, crewMemberComparator(page.Sort))

	total := int64(len(matched))
	start := min(page.Offset(), len(matched))
	end := start + min(page.Size, len(matched)-start)
	return domain.NewPage(matched[start:end], page, total), nil
}

func (s *MemoryCrewMemberStore) FindByID(ctx context.Context, id int64) (models.CrewMember, error) {
	if err := ctx.Err(); err != nil {
		return models.CrewMember{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.members[id]
	if !ok {
		return models.CrewMember{}, notFound(id)
	}
	return clone(m), nil
}

func (s *MemoryCrewMemberStore) Create(ctx context.Context, m models.CrewMember) (models.CrewMember, error) {
	if err := ctx.Err(); err != nil {
		return models.CrewMember{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextID
	s.nextID++
	s.members[m.ID] = clone(m)
	return m, nil
}

func (s *MemoryCrewMemberStore) Update(ctx context.Context, m models.CrewMember) (models.CrewMember, error) {
	if err := ctx.Err(); err != nil {
		return models.CrewMember{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[m.ID]; !ok {
		return models.CrewMember{}, notFound(m.ID)
	}
	s.members[m.ID] = clone(m)
	return m, nil
}

func (s *MemoryCrewMemberStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.members[id]; !ok {
		return notFound(id)
	}
	delete(s.members, id)
	return nil
}

// clone detaches the optional pointer fields from the caller's copy.
func clone(m models.CrewMember) models.CrewMember {
	if m.SpaceShipID != nil {
		v := *m.SpaceShipID
		m.SpaceShipID = &v
	}
	if m.Status != nil {
		v := *m.Status
		m.Status = &v
	}
	return m
}

func crewMemberComparator(sorts []domain.Sort) func(a, b models.CrewMember) int {
	return func(a, b models.CrewMember) int {
		for _, s := range sorts {
			c := compareField(s.Field, a, b)
			if s.Direction == domain.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return cmp.Compare(a.ID, b.ID)
	}
}

// compareField orders absent optional values first, like MySQL does for NULL
// in ascending order.
func compareField(field string, a, b models.CrewMember) int {
	switch field {
	case "id":
		return cmp.Compare(a.ID, b.ID)
	case "name":
		return cmp.Compare(a.Name, b.Name)
	case "spaceShipId":
		return compareOptional(a.SpaceShipID, b.SpaceShipID)
	case "status":
		return compareOptional(a.Status, b.Status)
	case "role":
		return cmp.Compare(a.Role, b.Role)
	case "salary":
		return a.Salary.Cmp(b.Salary)
	default:
		return 0
	}
}

func compareOptional[T cmp.Ordered](a, b *T) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return cmp.Compare(*a, *b)
	}
}
