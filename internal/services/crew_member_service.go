package services

import (
	"context"
	"strings"

	"spacecrew/internal/domain"
	"spacecrew/internal/domain/models"
	"spacecrew/internal/patch"
	"spacecrew/internal/repositories"
	"spacecrew/internal/validation"

	"github.com/go-playground/validator/v10"
)

// CrewMemberService owns lookups, writes and the patch merge for crew members.
// Read-modify-write in Patch is not serialized against concurrent writers of
// the same id; the last update wins.
type CrewMemberService struct {
	Store    repositories.CrewMemberStore
	Validate *validator.Validate
}

func NewCrewMemberService(store repositories.CrewMemberStore) *CrewMemberService {
	return &CrewMemberService{Store: store, Validate: validation.New()}
}

func (s *CrewMemberService) List(ctx context.Context, sample models.CrewMemberSample, page domain.PageRequest) (domain.Page[models.CrewMember], error) {
	return s.Store.FindAll(ctx, sample, page.Normalized())
}

func (s *CrewMemberService) FindByID(ctx context.Context, id int64) (models.CrewMember, error) {
	if err := checkID(id); err != nil {
		return models.CrewMember{}, err
	}
	return s.Store.FindByID(ctx, id)
}

// Create ignores any id on m; the store assigns one.
func (s *CrewMemberService) Create(ctx context.Context, m models.CrewMember) (models.CrewMember, error) {
	m.ID = 0
	if err := s.validate(&m); err != nil {
		return models.CrewMember{}, err
	}
	return s.Store.Create(ctx, m)
}

// Update fully replaces the member with m.ID. A missing id is not created.
func (s *CrewMemberService) Update(ctx context.Context, m models.CrewMember) (models.CrewMember, error) {
	if err := checkID(m.ID); err != nil {
		return models.CrewMember{}, err
	}
	if err := s.validate(&m); err != nil {
		return models.CrewMember{}, err
	}
	return s.Store.Update(ctx, m)
}

// Patch applies doc to the stored member and persists the merged record.
// The id cannot be changed by the patch.
func (s *CrewMemberService) Patch(ctx context.Context, id int64, doc patch.Document) (models.CrewMember, error) {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return models.CrewMember{}, err
	}
	merged, err := patch.ApplyTo(doc, current, models.CrewMemberRequiredFields...)
	if err != nil {
		return models.CrewMember{}, err
	}
	merged.ID = id
	return s.Update(ctx, merged)
}

func (s *CrewMemberService) Delete(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.Store.Delete(ctx, id)
}

func (s *CrewMemberService) Ping(ctx context.Context) error {
	return s.Store.Ping(ctx)
}

// Names are stored trimmed.
func (s *CrewMemberService) validate(m *models.CrewMember) error {
	m.Name = strings.TrimSpace(m.Name)
	v := s.Validate
	if v == nil {
		v = validation.New()
	}
	if err := v.Struct(*m); err != nil {
		return validation.ToDomain(err)
	}
	return nil
}

func checkID(id int64) error {
	if id <= 0 {
		return domain.ValidationError{Field: "id", Msg: "must be a positive integer"}
	}
	return nil
}
