package repositories

import (
	"context"

	"spacecrew/internal/domain"
	"spacecrew/internal/domain/models"
)

// CrewMemberStore is the persistence boundary for crew members.
// Missing ids are reported as domain.NotFoundError by every implementation.
type CrewMemberStore interface {
	// FindAll returns one page of members equal to every non-nil sample field.
	FindAll(ctx context.Context, sample models.CrewMemberSample, page domain.PageRequest) (domain.Page[models.CrewMember], error)
	FindByID(ctx context.Context, id int64) (models.CrewMember, error)
	// Create stores m and returns it with the generated id.
	Create(ctx context.Context, m models.CrewMember) (models.CrewMember, error)
	// Update replaces every field of the member with m.ID.
	Update(ctx context.Context, m models.CrewMember) (models.CrewMember, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}

const crewMemberResource = "space crew member"

// crewMemberSortColumns maps sortable wire field names to table columns.
var crewMemberSortColumns = map[string]string{
	"id":          "id",
	"name":        "name",
	"spaceShipId": "space_ship_id",
	"status":      "status",
	"role":        "role",
	"salary":      "salary",
}

// SortableFields lists the field names accepted in a sort clause.
func SortableFields() []string {
	return []string{"id", "name", "spaceShipId", "status", "role", "salary"}
}

func notFound(id int64) error {
	return domain.NotFoundError{Resource: crewMemberResource, ID: id}
}

var (
	_ CrewMemberStore = CrewMemberRepository{}
	_ CrewMemberStore = (*MemoryCrewMemberStore)(nil)
)
