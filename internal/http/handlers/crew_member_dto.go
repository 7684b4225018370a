package handlers

import (
	"strings"

	"spacecrew/internal/domain/models"

	"github.com/shopspring/decimal"
)

// crewMemberRequest is the create/replace body. An id in the body is ignored.
type crewMemberRequest struct {
	Name        string                   `json:"name" binding:"required,notblank,max=255"`
	SpaceShipID *int64                   `json:"spaceShipId" binding:"omitempty,gt=0"`
	Status      *models.CrewMemberStatus `json:"status" binding:"omitempty,crewstatus"`
	Role        models.CrewMemberRole    `json:"role" binding:"required,crewrole"`
	Salary      *decimal.Decimal         `json:"salary" binding:"required,gte=0"`
}

func (r crewMemberRequest) toModel(id int64) models.CrewMember {
	m := models.CrewMember{
		ID:          id,
		Name:        strings.TrimSpace(r.Name),
		SpaceShipID: r.SpaceShipID,
		Status:      r.Status,
		Role:        r.Role,
	}
	if r.Salary != nil {
		m.Salary = *r.Salary
	}
	return m
}

type crewMemberResponse struct {
	ID          int64                    `json:"id"`
	Name        string                   `json:"name"`
	SpaceShipID *int64                   `json:"spaceShipId"`
	Status      *models.CrewMemberStatus `json:"status"`
	Role        models.CrewMemberRole    `json:"role"`
	Salary      decimal.Decimal          `json:"salary"`
}

func toCrewMemberResponse(m models.CrewMember) crewMemberResponse {
	return crewMemberResponse{
		ID:          m.ID,
		Name:        m.Name,
		SpaceShipID: m.SpaceShipID,
		Status:      m.Status,
		Role:        m.Role,
		Salary:      m.Salary,
	}
}
