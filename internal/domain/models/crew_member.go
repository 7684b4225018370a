package models

import (
	"encoding/json"
	"slices"
	"strings"

	"spacecrew/internal/domain"

	"github.com/shopspring/decimal"
)

func init() {
	// salary goes over the wire as a JSON number, not a quoted string
	decimal.MarshalJSONWithoutQuotes = true
}

type CrewMemberStatus string

const (
	StatusActive   CrewMemberStatus = "ACTIVE"
	StatusInactive CrewMemberStatus = "INACTIVE"
	StatusOnLeave  CrewMemberStatus = "ON_LEAVE"
	StatusRetired  CrewMemberStatus = "RETIRED"
)

var crewMemberStatuses = []CrewMemberStatus{StatusActive, StatusInactive, StatusOnLeave, StatusRetired}

type CrewMemberRole string

const (
	RoleCaptain   CrewMemberRole = "CAPTAIN"
	RolePilot     CrewMemberRole = "PILOT"
	RoleEngineer  CrewMemberRole = "ENGINEER"
	RoleScientist CrewMemberRole = "SCIENTIST"
	RoleMedic     CrewMemberRole = "MEDIC"
	RoleNavigator CrewMemberRole = "NAVIGATOR"
)

var crewMemberRoles = []CrewMemberRole{RoleCaptain, RolePilot, RoleEngineer, RoleScientist, RoleMedic, RoleNavigator}

// CrewMember is a person assigned (or not) to a space ship.
type CrewMember struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name" validate:"required,notblank,max=255"`
	SpaceShipID *int64            `json:"spaceShipId" validate:"omitempty,gt=0"`
	Status      *CrewMemberStatus `json:"status" validate:"omitempty,crewstatus"`
	Role        CrewMemberRole    `json:"role" validate:"required,crewrole"`
	Salary      decimal.Decimal   `json:"salary" validate:"gte=0"`
}

// CrewMemberRequiredFields are the JSON keys a stored member always carries.
var CrewMemberRequiredFields = []string{"name", "role", "salary"}

// CrewMemberSample is a query-by-example filter: every non-nil field must
// match exactly, nil fields match anything.
type CrewMemberSample struct {
	Name        *string
	Status      *CrewMemberStatus
	Role        *CrewMemberRole
	SpaceShipID *int64
}

func (s CrewMemberSample) Matches(m CrewMember) bool {
	if s.Name != nil && m.Name != *s.Name {
		return false
	}
	if s.Status != nil && (m.Status == nil || *m.Status != *s.Status) {
		return false
	}
	if s.Role != nil && m.Role != *s.Role {
		return false
	}
	if s.SpaceShipID != nil && (m.SpaceShipID == nil || *m.SpaceShipID != *s.SpaceShipID) {
		return false
	}
	return true
}

// ParseStatus matches text case-insensitively against the known statuses.
func ParseStatus(text string) (CrewMemberStatus, error) {
	want := strings.ToUpper(strings.TrimSpace(text))
	for _, s := range crewMemberStatuses {
		if string(s) == want {
			return s, nil
		}
	}
	return "", domain.UnrecognizedEnumError{Field: "status", Value: text, Allowed: StatusNames()}
}

// ParseOptionalStatus treats blank text as "no value".
func ParseOptionalStatus(text string) (*CrewMemberStatus, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	s, err := ParseStatus(text)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func StatusNames() []string {
	out := make([]string, 0, len(crewMemberStatuses))
	for _, s := range crewMemberStatuses {
		out = append(out, string(s))
	}
	return out
}

func (s CrewMemberStatus) Valid() bool {
	return slices.Contains(crewMemberStatuses, s)
}

func (s *CrewMemberStatus) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	v, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseRole matches text case-insensitively against the known roles.
func ParseRole(text string) (CrewMemberRole, error) {
	want := strings.ToUpper(strings.TrimSpace(text))
	for _, r := range crewMemberRoles {
		if string(r) == want {
			return r, nil
		}
	}
	return "", domain.UnrecognizedEnumError{Field: "role", Value: text, Allowed: RoleNames()}
}

func ParseOptionalRole(text string) (*CrewMemberRole, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	r, err := ParseRole(text)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func RoleNames() []string {
	out := make([]string, 0, len(crewMemberRoles))
	for _, r := range crewMemberRoles {
		out = append(out, string(r))
	}
	return out
}

func (r CrewMemberRole) Valid() bool {
	return slices.Contains(crewMemberRoles, r)
}

func (r *CrewMemberRole) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw == "" {
		*r = ""
		return nil
	}
	v, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = v
	return nil
}
