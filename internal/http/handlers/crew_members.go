package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"spacecrew/internal/domain"
	"spacecrew/internal/domain/models"
	"spacecrew/internal/http/middleware"
	"spacecrew/internal/patch"
	"spacecrew/internal/repositories"
	"spacecrew/internal/services"
	"spacecrew/internal/utils"

	"github.com/gin-gonic/gin"
)

// CrewMembersPath is the collection path the handlers are mounted on.
const CrewMembersPath = "/api/space-crew-members"

const crewModule = "crew_members"

// CrewMemberHandler serves the space crew member resource.
type CrewMemberHandler struct {
	Service       *services.CrewMemberService
	RosterService services.RosterService
	PublicBaseURL string
}

func NewCrewMemberHandler(svc *services.CrewMemberService, publicBaseURL string) *CrewMemberHandler {
	return &CrewMemberHandler{
		Service:       svc,
		RosterService: services.RosterService{Members: svc},
		PublicBaseURL: publicBaseURL,
	}
}

// GET /api/space-crew-members
func (h *CrewMemberHandler) List(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	q := c.Request.URL.Query()
	utils.DebugEvent(reqID, crewModule, "list", "request received", "query", c.Request.URL.RawQuery)

	sample, err := parseCrewMemberSample(q)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	pageReq, err := parsePageRequest(q, repositories.SortableFields())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	page, err := h.Service.List(c.Request.Context(), sample, pageReq)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(reqID, crewModule, "list", "listed crew members", "count", len(page.Content), "total", page.TotalElements)
	c.JSON(http.StatusOK, newPageResponse(c.Request, h.PublicBaseURL, domain.MapPage(page, toCrewMemberResponse)))
}

// GET /api/space-crew-members/:id
func (h *CrewMemberHandler) Get(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	id, err := pathID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.DebugEvent(reqID, crewModule, "get", "request received", "id", id)

	m, err := h.Service.FindByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCrewMemberResponse(m))
}

// POST /api/space-crew-members
func (h *CrewMemberHandler) Create(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	utils.DebugEvent(reqID, crewModule, "create", "request received")

	var body crewMemberRequest
	if !BindJSONOrError(c, &body) {
		return
	}
	created, err := h.Service.Create(c.Request.Context(), body.toModel(0))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(reqID, crewModule, "create", "crew member created", "id", created.ID)
	c.Header("Location", utils.ResourceURI(c.Request, h.PublicBaseURL, CrewMembersPath, created.ID))
	c.Status(http.StatusCreated)
}

// PUT /api/space-crew-members/:id
func (h *CrewMemberHandler) Put(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	id, err := pathID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.DebugEvent(reqID, crewModule, "put", "request received", "id", id)

	var body crewMemberRequest
	if !BindJSONOrError(c, &body) {
		return
	}
	updated, err := h.Service.Update(c.Request.Context(), body.toModel(id))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(reqID, crewModule, "put", "crew member replaced", "id", id)
	c.JSON(http.StatusOK, toCrewMemberResponse(updated))
}

// PATCH /api/space-crew-members/:id with an RFC 6902 body.
func (h *CrewMemberHandler) Patch(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	id, err := pathID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		RespondDomainError(c, domain.PatchError{Malformed: true, Msg: "cannot read request body", Err: err})
		return
	}
	doc, err := patch.Decode(raw)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.DebugEvent(reqID, crewModule, "patch", "request received", "id", id, "operations", doc.Len())

	updated, err := h.Service.Patch(c.Request.Context(), id, doc)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(reqID, crewModule, "patch", "crew member patched", "id", id)
	c.JSON(http.StatusOK, toCrewMemberResponse(updated))
}

// DELETE /api/space-crew-members/:id
func (h *CrewMemberHandler) Delete(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	id, err := pathID(c)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.DebugEvent(reqID, crewModule, "delete", "request received", "id", id)

	if err := h.Service.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(reqID, crewModule, "delete", "crew member deleted", "id", id)
	c.Status(http.StatusNoContent)
}

// GET /api/space-crew-members/roster.pdf
func (h *CrewMemberHandler) Roster(c *gin.Context) {
	reqID := middleware.GetRequestID(c)
	sample, err := parseCrewMemberSample(c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	pdf, filename, err := h.RosterService.Generate(c.Request.Context(), sample)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(reqID, crewModule, "roster", "roster rendered", "bytes", len(pdf))
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// parseCrewMemberSample builds the equality filter from name, status, role
// and spaceShipId. Blank parameters are ignored.
func parseCrewMemberSample(q url.Values) (models.CrewMemberSample, error) {
	var s models.CrewMemberSample

	if name := strings.TrimSpace(q.Get("name")); name != "" {
		s.Name = &name
	}
	status, err := models.ParseOptionalStatus(q.Get("status"))
	if err != nil {
		return s, err
	}
	s.Status = status

	role, err := models.ParseOptionalRole(q.Get("role"))
	if err != nil {
		return s, err
	}
	s.Role = role

	if raw := strings.TrimSpace(q.Get("spaceShipId")); raw != "" {
		ship, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return s, domain.ValidationError{Field: "spaceShipId", Msg: "must be an integer", Err: err}
		}
		s.SpaceShipID = &ship
	}
	return s, nil
}
