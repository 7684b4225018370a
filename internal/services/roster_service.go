package services

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"time"

	"spacecrew/internal/domain"
	"spacecrew/internal/domain/models"
	"spacecrew/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// MaxRosterRows caps how many members a single roster document lists.
const MaxRosterRows = 1000

// RosterService renders the crew roster as a PDF table.
type RosterService struct {
	Members *CrewMemberService
	Now     func() time.Time
}

// Generate lists every member matching sample, ordered by name, and returns
// the PDF bytes with a suggested file name.
func (s RosterService) Generate(ctx context.Context, sample models.CrewMemberSample) ([]byte, string, error) {
	members, total, err := s.collect(ctx, sample)
	if err != nil {
		return nil, "", err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return buildRosterPDF(members, total, now())
}

func (s RosterService) collect(ctx context.Context, sample models.CrewMemberSample) ([]models.CrewMember, int64, error) {
	out := []models.CrewMember{}
	req := domain.PageRequest{
		Size: domain.MaxPageSize,
		Sort: []domain.Sort{{Field: "name", Direction: domain.Asc}},
	}
	for len(out) < MaxRosterRows {
		page, err := s.Members.List(ctx, sample, req)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, page.Content...)
		if !page.HasNext() {
			return out, page.TotalElements, nil
		}
		req.Page++
	}
	page, err := s.Members.List(ctx, sample, domain.PageRequest{Size: 1})
	if err != nil {
		return nil, 0, err
	}
	return out[:MaxRosterRows], page.TotalElements, nil
}

var rosterColumns = []struct {
	title string
	width float64
}{
	{"ID", 15},
	{"Name", 60},
	{"Ship", 20},
	{"Status", 25},
	{"Role", 30},
	{"Salary", 30},
}

func buildRosterPDF(members []models.CrewMember, total int64, generatedAt time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Space Crew Roster", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "SPACE CREW ROSTER")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, "Generated : "+utils.FormatDateTime(generatedAt))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Members   : %d of %d", len(members), total))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	for _, col := range rosterColumns {
		pdf.CellFormat(col.width, 7, col.title, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, m := range members {
		cells := []string{
			strconv.FormatInt(m.ID, 10),
			utils.OrDash(m.Name),
			"-",
			"-",
			string(m.Role),
			utils.FormatMoney(m.Salary),
		}
		if m.SpaceShipID != nil {
			cells[2] = strconv.FormatInt(*m.SpaceShipID, 10)
		}
		if m.Status != nil {
			cells[3] = string(*m.Status)
		}
		for i, col := range rosterColumns {
			align := "L"
			if i == 0 || i == len(rosterColumns)-1 {
				align = "R"
			}
			pdf.CellFormat(col.width, 6, cells[i], "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(members) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 8, "No crew members match the given filters.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	filename := "ROSTER_" + utils.FileStamp(generatedAt) + ".pdf"
	return buf.Bytes(), filename, nil
}
