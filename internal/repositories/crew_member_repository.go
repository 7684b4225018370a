package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	intconfig "spacecrew/internal/config"
	schema "spacecrew/internal/db"
	"spacecrew/internal/domain"
	"spacecrew/internal/domain/models"
	"spacecrew/internal/utils"

	"github.com/go-sql-driver/mysql"
)

const crewMemberTable = "space_crew_members"

const crewMemberSchema = `
CREATE TABLE IF NOT EXISTS space_crew_members (
	id            BIGINT        NOT NULL AUTO_INCREMENT,
	name          VARCHAR(255)  NOT NULL,
	space_ship_id BIGINT        NULL,
	status        VARCHAR(32)   NULL,
	role          VARCHAR(32)   NOT NULL,
	salary        DECIMAL(19,2) NOT NULL DEFAULT 0,
	created_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at    DATETIME      NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
	PRIMARY KEY (id),
	KEY idx_space_crew_members_ship (space_ship_id),
	KEY idx_space_crew_members_role_status (role, status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

var crewMemberColumnNames = []string{"id", "name", "space_ship_id", "status", "role", "salary"}

const crewMemberSelect = `SELECT id, name, space_ship_id, status, role, salary FROM ` + crewMemberTable

const mysqlDuplicateEntry = 1062

// CrewMemberRepository stores crew members in MySQL.
type CrewMemberRepository struct {
	DB *sql.DB
}

func (r CrewMemberRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// EnsureSchema creates the space_crew_members table when it is missing and
// checks that an existing table carries every column the repository reads.
func (r CrewMemberRepository) EnsureSchema(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	exists, err := schema.HasTable(ctx, db, crewMemberTable)
	if err != nil {
		return err
	}
	if !exists {
		if _, err := db.ExecContext(ctx, crewMemberSchema); err != nil {
			return fmt.Errorf("create %s: %w", crewMemberTable, err)
		}
		utils.LogEvent("", "repositories", "ensure_schema", "table created", "table", crewMemberTable)
		return nil
	}
	missing, err := schema.MissingColumns(ctx, db, crewMemberTable, crewMemberColumnNames...)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return domain.InternalError{Msg: fmt.Sprintf("table %s is missing columns: %s", crewMemberTable, strings.Join(missing, ", "))}
	}
	return nil
}

func (r CrewMemberRepository) Ping(ctx context.Context) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	return db.PingContext(ctx)
}

func (r CrewMemberRepository) FindAll(ctx context.Context, sample models.CrewMemberSample, page domain.PageRequest) (domain.Page[models.CrewMember], error) {
	page = page.Normalized()
	db := r.db()
	if db == nil {
		return domain.Page[models.CrewMember]{}, domain.InternalError{Msg: "database not connected"}
	}

	where, args := crewMemberWhere(sample)

	var total int64
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+crewMemberTable+` WHERE `+where, args...).Scan(&total); err != nil {
		return domain.Page[models.CrewMember]{}, fmt.Errorf("count %s: %w", crewMemberTable, err)
	}
	if total == 0 {
		return domain.NewPage[models.CrewMember](nil, page, 0), nil
	}

	query := crewMemberSelect + ` WHERE ` + where + ` ORDER BY ` + crewMemberOrderBy(page.Sort) + ` LIMIT ? OFFSET ?`
	pageArgs := append(append([]any{}, args...), page.Size, page.Offset())
	rows, err := db.QueryContext(ctx, query, pageArgs...)
	if err != nil {
		return domain.Page[models.CrewMember]{}, fmt.Errorf("list %s: %w", crewMemberTable, err)
	}
	defer rows.Close()

	out := []models.CrewMember{}
	for rows.Next() {
		m, err := scanCrewMember(rows)
		if err != nil {
			return domain.Page[models.CrewMember]{}, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[models.CrewMember]{}, fmt.Errorf("iterate %s: %w", crewMemberTable, err)
	}
	return domain.NewPage(out, page, total), nil
}

func (r CrewMemberRepository) FindByID(ctx context.Context, id int64) (models.CrewMember, error) {
	db := r.db()
	if db == nil {
		return models.CrewMember{}, domain.InternalError{Msg: "database not connected"}
	}
	m, err := scanCrewMember(db.QueryRowContext(ctx, crewMemberSelect+` WHERE id = ? LIMIT 1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.CrewMember{}, domain.NotFoundError{Resource: crewMemberResource, ID: id, Err: err}
	}
	return m, err
}

func (r CrewMemberRepository) Create(ctx context.Context, m models.CrewMember) (models.CrewMember, error) {
	db := r.db()
	if db == nil {
		return models.CrewMember{}, domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO `+crewMemberTable+` (name, space_ship_id, status, role, salary)
		VALUES (?, ?, ?, ?, ?)
	`, m.Name, nullableInt64(m.SpaceShipID), nullableStatus(m.Status), string(m.Role), m.Salary)
	if err != nil {
		return models.CrewMember{}, translateWriteError(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.CrewMember{}, fmt.Errorf("read generated id: %w", err)
	}
	m.ID = id
	return m, nil
}

// Update relies on the connection reporting matched rather than changed rows
// (clientFoundRows) so that an unchanged record is not taken for a missing one.
func (r CrewMemberRepository) Update(ctx context.Context, m models.CrewMember) (models.CrewMember, error) {
	db := r.db()
	if db == nil {
		return models.CrewMember{}, domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `
		UPDATE `+crewMemberTable+`
		SET name = ?, space_ship_id = ?, status = ?, role = ?, salary = ?
		WHERE id = ?
	`, m.Name, nullableInt64(m.SpaceShipID), nullableStatus(m.Status), string(m.Role), m.Salary, m.ID)
	if err != nil {
		return models.CrewMember{}, translateWriteError(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.CrewMember{}, fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return models.CrewMember{}, notFound(m.ID)
	}
	return m, nil
}

func (r CrewMemberRepository) Delete(ctx context.Context, id int64) error {
	db := r.db()
	if db == nil {
		return domain.InternalError{Msg: "database not connected"}
	}
	res, err := db.ExecContext(ctx, `DELETE FROM `+crewMemberTable+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", crewMemberTable, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return notFound(id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCrewMember(row rowScanner) (models.CrewMember, error) {
	var (
		m      models.CrewMember
		ship   sql.NullInt64
		status sql.NullString
		role   string
	)
	if err := row.Scan(&m.ID, &m.Name, &ship, &status, &role, &m.Salary); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CrewMember{}, err
		}
		return models.CrewMember{}, fmt.Errorf("scan %s: %w", crewMemberTable, err)
	}
	if ship.Valid {
		v := ship.Int64
		m.SpaceShipID = &v
	}
	if status.Valid && status.String != "" {
		s, err := models.ParseStatus(status.String)
		if err != nil {
			return models.CrewMember{}, domain.InternalError{Msg: fmt.Sprintf("stored status of member %d is invalid", m.ID), Err: err}
		}
		m.Status = &s
	}
	r, err := models.ParseRole(role)
	if err != nil {
		return models.CrewMember{}, domain.InternalError{Msg: fmt.Sprintf("stored role of member %d is invalid", m.ID), Err: err}
	}
	m.Role = r
	return m, nil
}

// crewMemberWhere turns a sample into equality predicates; "1=1" keeps the
// clause valid when the sample is empty.
func crewMemberWhere(s models.CrewMemberSample) (string, []any) {
	where := []string{"1=1"}
	args := []any{}
	if s.Name != nil {
		where = append(where, "name = ?")
		args = append(args, *s.Name)
	}
	if s.Status != nil {
		where = append(where, "status = ?")
		args = append(args, string(*s.Status))
	}
	if s.Role != nil {
		where = append(where, "role = ?")
		args = append(args, string(*s.Role))
	}
	if s.SpaceShipID != nil {
		where = append(where, "space_ship_id = ?")
		args = append(args, *s.SpaceShipID)
	}
	return strings.Join(where, " AND "), args
}

// crewMemberOrderBy always ends on id so that paging is stable.
func crewMemberOrderBy(sorts []domain.Sort) string {
	parts := []string{}
	hasID := false
	for _, s := range sorts {
		col, ok := crewMemberSortColumns[s.Field]
		if !ok {
			continue
		}
		dir := "ASC"
		if s.Direction == domain.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
		if col == "id" {
			hasID = true
		}
	}
	if !hasID {
		parts = append(parts, "id ASC")
	}
	return strings.Join(parts, ", ")
}

func translateWriteError(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return domain.ConflictError{Resource: crewMemberResource, Msg: "duplicate entry", Err: err}
	}
	return fmt.Errorf("write %s: %w", crewMemberTable, err)
}

func nullableInt64(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableStatus(s *models.CrewMemberStatus) any {
	if s == nil {
		return nil
	}
	return string(*s)
}
