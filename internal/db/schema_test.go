package db

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestHasTable(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery(`FROM information_schema.tables`).
		WithArgs("space_crew_members").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("space_crew_members"))
	mock.ExpectQuery(`FROM information_schema.tables`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	ok, err := HasTable(context.Background(), conn, "space_crew_members")
	if err != nil || !ok {
		t.Fatalf("HasTable existing = %v, %v", ok, err)
	}
	ok, err = HasTable(context.Background(), conn, "ghost")
	if err != nil || ok {
		t.Fatalf("HasTable missing = %v, %v", ok, err)
	}
}

func TestMissingColumns(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer conn.Close()

	mock.ExpectQuery(`FROM information_schema.columns`).
		WithArgs("space_crew_members", "name").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("name"))
	mock.ExpectQuery(`FROM information_schema.columns`).
		WithArgs("space_crew_members", "salary").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}))

	missing, err := MissingColumns(context.Background(), conn, "space_crew_members", "name", "salary")
	if err != nil {
		t.Fatalf("MissingColumns returned error: %v", err)
	}
	if len(missing) != 1 || missing[0] != "salary" {
		t.Fatalf("missing = %v, want [salary]", missing)
	}
}

func TestHasColumnPropagatesErrors(t *testing.T) {
	conn, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer conn.Close()

	boom := errors.New("connection reset")
	mock.ExpectQuery(`FROM information_schema.columns`).WillReturnError(boom)

	if _, err := HasColumn(context.Background(), conn, "t", "c"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}
