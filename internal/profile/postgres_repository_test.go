package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
)

func TestPostgresRepositoryGet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	stored := New("user-1", time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	stored.Name = "Elena"
	stored.Age = 28
	doc, _ := json.Marshal(stored)

	mock.ExpectQuery(`SELECT document FROM profiles WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"document"}).AddRow(doc))

	repo := NewPostgresRepository(mock)
	got, err := repo.Get(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Elena" || got.Age != 28 {
		t.Errorf("decoded profile mismatch: %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresRepositoryGetNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT document FROM profiles`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err = NewPostgresRepository(mock).Get(context.Background(), "ghost")
	if !errors.Is(err, ErrProfileNotFound) {
		t.Errorf("Get = %v, want ErrProfileNotFound", err)
	}
}

func TestPostgresRepositoryGetIOFailureIsRetryable(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT document FROM profiles`).
		WithArgs("user-1").
		WillReturnError(errors.New("connection refused"))

	_, err = NewPostgresRepository(mock).Get(context.Background(), "user-1")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Get = %v, want wrapped ErrStoreUnavailable", err)
	}
}

func TestPostgresRepositoryPutUpserts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	p := New("user-1", time.Now())
	p.Name = "Elena"

	mock.ExpectExec(`INSERT INTO profiles`).
		WithArgs("user-1", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := NewPostgresRepository(mock).Put(context.Background(), p); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestPostgresRepositoryDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectExec(`DELETE FROM profiles WHERE user_id = \$1`).
		WithArgs("user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	if err := NewPostgresRepository(mock).Delete(context.Background(), "user-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	mock.ExpectExec(`DELETE FROM profiles`).
		WithArgs("user-1").
		WillReturnError(errors.New("server down"))

	err = NewPostgresRepository(mock).Delete(context.Background(), "user-1")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("Delete = %v, want wrapped ErrStoreUnavailable", err)
	}
}
