package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"portfoliotracker/src/model"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestUserRepositoryFindByUsername(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &GormUserRepository{db: mockDB}

	createdAt := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "username", "email", "full_name", "is_active", "created_at", "updated_at"}).
			AddRow(1, "jdoe", "jdoe@example.com", "Jane Doe", true, createdAt, createdAt)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("jdoe", 1).
			WillReturnRows(rows)

		user, err := repo.FindByUsername(context.Background(), "jdoe")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user == nil || user.Email != "jdoe@example.com" {
			t.Fatalf("unexpected user: %+v", user)
		}
	})

	t.Run("not found returns nil, nil", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE username = $1 ORDER BY "users"."id" LIMIT $2`)).
			WithArgs("ghost", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		user, err := repo.FindByUsername(context.Background(), "ghost")
		if err != nil {
			t.Fatalf("missing rows must not surface as an error, got %v", err)
		}
		if user != nil {
			t.Fatalf("expected nil user, got %+v", user)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func TestUserRepositoryCreateValidates(t *testing.T) {
	mockDB, mock := newMockDB(t)
	repo := &GormUserRepository{db: mockDB}

	// invalid email never reaches the database, no expectations set
	err := repo.Create(context.Background(), &model.User{
		Username: "jdoe",
		Email:    "not-an-email",
		FullName: "Jane Doe",
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet sqlmock expectations: %v", err)
	}
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	dialector := postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	})

	gdb, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		sqlDB.Close()
		t.Fatalf("failed to open gorm DB with sqlmock: %v", err)
	}

	return gdb, mock
}
