package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/taskforge/taskforge/app/repository"
	"github.com/taskforge/taskforge/app/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func newUserServiceWithMock(t *testing.T) (service.UserService, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	svc := service.NewUserService(repository.NewUserRepository(db))
	return svc, mock, func() { _ = db.Close() }
}

func TestUserService_GetUser(t *testing.T) {
	svc, mock, cleanup := newUserServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(verifiedUserRow("hash", time.Now()))

	user, err := svc.GetUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if user.ID != 1 || user.Email != "asha@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	svc, mock, cleanup := newUserServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(9)).
		WillReturnRows(emptyUserRows())

	_, err := svc.GetUser(context.Background(), 9)
	if !errors.Is(err, service.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_UpdateProfile(t *testing.T) {
	svc, mock, cleanup := newUserServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(verifiedUserRow("hash", time.Now()))
	mock.ExpectExec(updateUserQuery).
		WithArgs("New Name", "new@example.com", "+919812345678", "hash", true,
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), uint64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := svc.UpdateProfile(context.Background(), 1, "New Name", "new@example.com", "+919812345678")
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if user.Name != "New Name" || user.Email != "new@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUserService_UpdateProfile_ContactTaken(t *testing.T) {
	svc, mock, cleanup := newUserServiceWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findByIDQuery).
		WithArgs(uint64(1)).
		WillReturnRows(verifiedUserRow("hash", time.Now()))
	mock.ExpectExec(updateUserQuery).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	_, err := svc.UpdateProfile(context.Background(), 1, "New Name", "taken@example.com", "+919812345678")
	if !errors.Is(err, service.ErrContactTaken) {
		t.Fatalf("expected ErrContactTaken, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
