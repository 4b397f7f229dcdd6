package repository_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/taskforge/taskforge/app/entity"
	"github.com/taskforge/taskforge/app/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

const (
	insertTodoQuery     = `(?s)INSERT INTO todos \(user_id, title, description, completed, priority, due_date, created_at, updated_at\)\s+VALUES \(\?, \?, \?, \?, \?, \?, \?, \?\)`
	updateTodoQuery     = `(?s)UPDATE todos SET\s+title = \?,\s+description = \?,\s+completed = \?,\s+priority = \?,\s+due_date = \?,\s+updated_at = \?\s+WHERE id = \?`
	selectTodoColumns   = `(?s)SELECT id, user_id, title, description, completed, priority, due_date, created_at, updated_at\s+FROM todos`
	findTodoByIDQuery   = selectTodoColumns + ` WHERE id = \?`
	findTodosByUserID   = selectTodoColumns + ` WHERE user_id = \? ORDER BY created_at DESC`
	deleteTodoByIDQuery = `(?s)DELETE FROM todos WHERE id = \?`
)

var todoColumns = []string{
	"id",
	"user_id",
	"title",
	"description",
	"completed",
	"priority",
	"due_date",
	"created_at",
	"updated_at",
}

func TestTodoRepository_Create(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewTodoRepository(db)
	now := time.Now()
	todo := &entity.Todo{
		UserID:      1,
		Title:       "buy milk",
		Description: "two liters",
		Priority:    entity.PriorityMedium,
		DueDate:     sql.NullTime{Time: now.Add(24 * time.Hour), Valid: true},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec(insertTodoQuery).
		WithArgs(
			todo.UserID,
			todo.Title,
			todo.Description,
			todo.Completed,
			todo.Priority,
			todo.DueDate,
			todo.CreatedAt,
			todo.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(7, 1))

	if err := repo.Create(context.Background(), todo); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if todo.ID != 7 {
		t.Fatalf("expected ID 7, got %d", todo.ID)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTodoRepository_FindByID_NotFound(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewTodoRepository(db)

	mock.ExpectQuery(findTodoByIDQuery).
		WithArgs(uint64(99)).
		WillReturnError(sql.ErrNoRows)

	todo, err := repo.FindByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if todo != nil {
		t.Fatalf("expected nil todo, got %+v", todo)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTodoRepository_FindByUserID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewTodoRepository(db)
	now := time.Now()

	mock.ExpectQuery(findTodosByUserID).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(todoColumns).
			AddRow(uint64(2), uint64(1), "newer", "", false, entity.PriorityHigh, sql.NullTime{}, now, now).
			AddRow(uint64(1), uint64(1), "older", "", true, entity.PriorityLow, sql.NullTime{}, now.Add(-time.Hour), now))

	todos, err := repo.FindByUserID(context.Background(), 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos, got %d", len(todos))
	}
	if todos[0].Title != "newer" || todos[1].Title != "older" {
		t.Fatalf("unexpected ordering: %q, %q", todos[0].Title, todos[1].Title)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTodoRepository_Update(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewTodoRepository(db)
	todo := &entity.Todo{
		ID:          3,
		UserID:      1,
		Title:       "buy milk",
		Description: "oat this time",
		Completed:   true,
		Priority:    entity.PriorityLow,
	}

	mock.ExpectExec(updateTodoQuery).
		WithArgs(
			todo.Title,
			todo.Description,
			todo.Completed,
			todo.Priority,
			todo.DueDate,
			sqlmock.AnyArg(),
			todo.ID,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), todo); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTodoRepository_Delete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	repo := repository.NewTodoRepository(db)

	mock.ExpectExec(deleteTodoByIDQuery).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 3); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
