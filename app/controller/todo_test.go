package controller_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/taskforge/app/entity"

	"github.com/DATA-DOG/go-sqlmock"
)

func ownedTodoRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(todoColumns).AddRow(
		uint64(3), uint64(1), "buy milk", "two liters", false, entity.PriorityMedium,
		sql.NullTime{}, now, now,
	)
}

func TestCreateTodo_Success(t *testing.T) {
	c, mock, cleanup := newControllersWithMock(t)
	defer cleanup()

	mock.ExpectExec(insertTodoQuery).
		WithArgs(uint64(1), "buy milk", "", false, entity.PriorityMedium,
			sql.NullTime{}, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(3, 1))

	req, rec := newJSONRequest(t, http.MethodPost, "/api/v1/todo/new", map[string]string{
		"title": "buy milk",
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.Set("user_id", uint64(1))

	if err := c.todo.Create(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}

	todo, ok := decodeBody(t, rec)["todo"].(map[string]any)
	if !ok {
		t.Fatalf("expected todo payload: %s", rec.Body.String())
	}
	if todo["priority"] != entity.PriorityMedium {
		t.Fatalf("expected default priority, got %v", todo["priority"])
	}
}

func TestCreateTodo_MissingTitle(t *testing.T) {
	c, _, cleanup := newControllersWithMock(t)
	defer cleanup()

	req, rec := newJSONRequest(t, http.MethodPost, "/api/v1/todo/new", map[string]string{
		"description": "no title",
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.Set("user_id", uint64(1))

	if err := c.todo.Create(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "please enter task title" {
		t.Fatalf("unexpected message: %s", rec.Body.String())
	}
}

func TestCreateTodo_InvalidPriority(t *testing.T) {
	c, _, cleanup := newControllersWithMock(t)
	defer cleanup()

	req, rec := newJSONRequest(t, http.MethodPost, "/api/v1/todo/new", map[string]string{
		"title":    "buy milk",
		"priority": "urgent",
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.Set("user_id", uint64(1))

	if err := c.todo.Create(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestListTodos_Success(t *testing.T) {
	c, mock, cleanup := newControllersWithMock(t)
	defer cleanup()

	now := time.Now()

	mock.ExpectQuery(findTodosByUser).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(todoColumns).
			AddRow(uint64(2), uint64(1), "newer", "", false, entity.PriorityHigh, sql.NullTime{}, now, now).
			AddRow(uint64(1), uint64(1), "older", "", true, entity.PriorityLow, sql.NullTime{}, now.Add(-time.Hour), now))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todo/me", nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.Set("user_id", uint64(1))

	if err := c.todo.ListMine(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	todos, ok := decodeBody(t, rec)["todos"].([]any)
	if !ok || len(todos) != 2 {
		t.Fatalf("expected 2 todos: %s", rec.Body.String())
	}
}

func TestUpdateTodo_InvalidID(t *testing.T) {
	c, _, cleanup := newControllersWithMock(t)
	defer cleanup()

	req, rec := newJSONRequest(t, http.MethodPut, "/api/v1/todo/abc", map[string]bool{
		"completed": true,
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("abc")
	ctx.Set("user_id", uint64(1))

	if err := c.todo.Update(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "invalid todo id" {
		t.Fatalf("unexpected message: %s", rec.Body.String())
	}
}

func TestUpdateTodo_NotOwner(t *testing.T) {
	c, mock, cleanup := newControllersWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findTodoByIDQuery).
		WithArgs(uint64(3)).
		WillReturnRows(ownedTodoRow(time.Now()))

	req, rec := newJSONRequest(t, http.MethodPut, "/api/v1/todo/3", map[string]bool{
		"completed": true,
	})
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("3")
	ctx.Set("user_id", uint64(2))

	if err := c.todo.Update(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "not authorized" {
		t.Fatalf("unexpected message: %s", rec.Body.String())
	}
}

func TestDeleteTodo_Success(t *testing.T) {
	c, mock, cleanup := newControllersWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findTodoByIDQuery).
		WithArgs(uint64(3)).
		WillReturnRows(ownedTodoRow(time.Now()))
	mock.ExpectExec(deleteTodoQuery).
		WithArgs(uint64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/todo/3", nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("3")
	ctx.Set("user_id", uint64(1))

	if err := c.todo.Delete(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "todo deleted successfully" {
		t.Fatalf("unexpected message: %s", rec.Body.String())
	}
}

func TestDeleteTodo_NotFound(t *testing.T) {
	c, mock, cleanup := newControllersWithMock(t)
	defer cleanup()

	mock.ExpectQuery(findTodoByIDQuery).
		WithArgs(uint64(99)).
		WillReturnRows(sqlmock.NewRows(todoColumns))

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/todo/99", nil)
	rec := httptest.NewRecorder()
	ctx := echo.New().NewContext(req, rec)
	ctx.SetParamNames("id")
	ctx.SetParamValues("99")
	ctx.Set("user_id", uint64(1))

	if err := c.todo.Delete(ctx); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "todo not found" {
		t.Fatalf("unexpected message: %s", rec.Body.String())
	}
}
