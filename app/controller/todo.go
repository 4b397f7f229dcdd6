package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	dto "github.com/taskforge/taskforge/app/dto/http"
	"github.com/taskforge/taskforge/app/service"
)

type TodoController struct {
	todoService service.TodoService
}

func NewTodoController(todoService service.TodoService) *TodoController {
	return &TodoController{todoService: todoService}
}

func (c *TodoController) Create(ctx echo.Context) error {
	var req dto.CreateTodoRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind create todo request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Create todo validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
	}

	todo, err := c.todoService.Create(ctx.Request().Context(), userID, service.CreateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Create todo failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "todo_id": todo.ID}).Info("Todo created")
	return ctx.JSON(http.StatusCreated, dto.TodoResponse{Success: true, Todo: dto.NewTodoPayload(todo)})
}

func (c *TodoController) ListMine(ctx echo.Context) error {
	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
	}

	todos, err := c.todoService.ListMine(ctx.Request().Context(), userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("List todos failed")
		return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}

	return ctx.JSON(http.StatusOK, dto.TodoListResponse{Success: true, Todos: dto.NewTodoPayloads(todos)})
}

func (c *TodoController) Update(ctx echo.Context) error {
	todoID, err := parseTodoID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid todo id"})
	}

	var req dto.UpdateTodoRequest
	if err := ctx.Bind(&req); err != nil {
		logrus.WithError(err).Debug("Failed to bind update todo request")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid request body"})
	}

	if err := req.Validate(); err != nil {
		logrus.Debug("Update todo validation failed")
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
	}

	todo, err := c.todoService.Update(ctx.Request().Context(), userID, todoID, service.UpdateTodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return c.todoError(ctx, err, userID, todoID, "Update todo failed")
	}

	return ctx.JSON(http.StatusOK, dto.TodoResponse{Success: true, Todo: dto.NewTodoPayload(todo)})
}

func (c *TodoController) Delete(ctx echo.Context) error {
	todoID, err := parseTodoID(ctx)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid todo id"})
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "unauthorized"})
	}

	if err := c.todoService.Delete(ctx.Request().Context(), userID, todoID); err != nil {
		return c.todoError(ctx, err, userID, todoID, "Delete todo failed")
	}

	logrus.WithFields(logrus.Fields{"user_id": userID, "todo_id": todoID}).Info("Todo deleted")
	return ctx.JSON(http.StatusOK, dto.MessageResponse{Success: true, Message: "todo deleted successfully"})
}

func (c *TodoController) todoError(ctx echo.Context, err error, userID, todoID uint64, logMessage string) error {
	if errors.Is(err, service.ErrTodoNotFound) {
		return ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "todo not found"})
	}
	if errors.Is(err, service.ErrNotOwner) {
		logrus.WithFields(logrus.Fields{"user_id": userID, "todo_id": todoID}).Warn("Todo access denied: not owner")
		return ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "not authorized"})
	}
	logrus.WithError(err).WithFields(logrus.Fields{"user_id": userID, "todo_id": todoID}).Error(logMessage)
	return ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
}

func parseTodoID(ctx echo.Context) (uint64, error) {
	return strconv.ParseUint(ctx.Param("id"), 10, 64)
}
