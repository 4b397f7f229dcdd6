package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/taskforge/taskforge/app/entity"
)

var (
	ErrTodoNotFound = errors.New("todo not found")
	ErrNotOwner     = errors.New("not authorized")
)

type todoRepository interface {
	Create(ctx context.Context, todo *entity.Todo) error
	FindByID(ctx context.Context, id uint64) (*entity.Todo, error)
	FindByUserID(ctx context.Context, userID uint64) ([]*entity.Todo, error)
	Update(ctx context.Context, todo *entity.Todo) error
	Delete(ctx context.Context, id uint64) error
}

type CreateTodoInput struct {
	Title       string
	Description string
	Priority    string
	DueDate     *time.Time
}

// UpdateTodoInput carries a partial update; nil fields are left untouched.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	DueDate     *time.Time
}

type TodoService interface {
	Create(ctx context.Context, userID uint64, in CreateTodoInput) (*entity.Todo, error)
	ListMine(ctx context.Context, userID uint64) ([]*entity.Todo, error)
	Update(ctx context.Context, userID, todoID uint64, in UpdateTodoInput) (*entity.Todo, error)
	Delete(ctx context.Context, userID, todoID uint64) error
}

type todoService struct {
	todoRepo todoRepository
}

func NewTodoService(todoRepo todoRepository) TodoService {
	return &todoService{todoRepo: todoRepo}
}

func (s *todoService) Create(ctx context.Context, userID uint64, in CreateTodoInput) (*entity.Todo, error) {
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}

	now := time.Now()
	todo := &entity.Todo{
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.DueDate != nil {
		todo.DueDate = sql.NullTime{Time: *in.DueDate, Valid: true}
	}

	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) ListMine(ctx context.Context, userID uint64) ([]*entity.Todo, error) {
	return s.todoRepo.FindByUserID(ctx, userID)
}

func (s *todoService) Update(ctx context.Context, userID, todoID uint64, in UpdateTodoInput) (*entity.Todo, error) {
	todo, err := s.findOwned(ctx, userID, todoID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		todo.Title = *in.Title
	}
	if in.Description != nil {
		todo.Description = *in.Description
	}
	if in.Completed != nil {
		todo.Completed = *in.Completed
	}
	if in.Priority != nil {
		todo.Priority = *in.Priority
	}
	if in.DueDate != nil {
		todo.DueDate = sql.NullTime{Time: *in.DueDate, Valid: true}
	}

	if err = s.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, userID, todoID uint64) error {
	if _, err := s.findOwned(ctx, userID, todoID); err != nil {
		return err
	}
	return s.todoRepo.Delete(ctx, todoID)
}

func (s *todoService) findOwned(ctx context.Context, userID, todoID uint64) (*entity.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	if todo.UserID != userID {
		return nil, ErrNotOwner
	}
	return todo, nil
}
