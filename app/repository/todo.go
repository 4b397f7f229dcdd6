package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/taskforge/taskforge/app/entity"
)

const todoColumns = `id, user_id, title, description, completed, priority, due_date, created_at, updated_at`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *entity.Todo) error {
	query := `
		INSERT INTO todos (user_id, title, description, completed, priority, due_date, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		todo.UserID,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.Priority,
		todo.DueDate,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	todo.ID = uint64(id)
	return nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id uint64) (*entity.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos WHERE id = ?
	`
	todo := &entity.Todo{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&todo.ID,
		&todo.UserID,
		&todo.Title,
		&todo.Description,
		&todo.Completed,
		&todo.Priority,
		&todo.DueDate,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *TodoRepository) FindByUserID(ctx context.Context, userID uint64) ([]*entity.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos WHERE user_id = ? ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []*entity.Todo
	for rows.Next() {
		todo := &entity.Todo{}
		if err := rows.Scan(
			&todo.ID,
			&todo.UserID,
			&todo.Title,
			&todo.Description,
			&todo.Completed,
			&todo.Priority,
			&todo.DueDate,
			&todo.CreatedAt,
			&todo.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) Update(ctx context.Context, todo *entity.Todo) error {
	query := `
		UPDATE todos SET
			title = ?,
			description = ?,
			completed = ?,
			priority = ?,
			due_date = ?,
			updated_at = ?
		WHERE id = ?
	`
	todo.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		todo.Title,
		todo.Description,
		todo.Completed,
		todo.Priority,
		todo.DueDate,
		todo.UpdatedAt,
		todo.ID,
	)
	return err
}

func (r *TodoRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM todos WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
