package http

import (
	"time"

	"github.com/taskforge/taskforge/app/entity"
)

// UserPayload is the sanitized view of a user record. The password hash and
// the pending code/token fields are never serialized.
type UserPayload struct {
	ID              uint64    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	PhoneNumber     string    `json:"phoneNumber"`
	AccountVerified bool      `json:"accountVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

func NewUserPayload(user *entity.User) UserPayload {
	return UserPayload{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		PhoneNumber:     user.PhoneNumber,
		AccountVerified: user.AccountVerified,
		CreatedAt:       user.CreatedAt,
	}
}

type TodoPayload struct {
	ID          uint64     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewTodoPayload(todo *entity.Todo) TodoPayload {
	p := TodoPayload{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Completed:   todo.Completed,
		Priority:    todo.Priority,
		CreatedAt:   todo.CreatedAt,
	}
	if todo.DueDate.Valid {
		due := todo.DueDate.Time
		p.DueDate = &due
	}
	return p
}

func NewTodoPayloads(todos []*entity.Todo) []TodoPayload {
	payloads := make([]TodoPayload, 0, len(todos))
	for _, todo := range todos {
		payloads = append(payloads, NewTodoPayload(todo))
	}
	return payloads
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SessionResponse carries the bearer token in the body alongside the cookie.
type SessionResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Token   string      `json:"token"`
	User    UserPayload `json:"user"`
}

type UserResponse struct {
	Success bool        `json:"success"`
	User    UserPayload `json:"user"`
}

type TodoResponse struct {
	Success bool        `json:"success"`
	Todo    TodoPayload `json:"todo"`
}

type TodoListResponse struct {
	Success bool          `json:"success"`
	Todos   []TodoPayload `json:"todos"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
