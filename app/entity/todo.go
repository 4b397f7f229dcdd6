package entity

import (
	"database/sql"
	"time"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

type Todo struct {
	ID          uint64
	UserID      uint64
	Title       string
	Description string
	Completed   bool
	Priority    string
	DueDate     sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidPriority reports whether p is one of the three known priority levels.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
