package entity

import (
	"database/sql"
	"time"
)

type User struct {
	ID                        uint64
	Name                      string
	Email                     string
	PhoneNumber               string
	PasswordHash              string
	AccountVerified           bool
	VerificationCode          sql.NullInt64
	VerificationCodeExpiresAt sql.NullTime
	ResetPasswordToken        sql.NullString
	ResetPasswordExpiresAt    sql.NullTime
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}
