package http

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/taskforge/taskforge/app/entity"
	"github.com/taskforge/taskforge/app/service"
)

// phonePattern is the fixed international-prefix format accepted at
// registration.
var phonePattern = regexp.MustCompile(`^\+91\d{10}$`)

type RegisterRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Password           string `json:"password"`
	PhoneNumber        string `json:"phoneNumber"`
	VerificationMethod string `json:"verificationMethod"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" ||
		strings.TrimSpace(r.Email) == "" ||
		strings.TrimSpace(r.Password) == "" ||
		strings.TrimSpace(r.PhoneNumber) == "" ||
		strings.TrimSpace(r.VerificationMethod) == "" {
		return errors.New("please provide all the fields")
	}
	if !phonePattern.MatchString(r.PhoneNumber) {
		return errors.New("invalid phone number")
	}
	if _, err := service.ParseMethod(r.VerificationMethod); err != nil {
		return errors.New("invalid verification method")
	}
	return nil
}

type VerifyOTPRequest struct {
	// OTP is a json.Number so clients may send the code either quoted or as
	// a bare number.
	OTP         json.Number `json:"otp"`
	Email       string      `json:"email"`
	PhoneNumber string      `json:"phoneNumber"`
}

func (r *VerifyOTPRequest) Validate() error {
	if r.OTP.String() == "" || (strings.TrimSpace(r.Email) == "" && strings.TrimSpace(r.PhoneNumber) == "") {
		return errors.New("please provide OTP and email/phone")
	}
	return nil
}

// Code parses the submitted one-time code as a number.
func (r *VerifyOTPRequest) Code() (int64, error) {
	return r.OTP.Int64()
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.Password) == "" {
		return errors.New("please provide email and password")
	}
	return nil
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

func (r *ForgotPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	return nil
}

type ResetPasswordRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r *ResetPasswordRequest) Validate() error {
	if strings.TrimSpace(r.Password) == "" || strings.TrimSpace(r.ConfirmPassword) == "" {
		return errors.New("password and confirmPassword are required")
	}
	return nil
}

type UpdatePasswordRequest struct {
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r *UpdatePasswordRequest) Validate() error {
	if strings.TrimSpace(r.OldPassword) == "" ||
		strings.TrimSpace(r.NewPassword) == "" ||
		strings.TrimSpace(r.ConfirmPassword) == "" {
		return errors.New("oldPassword, newPassword and confirmPassword are required")
	}
	return nil
}

type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
}

func (r *UpdateProfileRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" || strings.TrimSpace(r.PhoneNumber) == "" {
		return errors.New("name, email and phoneNumber are required")
	}
	if !phonePattern.MatchString(r.PhoneNumber) {
		return errors.New("invalid phone number")
	}
	return nil
}

type CreateTodoRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

func (r *CreateTodoRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return errors.New("please enter task title")
	}
	if r.Priority != "" && !entity.ValidPriority(r.Priority) {
		return errors.New("priority must be Low, Medium or High")
	}
	return nil
}

type UpdateTodoRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

func (r *UpdateTodoRequest) Validate() error {
	if r.Title != nil && strings.TrimSpace(*r.Title) == "" {
		return errors.New("please enter task title")
	}
	if r.Priority != nil && !entity.ValidPriority(*r.Priority) {
		return errors.New("priority must be Low, Medium or High")
	}
	return nil
}
