package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/taskforge/taskforge/app/entity"
)

// ErrDuplicateKey is returned when a write violates the verified-contact
// uniqueness indexes. It is the storage-level guard against two concurrent
// verifications claiming the same email or phone number.
var ErrDuplicateKey = errors.New("duplicate key")

const userColumns = `id, name, email, phone_number, password_hash, account_verified,
		       verification_code, verification_code_expires_at,
		       reset_password_token, reset_password_expires_at, created_at, updated_at`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, email, phone_number, password_hash, account_verified,
			verification_code, verification_code_expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		user.AccountVerified,
		user.VerificationCode,
		user.VerificationCodeExpiresAt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return translateError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = uint64(id)
	return nil
}

// FindVerifiedByContact returns the verified account owning either contact,
// or nil when neither is claimed.
func (r *UserRepository) FindVerifiedByContact(ctx context.Context, email, phoneNumber string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE (email = ? OR phone_number = ?) AND account_verified = 1
	`
	return r.queryOne(ctx, query, email, phoneNumber)
}

// FindUnverifiedByContact returns the pending registration for either
// contact, if one exists. Re-registration overwrites it in place.
func (r *UserRepository) FindUnverifiedByContact(ctx context.Context, email, phoneNumber string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE (email = ? OR phone_number = ?) AND account_verified = 0
	`
	return r.queryOne(ctx, query, email, phoneNumber)
}

// FindUnverifiedByCode matches contact, code and an expiry strictly in the
// future in a single query, so a wrong code and an expired one are
// indistinguishable to the caller.
func (r *UserRepository) FindUnverifiedByCode(ctx context.Context, email, phoneNumber string, code int64, now time.Time) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE (email = ? OR phone_number = ?) AND account_verified = 0
		  AND verification_code = ? AND verification_code_expires_at > ?
	`
	return r.queryOne(ctx, query, email, phoneNumber, code, now)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE email = ?
	`
	return r.queryOne(ctx, query, email)
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE id = ?
	`
	return r.queryOne(ctx, query, id)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users WHERE reset_password_token = ?
	`
	return r.queryOne(ctx, query, token)
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	query := `
		UPDATE users SET
			name = ?,
			email = ?,
			phone_number = ?,
			password_hash = ?,
			account_verified = ?,
			verification_code = ?,
			verification_code_expires_at = ?,
			reset_password_token = ?,
			reset_password_expires_at = ?,
			updated_at = ?
		WHERE id = ?
	`
	user.UpdatedAt = time.Now()
	_, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Email,
		user.PhoneNumber,
		user.PasswordHash,
		user.AccountVerified,
		user.VerificationCode,
		user.VerificationCodeExpiresAt,
		user.ResetPasswordToken,
		user.ResetPasswordExpiresAt,
		user.UpdatedAt,
		user.ID,
	)
	return translateError(err)
}

func (r *UserRepository) Delete(ctx context.Context, id uint64) error {
	query := `DELETE FROM users WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *UserRepository) queryOne(ctx context.Context, query string, args ...any) (*entity.User, error) {
	user := &entity.User{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PhoneNumber,
		&user.PasswordHash,
		&user.AccountVerified,
		&user.VerificationCode,
		&user.VerificationCodeExpiresAt,
		&user.ResetPasswordToken,
		&user.ResetPasswordExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func translateError(err error) error {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrDuplicateKey
	}
	return err
}
