package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"totobot/internal/models"
)

const userColumns = `id, telegram_id, login, password_hash, password_salt,
	COALESCE(email, ''), COALESCE(phone, ''), full_name, is_banned,
	registered_at, last_login_at`

// CreateUser вставляет нового пользователя. Хеш и соль уже посчитаны
// сервисом авторизации. Нарушение уникальности логина/email/телефона
// возвращается типизированной ошибкой, частичная строка не остается.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	query := `INSERT INTO users (
				telegram_id, login, password_hash, password_salt,
				email, phone, full_name, is_banned,
				registered_at, last_login_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`
	now := time.Now()
	result, err := db.ExecContext(ctx, query,
		user.TelegramID,
		user.Login,
		user.PasswordHash,
		user.PasswordSalt,
		nullIfEmpty(user.Email),
		nullIfEmpty(user.Phone),
		user.FullName,
		now,
		now,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	user.ID = id
	user.RegisteredAt = now
	user.LastLoginAt = now

	return nil
}

func (db *DB) GetUserByTelegramID(ctx context.Context, telegramID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = ?`
	return db.queryUser(ctx, query, telegramID)
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return db.queryUser(ctx, query, id)
}

// GetUserByIdentifier ищет пользователя по логину, email или телефону.
func (db *DB) GetUserByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
              WHERE login = ? OR email = ? OR phone = ?`
	return db.queryUser(ctx, query, identifier, identifier, identifier)
}

func (db *DB) queryUser(ctx context.Context, query string, args ...interface{}) (*models.User, error) {
	var user models.User
	err := db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.TelegramID, &user.Login, &user.PasswordHash, &user.PasswordSalt,
		&user.Email, &user.Phone, &user.FullName, &user.IsBanned,
		&user.RegisteredAt, &user.LastLoginAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	return &user, nil
}

// SetBanned идемпотентно выставляет флаг блокировки.
func (db *DB) SetBanned(ctx context.Context, telegramID int64, banned bool) error {
	query := `UPDATE users SET is_banned = ? WHERE telegram_id = ?`
	res, err := db.ExecContext(ctx, query, banned, telegramID)
	if err != nil {
		return fmt.Errorf("failed to set banned flag: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *DB) UpdateLastLogin(ctx context.Context, telegramID int64) error {
	query := `UPDATE users SET last_login_at = ? WHERE telegram_id = ?`
	_, err := db.ExecContext(ctx, query, time.Now(), telegramID)
	return err
}

// UpdateUserField меняет одно поле профиля. Закрытый набор полей вместо
// динамической подстановки имени колонки в запрос.
func (db *DB) UpdateUserField(ctx context.Context, telegramID int64, field models.UserField, value string) error {
	var query string
	var arg interface{} = value
	switch field {
	case models.FieldLogin:
		query = `UPDATE users SET login = ? WHERE telegram_id = ?`
	case models.FieldEmail:
		query = `UPDATE users SET email = ? WHERE telegram_id = ?`
		arg = nullIfEmpty(value)
	case models.FieldPhone:
		query = `UPDATE users SET phone = ? WHERE telegram_id = ?`
		arg = nullIfEmpty(value)
	case models.FieldFullName:
		query = `UPDATE users SET full_name = ? WHERE telegram_id = ?`
	default:
		return fmt.Errorf("unknown user field: %s", field)
	}

	res, err := db.ExecContext(ctx, query, arg, telegramID)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsFieldTaken проверяет занятость уникального поля, исключая строку
// самого редактирующего пользователя.
func (db *DB) IsFieldTaken(ctx context.Context, field models.UserField, value string, excludeTelegramID int64) (bool, error) {
	var query string
	switch field {
	case models.FieldLogin:
		query = `SELECT COUNT(*) FROM users WHERE login = ? AND telegram_id != ?`
	case models.FieldEmail:
		query = `SELECT COUNT(*) FROM users WHERE email = ? AND telegram_id != ?`
	case models.FieldPhone:
		query = `SELECT COUNT(*) FROM users WHERE phone = ? AND telegram_id != ?`
	default:
		return false, fmt.Errorf("field %s has no uniqueness constraint", field)
	}

	var count int
	if err := db.QueryRowContext(ctx, query, value, excludeTelegramID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check field uniqueness: %w", err)
	}
	return count > 0, nil
}

func (db *DB) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY registered_at DESC`
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u := &models.User{}
		err := rows.Scan(
			&u.ID, &u.TelegramID, &u.Login, &u.PasswordHash, &u.PasswordSalt,
			&u.Email, &u.Phone, &u.FullName, &u.IsBanned,
			&u.RegisteredAt, &u.LastLoginAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
