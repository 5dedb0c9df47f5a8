package models

import "time"

type User struct {
	ID           int64     // Внутренний ID (autoincrement)
	TelegramID   int64     // Уникальный ID Telegram
	Login        string    // Логин (уникальный)
	PasswordHash string    // Хеш пароля SHA-256(password + salt)
	PasswordSalt string    // Соль пароля
	Email        string    // Email (уникальный, опциональный)
	Phone        string    // Телефонный номер (уникальный)
	FullName     string    // ФИО
	IsBanned     bool      // Флаг блокировки
	RegisteredAt time.Time // Дата регистрации
	LastLoginAt  time.Time // Последний вход
}

// UserField перечисляет поля профиля, которые можно менять по одному.
// Закрытый набор вместо динамической подстановки имени колонки.
type UserField string

const (
	FieldLogin    UserField = "login"
	FieldEmail    UserField = "email"
	FieldPhone    UserField = "phone"
	FieldFullName UserField = "full_name"
)
