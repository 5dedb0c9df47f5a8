package database

import "errors"

// Типизированные ошибки уровня хранилища и бизнес-правил ставок.
// Обработчики бота переводят их в сообщения пользователю, наружу
// сырые ошибки SQL не выходят.
var (
	ErrNotFound = errors.New("record not found")

	ErrDuplicateLogin = errors.New("login already taken")
	ErrDuplicateEmail = errors.New("email already taken")
	ErrDuplicatePhone = errors.New("phone already taken")

	ErrInvalidScore = errors.New("invalid score format")
	ErrMatchExpired = errors.New("match already started")
	ErrMatchNotOpen = errors.New("match is not open for betting")

	ErrBanned             = errors.New("user is banned")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
