package bot

import (
	"errors"

	"totobot/internal/database"
	"totobot/internal/service"
)

// getErrorMessage переводит типизированные ошибки сервисов в сообщения
// пользователю. Сырой текст ошибки наружу не уходит.
func (b *Bot) getErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, database.ErrDuplicateLogin):
		return "❌ Этот логин уже занят. Пожалуйста, выберите другой логин."
	case errors.Is(err, database.ErrDuplicateEmail):
		return "❌ Этот email уже зарегистрирован. Пожалуйста, используйте другой email."
	case errors.Is(err, database.ErrDuplicatePhone):
		return "❌ Этот номер телефона уже зарегистрирован. Пожалуйста, используйте другой номер."
	case errors.Is(err, database.ErrInvalidScore):
		return "❌ Неверный формат счета. Введите счет в формате X-Y, например 2-1 (каждое число от 0 до 20)."
	case errors.Is(err, database.ErrMatchExpired):
		return "⚠️ Матч уже начался, ставки на него больше не принимаются."
	case errors.Is(err, database.ErrMatchNotOpen):
		return "⚠️ Этот матч недоступен для ставок."
	case errors.Is(err, database.ErrInvalidCredentials):
		return "❌ Неверный логин или пароль. Попробуйте еще раз."
	case errors.Is(err, database.ErrBanned):
		return "🚫 Ваш аккаунт заблокирован. Обратитесь к администратору."
	case errors.Is(err, database.ErrNotFound):
		return "❌ Запись не найдена."
	case errors.Is(err, service.ErrInvalidDate):
		return "❌ Неверный формат даты. Используйте дд.мм.гггг, например 15.06.2025."
	case errors.Is(err, service.ErrInvalidTime):
		return "❌ Неверный формат времени. Используйте чч:мм, например 18:00."
	case errors.Is(err, service.ErrEmptyName):
		return "❌ Название не может быть пустым."
	}

	// Default error message
	return "❌ Произошла ошибка при обработке вашего запроса. Пожалуйста, попробуйте позже."
}
